package summaries

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"summary-backend/internal/extract"
	"summary-backend/internal/shared/server/middleware"
	"summary-backend/internal/shared/server/respond"
	"summary-backend/internal/shared/util"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches summary routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summarize", h.summarize)
	rg.GET("/summaries", h.list)
	rg.PUT("/summaries/:id", h.update)
	rg.DELETE("/summaries/:id", h.delete)
	rg.POST("/share", h.share)
}

func (h *Handler) summarize(c *gin.Context) {
	c.Set(middleware.OperationKey, "summarize")

	var req summarizeRequest
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var ok bool
		if req, ok = h.bindUpload(c); !ok {
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "invalid request body", err)
		return
	}

	created, err := h.Svc.Summarize(c.Request.Context(), req.Transcript, req.Prompt)
	if err != nil {
		h.fail(c, err, "Internal server error during summarization.")
		return
	}
	c.Set(middleware.SummaryIDKey, created.ID)

	respond.OK(c, SummarizeResponse{Summary: created.GeneratedSummary, ID: created.ID})
}

// bindUpload reads a multipart summarize request. An uploaded file takes
// precedence over the transcript field.
func (h *Handler) bindUpload(c *gin.Context) (summarizeRequest, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	req := summarizeRequest{
		Transcript: c.PostForm("transcript"),
		Prompt:     c.PostForm("prompt"),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return req, true
		}
		respond.Error(c, http.StatusBadRequest, CodeValidation, "unable to read upload", err)
		return req, false
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "invalid file name", err)
		return req, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "unable to read file", err)
		return req, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "unable to read file", err)
		return req, false
	}

	text, err := extract.TranscriptText(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileName)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "Unable to read transcript file.", err)
		return req, false
	}
	req.Transcript = text
	return req, true
}

func (h *Handler) list(c *gin.Context) {
	c.Set(middleware.OperationKey, "list")

	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Internal server error fetching summaries.")
		return
	}
	respond.OK(c, toResponses(list))
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.OperationKey, "update")
	c.Set(middleware.SummaryIDKey, id)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "invalid request body", err)
		return
	}
	if req.GeneratedSummary == nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "generatedSummary is required.", nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), id, *req.GeneratedSummary)
	if err != nil {
		h.fail(c, err, "Internal server error updating summary.")
		return
	}
	respond.OK(c, toResponse(updated))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.OperationKey, "delete")
	c.Set(middleware.SummaryIDKey, id)

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Internal server error deleting summary.")
		return
	}
	respond.Message(c, "Summary deleted successfully.")
}

func (h *Handler) share(c *gin.Context) {
	c.Set(middleware.OperationKey, "share")

	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "invalid request body", err)
		return
	}

	err := h.Svc.Share(c.Request.Context(), ShareRequest{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		h.fail(c, err, "Internal server error sending email.")
		return
	}
	respond.Message(c, "Email sent successfully!")
}

// fail maps service errors onto status codes. fallback is the message used
// for store and unclassified failures.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		respond.Error(c, http.StatusBadRequest, CodeValidation, vErr.Message, vErr.Err)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, CodeNotFound, "Summary not found.", nil)
	case errors.Is(err, ErrEmptyResponse):
		respond.Error(c, http.StatusInternalServerError, CodeGeneration, "Failed to generate a summary. The AI model returned an empty response.", nil)
	case errors.Is(err, ErrGeneration):
		respond.Error(c, http.StatusInternalServerError, CodeGeneration, "Internal server error during summarization.", err)
	case errors.Is(err, ErrNotification):
		respond.Error(c, http.StatusInternalServerError, CodeNotification, "Internal server error sending email.", err)
	default:
		respond.Error(c, http.StatusInternalServerError, CodeStore, fallback, err)
	}
}
