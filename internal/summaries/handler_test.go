package summaries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body), resp.Body.String())
	return body
}

func TestHandlerSummaryLifecycle(t *testing.T) {
	svc, _, _ := newTestService(&fakeGenerator{text: "Alice and Bob reviewed Q3 goals."})
	r := newTestRouter(svc)

	resp := doJSON(t, r, http.MethodPost, "/api/summarize",
		`{"transcript":"Alice and Bob discussed Q3 goals.","prompt":"Summarize in one sentence."}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var created SummarizeResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "Alice and Bob reviewed Q3 goals.", created.Summary)
	require.NotEmpty(t, created.ID)

	resp = doJSON(t, r, http.MethodGet, "/api/summaries", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0]["_id"])
	assert.Equal(t, "Alice and Bob discussed Q3 goals.", list[0]["originalTranscript"])
	assert.Equal(t, "Summarize in one sentence.", list[0]["customPrompt"])
	assert.Equal(t, "Alice and Bob reviewed Q3 goals.", list[0]["generatedSummary"])
	createdAt, ok := list[0]["createdAt"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(createdAt, "Z"), "createdAt should be UTC: %s", createdAt)

	resp = doJSON(t, r, http.MethodPut, "/api/summaries/"+created.ID, `{"generatedSummary":"Edited: Q3 goals reviewed."}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var updated SummaryResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "Edited: Q3 goals reviewed.", updated.GeneratedSummary)
	assert.Equal(t, createdAt, updated.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))

	resp = doJSON(t, r, http.MethodDelete, "/api/summaries/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Summary deleted successfully."}`, resp.Body.String())

	resp = doJSON(t, r, http.MethodDelete, "/api/summaries/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Summary not found.", decodeError(t, resp).Error)
}

func TestHandlerListEmptyIsArray(t *testing.T) {
	svc, _, _ := newTestService(&fakeGenerator{})
	resp := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/summaries", "")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestHandlerSummarizeValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "missing transcript", body: `{"prompt":"x"}`},
		{name: "empty transcript", body: `{"transcript":"","prompt":"x"}`},
		{name: "null transcript", body: `{"transcript":null}`},
		{name: "malformed json", body: `{"transcript":`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{text: "unused"}
			svc, _, _ := newTestService(gen)

			resp := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/summarize", tc.body)
			require.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Equal(t, CodeValidation, decodeError(t, resp).Code)
			assert.Zero(t, gen.callCount())
		})
	}

	svc, _, _ := newTestService(&fakeGenerator{})
	resp := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/summarize", `{}`)
	assert.Equal(t, "Transcript is required.", decodeError(t, resp).Error)
}

func TestHandlerSummarizeProviderFailure(t *testing.T) {
	svc, repo, _ := newTestService(&fakeGenerator{err: errors.New("Gemini API responded with status: 503")})
	resp := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/summarize", `{"transcript":"t"}`)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	body := decodeError(t, resp)
	assert.Equal(t, "Internal server error during summarization.", body.Error)
	assert.Equal(t, CodeGeneration, body.Code)
	assert.Contains(t, body.Details, "503")

	list, _ := repo.ListNewestFirst(context.Background())
	assert.Empty(t, list)
}

func TestHandlerSummarizeEmptyProviderText(t *testing.T) {
	svc, _, _ := newTestService(&fakeGenerator{text: ""})
	resp := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/summarize", `{"transcript":"t"}`)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "Failed to generate a summary. The AI model returned an empty response.", decodeError(t, resp).Error)
}

func TestHandlerSummarizeMultipartFile(t *testing.T) {
	gen := &fakeGenerator{text: "summary"}
	svc, _, _ := newTestService(gen)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "meeting.txt")
	require.NoError(t, err)
	_, err = fileWriter.Write([]byte("Alice: hello\nBob: hi\n"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("prompt", "List speakers."))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.Equal(t, 1, gen.callCount())
	assert.Contains(t, gen.calls[0], "\"List speakers.\"")
	assert.True(t, strings.HasSuffix(gen.calls[0], "Alice: hello\nBob: hi"))
}

func TestHandlerSummarizeMultipartUnsupportedFile(t *testing.T) {
	gen := &fakeGenerator{text: "summary"}
	svc, _, _ := newTestService(gen)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "shot.png")
	require.NoError(t, err)
	_, err = fileWriter.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Unable to read transcript file.", decodeError(t, resp).Error)
	assert.Zero(t, gen.callCount())
}

func TestHandlerUpdateRequiresField(t *testing.T) {
	svc, _, _ := newTestService(&fakeGenerator{text: "s"})
	created, err := svc.Summarize(context.Background(), "t", "")
	require.NoError(t, err)
	r := newTestRouter(svc)

	resp := doJSON(t, r, http.MethodPut, "/api/summaries/"+created.ID, `{}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doJSON(t, r, http.MethodPut, "/api/summaries/"+created.ID, `{"generatedSummary":""}`)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestHandlerUpdateUnknownID(t *testing.T) {
	svc, _, _ := newTestService(&fakeGenerator{})
	resp := doJSON(t, newTestRouter(svc), http.MethodPut, "/api/summaries/nope", `{"generatedSummary":"x"}`)

	require.Equal(t, http.StatusNotFound, resp.Code)
	body := decodeError(t, resp)
	assert.Equal(t, "Summary not found.", body.Error)
	assert.Equal(t, CodeNotFound, body.Code)
}

func TestHandlerStoreFailures(t *testing.T) {
	svc := &Service{Repo: brokenRepo{err: errors.New("db down")}, LLM: &fakeGenerator{text: "s"}}
	r := newTestRouter(svc)

	cases := []struct {
		method, path, body, message string
	}{
		{http.MethodGet, "/api/summaries", "", "Internal server error fetching summaries."},
		{http.MethodPut, "/api/summaries/x", `{"generatedSummary":"y"}`, "Internal server error updating summary."},
		{http.MethodDelete, "/api/summaries/x", "", "Internal server error deleting summary."},
		{http.MethodPost, "/api/summarize", `{"transcript":"t"}`, "Internal server error during summarization."},
	}
	for _, tc := range cases {
		resp := doJSON(t, r, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusInternalServerError, resp.Code, tc.path)
		body := decodeError(t, resp)
		assert.Equal(t, tc.message, body.Error)
		assert.Equal(t, CodeStore, body.Code)
		assert.Contains(t, body.Details, "db down")
	}
}

func TestHandlerShare(t *testing.T) {
	svc, _, sender := newTestService(&fakeGenerator{})
	r := newTestRouter(svc)

	resp := doJSON(t, r, http.MethodPost, "/api/share", `{"to":"team@example.com","subject":"Sync","body":"<p>done</p>"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Email sent successfully!"}`, resp.Body.String())
	require.Len(t, sender.sent, 1)

	resp = doJSON(t, r, http.MethodPost, "/api/share", `{"to":"nobody","body":"x"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, CodeValidation, decodeError(t, resp).Code)

	sender.err = errors.New("smtp down")
	resp = doJSON(t, r, http.MethodPost, "/api/share", `{"to":"team@example.com","body":"x"}`)
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	body := decodeError(t, resp)
	assert.Equal(t, "Internal server error sending email.", body.Error)
	assert.Equal(t, CodeNotification, body.Code)
}
