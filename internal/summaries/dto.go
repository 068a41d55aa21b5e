package summaries

import "time"

// SummaryResponse is the outward-facing representation of a summary.
type SummaryResponse struct {
	ID                 string    `json:"_id"`
	OriginalTranscript string    `json:"originalTranscript"`
	CustomPrompt       string    `json:"customPrompt"`
	GeneratedSummary   string    `json:"generatedSummary"`
	CreatedAt          time.Time `json:"createdAt"`
}

// SummarizeResponse is returned by POST /summarize.
type SummarizeResponse struct {
	Summary string `json:"summary"`
	ID      string `json:"_id"`
}

type summarizeRequest struct {
	Transcript string `json:"transcript"`
	Prompt     string `json:"prompt"`
}

type updateRequest struct {
	GeneratedSummary *string `json:"generatedSummary"`
}

type shareRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func toResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		ID:                 s.ID,
		OriginalTranscript: s.OriginalTranscript,
		CustomPrompt:       s.CustomPrompt,
		GeneratedSummary:   s.GeneratedSummary,
		CreatedAt:          s.CreatedAt.UTC(),
	}
}

func toResponses(list []Summary) []SummaryResponse {
	out := make([]SummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toResponse(s))
	}
	return out
}
