package summaries

import "time"

// Summary pairs a transcript, the prompt used on it and the generated text.
// Only GeneratedSummary changes after creation.
type Summary struct {
	ID                 string
	OriginalTranscript string
	CustomPrompt       string
	GeneratedSummary   string
	CreatedAt          time.Time
}

// ShareRequest carries a summary to email. Body is sent as the HTML body.
type ShareRequest struct {
	To      string
	Subject string
	Body    string
}
