package model

import (
	"time"

	"github.com/google/uuid"
)

// Report is the complete artifact for one checked document: where the text
// came from, what extraction produced, and the accept/reject outcome.
type Report struct {
	ReportID  string    `json:"report_id"`
	Source    string    `json:"source"` // file path, URL, or "-" for stdin
	CheckedAt time.Time `json:"checked_at"`

	Extraction ExtractionMeta `json:"extraction"`
	Outcome    Outcome        `json:"outcome"`
}

// ExtractionMeta records how the candidate record was obtained
type ExtractionMeta struct {
	Provider  string `json:"provider"`        // openai, apifree, stub
	Model     string `json:"model,omitempty"` // model name, if any
	FromCache bool   `json:"from_cache"`      // extraction served from cache
	TextBytes int    `json:"text_bytes"`      // prepared source text size
}

// NewReport stamps a fresh report envelope for a source
func NewReport(source string) *Report {
	return &Report{
		ReportID:  uuid.NewString(),
		Source:    source,
		CheckedAt: time.Now().UTC(),
	}
}
