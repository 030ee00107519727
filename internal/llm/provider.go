// Package llm is the extraction collaborator: it turns raw deed text into
// an untyped candidate record. Providers are untrusted; their output is
// shape-checked here and fully re-validated by the core pipeline. Any
// provider failure is an extraction failure, never a partial record.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/deedgate/internal/model"
)

// Provider defines the interface for extraction providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Extract converts raw deed text into an untyped candidate record
	Extract(ctx context.Context, rawText string) (model.CandidateRecord, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Config holds extraction provider configuration
type Config struct {
	// Provider name: "openai", "apifree", "stub", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "stub",
		Timeout:   60,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// systemPrompt forbids the one thing an extraction step must never do:
// improve the data.
const systemPrompt = `You extract structured data from legal documents.
You do NOT fix errors.
You do NOT infer missing values.
You ONLY return valid JSON that matches the requested fields.`

const userPromptTemplate = `Extract the following deed text into a JSON object with these exact fields:

document_type
document_id
county_raw
state
date_signed (YYYY-MM-DD)
date_recorded (YYYY-MM-DD)
grantor
grantee (array of full names)
amount_numeric (number, no currency symbols)
amount_text
apn
status

Return ONLY JSON (no explanation, no markdown).

Text:
%s`

// BuildPrompt constructs the extraction prompt for a raw deed text
func BuildPrompt(rawText string) string {
	return fmt.Sprintf(userPromptTemplate, rawText)
}

var codeFenceRe = regexp.MustCompile(`(?is)^\x60\x60\x60(?:json)?\s*(.*?)\s*\x60\x60\x60$`)

// stripCodeFences removes a surrounding markdown code fence, which chat
// models add despite being told not to
func stripCodeFences(text string) string {
	t := strings.TrimSpace(text)
	if m := codeFenceRe.FindStringSubmatch(t); m != nil {
		return strings.TrimSpace(m[1])
	}
	return t
}

// parseCandidate decodes provider output into an untyped candidate record
// and shape-checks it against the deed schema. Numbers are kept as
// json.Number so no precision is lost before coercion.
func parseCandidate(content string) (model.CandidateRecord, error) {
	content = stripCodeFences(content)

	if err := ValidateShape([]byte(content)); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var record model.CandidateRecord
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("provider did not return a JSON object: %w", err)
	}
	return record, nil
}
