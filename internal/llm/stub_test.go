package llm

import (
	"context"
	"testing"
)

func TestStubProvider_Extract(t *testing.T) {
	p := NewStubProvider()

	record, err := p.Extract(context.Background(), SampleDeedText)
	if err != nil {
		t.Fatalf("stub extraction failed: %v", err)
	}

	if record["document_id"] != "DEED-TRUST-0042" {
		t.Errorf("unexpected document_id: %v", record["document_id"])
	}
	if record["county_raw"] != "S. Clara" {
		t.Errorf("unexpected county_raw: %v", record["county_raw"])
	}
	if _, ok := record["grantee"].([]any); !ok {
		t.Errorf("expected grantee to be an array, got %T", record["grantee"])
	}
}

func TestStubProvider_IsAvailable(t *testing.T) {
	if !NewStubProvider().IsAvailable(context.Background()) {
		t.Error("stub must always be available")
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{\"a\": 1}", "{\"a\": 1}"},
		{"```json\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"```\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"  {\"a\": 1}  ", "{\"a\": 1}"},
	}
	for _, tt := range tests {
		if got := stripCodeFences(tt.in); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCandidate_KeepsNumberPrecision(t *testing.T) {
	record, err := parseCandidate(`{"amount_numeric": 1250000.01}`)
	if err != nil {
		t.Fatalf("parseCandidate failed: %v", err)
	}
	// json.Number, not float64: precision must survive until coercion
	if _, ok := record["amount_numeric"].(interface{ String() string }); !ok {
		t.Errorf("expected json.Number, got %T", record["amount_numeric"])
	}
}

func TestParseCandidate_RejectsNonJSON(t *testing.T) {
	if _, err := parseCandidate("I could not read the document, sorry!"); err == nil {
		t.Error("expected prose response to be rejected")
	}
}
