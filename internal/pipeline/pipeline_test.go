package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/deedgate/internal/cache"
	"github.com/ppiankov/deedgate/internal/county"
	"github.com/ppiankov/deedgate/internal/llm"
	"github.com/ppiankov/deedgate/internal/model"
)

const catalogJSON = `[
  {"name": "Santa Clara", "tax_rate": 1.25},
  {"name": "Orange", "tax_rate": "1.10"},
  {"name": "East Orange", "tax_rate": 1.00},
  {"name": "West Orange", "tax_rate": 1.00}
]`

func newTestPipeline(t *testing.T, extractor *llm.Extractor) *Pipeline {
	t.Helper()
	catalog, err := county.ParseCatalog([]byte(catalogJSON))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}
	return New(extractor, catalog)
}

func validCandidate() model.CandidateRecord {
	return model.CandidateRecord{
		"document_type":  "DEED-TRUST",
		"document_id":    "DEED-TRUST-0042",
		"county_raw":     "S. Clara",
		"state":          "CA",
		"date_signed":    "2024-01-10",
		"date_recorded":  "2024-01-15",
		"grantor":        "T.E.S.L.A. Holdings LLC",
		"grantee":        []any{"John Connor", "Sarah Connor"},
		"amount_numeric": float64(1250000),
		"amount_text":    "One Million Two Hundred Fifty Thousand Dollars",
		"apn":            "992-001-XA",
		"status":         "PRELIMINARY",
	}
}

func TestValidate_Accepted(t *testing.T) {
	p := newTestPipeline(t, nil)

	outcome := p.Validate(validCandidate())
	if !outcome.Accepted {
		t.Fatalf("expected acceptance, got %s: %s", outcome.Reason, outcome.Message)
	}
	if outcome.Deed == nil {
		t.Fatal("accepted outcome must carry the enriched deed")
	}
	if outcome.Deed.CountyCanonical != "Santa Clara" {
		t.Errorf("expected canonical county Santa Clara, got %q", outcome.Deed.CountyCanonical)
	}
	if !outcome.Deed.TaxRate.Equal(decimal.RequireFromString("1.25")) {
		t.Errorf("expected tax rate 1.25, got %s", outcome.Deed.TaxRate)
	}
	if outcome.Reason != "" || outcome.Message != "" {
		t.Error("accepted outcome must not carry a rejection reason")
	}
}

func TestValidate_SchemaError(t *testing.T) {
	p := newTestPipeline(t, nil)

	c := validCandidate()
	delete(c, "date_recorded")

	outcome := p.Validate(c)
	if outcome.Accepted || outcome.Reason != model.KindSchemaError {
		t.Fatalf("expected %s, got %+v", model.KindSchemaError, outcome)
	}
	if !strings.Contains(outcome.Message, "date_recorded") {
		t.Errorf("message %q should name the field", outcome.Message)
	}
	if outcome.Deed != nil {
		t.Error("rejected outcome must not carry a deed")
	}
}

func TestValidate_InvalidDateOrder(t *testing.T) {
	p := newTestPipeline(t, nil)

	c := validCandidate()
	c["date_signed"] = "2024-01-15"
	c["date_recorded"] = "2024-01-10"

	outcome := p.Validate(c)
	if outcome.Accepted || outcome.Reason != model.KindInvalidDateOrder {
		t.Fatalf("expected %s, got %+v", model.KindInvalidDateOrder, outcome)
	}
	for _, want := range []string{"2024-01-15", "2024-01-10"} {
		if !strings.Contains(outcome.Message, want) {
			t.Errorf("message %q should contain %s", outcome.Message, want)
		}
	}
}

func TestValidate_AmountMismatch(t *testing.T) {
	p := newTestPipeline(t, nil)

	c := validCandidate()
	c["amount_text"] = "One Million Two Hundred Thousand Dollars"

	outcome := p.Validate(c)
	if outcome.Accepted || outcome.Reason != model.KindAmountMismatch {
		t.Fatalf("expected %s, got %+v", model.KindAmountMismatch, outcome)
	}
}

func TestValidate_UnknownCounty(t *testing.T) {
	p := newTestPipeline(t, nil)

	c := validCandidate()
	c["county_raw"] = "Unknown County"

	outcome := p.Validate(c)
	if outcome.Accepted || outcome.Reason != model.KindUnknownCounty {
		t.Fatalf("expected %s, got %+v", model.KindUnknownCounty, outcome)
	}
}

func TestValidate_AmbiguousCountyFailsClosed(t *testing.T) {
	p := newTestPipeline(t, nil)

	c := validCandidate()
	c["county_raw"] = "East West Orange"

	outcome := p.Validate(c)
	if outcome.Accepted || outcome.Reason != model.KindUnknownCounty {
		t.Fatalf("expected ambiguous county to be rejected, got %+v", outcome)
	}
	if !strings.Contains(outcome.Message, "ambiguous") {
		t.Errorf("message %q should say the match was ambiguous", outcome.Message)
	}
}

func TestValidate_StageOrder(t *testing.T) {
	p := newTestPipeline(t, nil)

	// Bad schema beats bad dates beats bad county: the pipeline is linear
	c := validCandidate()
	c["status"] = "DRAFT"
	c["date_signed"] = "2024-01-15"
	c["date_recorded"] = "2024-01-10"
	c["county_raw"] = "Nowhere"

	outcome := p.Validate(c)
	if outcome.Reason != model.KindSchemaError {
		t.Errorf("coercion must run first, got %s", outcome.Reason)
	}

	c = validCandidate()
	c["date_signed"] = "2024-01-15"
	c["date_recorded"] = "2024-01-10"
	c["county_raw"] = "Nowhere"

	outcome = p.Validate(c)
	if outcome.Reason != model.KindInvalidDateOrder {
		t.Errorf("validators must run before enrichment, got %s", outcome.Reason)
	}
}

// failingProvider simulates an extraction collaborator that cannot
// produce a candidate record
type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }
func (failingProvider) IsAvailable(ctx context.Context) bool {
	return false
}
func (failingProvider) Extract(ctx context.Context, rawText string) (model.CandidateRecord, error) {
	return nil, errors.New("model unavailable")
}

func TestCheckText_ExtractionFailure(t *testing.T) {
	extractor := llm.NewExtractor(failingProvider{}, nil, 0)
	p := newTestPipeline(t, extractor)

	report := p.CheckText(context.Background(), "test.txt", llm.SampleDeedText)
	if report.Outcome.Accepted || report.Outcome.Reason != model.KindExtractionFailure {
		t.Fatalf("expected %s, got %+v", model.KindExtractionFailure, report.Outcome)
	}
}

func TestCheckText_StubSampleIsRejected(t *testing.T) {
	// The embedded sample deed has out-of-order dates; the stub extracts
	// it faithfully and the pipeline must reject it.
	extractor := llm.NewExtractor(llm.NewStubProvider(), nil, 0)
	p := newTestPipeline(t, extractor)

	report := p.CheckText(context.Background(), "sample", llm.SampleDeedText)
	if report.Outcome.Accepted {
		t.Fatal("sample deed must be rejected")
	}
	if report.Outcome.Reason != model.KindInvalidDateOrder {
		t.Errorf("expected %s, got %s", model.KindInvalidDateOrder, report.Outcome.Reason)
	}
	if report.ReportID == "" || report.Source != "sample" {
		t.Error("report envelope not populated")
	}
}

func TestCheckText_CachesExtraction(t *testing.T) {
	extractor := llm.NewExtractor(llm.NewStubProvider(), cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	p := newTestPipeline(t, extractor)

	first := p.CheckText(context.Background(), "sample", llm.SampleDeedText)
	if first.Extraction.FromCache {
		t.Error("first run must not be served from cache")
	}

	second := p.CheckText(context.Background(), "sample", llm.SampleDeedText)
	if !second.Extraction.FromCache {
		t.Error("second run should be served from cache")
	}
	if second.Outcome.Reason != first.Outcome.Reason {
		t.Error("cached extraction must produce the same outcome")
	}
}

func TestValidate_Deterministic(t *testing.T) {
	p := newTestPipeline(t, nil)
	for i := 0; i < 5; i++ {
		outcome := p.Validate(validCandidate())
		if !outcome.Accepted {
			t.Fatalf("run %d: expected acceptance, got %+v", i, outcome)
		}
	}
}
