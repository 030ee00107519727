package coerce

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/deedgate/internal/model"
)

func candidate() model.CandidateRecord {
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

func TestRecord_Valid(t *testing.T) {
	deed, rej := Record(candidate())
	if rej != nil {
		t.Fatalf("coercion failed: %v", rej)
	}

	if deed.DocumentID != "DEED-TRUST-0042" {
		t.Errorf("unexpected document_id %q", deed.DocumentID)
	}
	if deed.Grantee != "John Connor; Sarah Connor" {
		t.Errorf("unexpected grantee %q", deed.Grantee)
	}
	if !deed.AmountNumeric.Equal(decimal.RequireFromString("1250000")) {
		t.Errorf("unexpected amount %s", deed.AmountNumeric)
	}
	if deed.Status != model.StatusPreliminary {
		t.Errorf("unexpected status %q", deed.Status)
	}
	if !deed.DateRecorded.After(deed.DateSigned) {
		t.Error("dates parsed out of order")
	}
}

func TestRecord_MissingFieldNamesField(t *testing.T) {
	c := candidate()
	delete(c, "date_recorded")

	_, rej := Record(c)
	if rej == nil {
		t.Fatal("expected rejection")
	}
	if rej.Kind != model.KindSchemaError {
		t.Errorf("expected %s, got %s", model.KindSchemaError, rej.Kind)
	}
	if !strings.Contains(rej.Message, "date_recorded") {
		t.Errorf("message %q should name the missing field", rej.Message)
	}
}

func TestRecord_FieldViolations(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   any
		wantMsg string
	}{
		{"wrong type", "grantor", 42, "expected string"},
		{"empty string", "apn", "  ", "empty"},
		{"bad state", "state", "CAL", "state code"},
		{"bad date", "date_signed", "15 Jan 2024", "invalid date"},
		{"negative amount", "amount_numeric", float64(-5), "non-negative"},
		{"sub-cent amount", "amount_numeric", "10.125", "fraction digits"},
		{"amount not a number", "amount_numeric", "one million", "invalid decimal"},
		{"unknown status", "status", "DRAFT", "unknown status"},
		{"grantee bad element", "grantee", []any{"John", 7}, "array"},
		{"nil value", "county_raw", nil, "missing"},
	}

	for _, tt := range tests {
		c := candidate()
		c[tt.field] = tt.value

		_, rej := Record(c)
		if rej == nil {
			t.Errorf("%s: expected rejection", tt.name)
			continue
		}
		if rej.Kind != model.KindSchemaError {
			t.Errorf("%s: expected %s, got %s", tt.name, model.KindSchemaError, rej.Kind)
		}
		if !strings.Contains(rej.Message, tt.field) {
			t.Errorf("%s: message %q should name field %q", tt.name, rej.Message, tt.field)
		}
		if !strings.Contains(rej.Message, tt.wantMsg) {
			t.Errorf("%s: message %q should mention %q", tt.name, rej.Message, tt.wantMsg)
		}
	}
}

func TestRecord_AcceptedDateFormats(t *testing.T) {
	for _, date := range []string{"2024-01-10", "01/10/2024", "January 10, 2024"} {
		c := candidate()
		c["date_signed"] = date
		if _, rej := Record(c); rej != nil {
			t.Errorf("date %q should coerce, got %v", date, rej)
		}
	}
}

func TestRecord_AmountShapes(t *testing.T) {
	for _, amount := range []any{float64(1250000), "1250000.00", int(1250000)} {
		c := candidate()
		c["amount_numeric"] = amount
		deed, rej := Record(c)
		if rej != nil {
			t.Errorf("amount %v should coerce, got %v", amount, rej)
			continue
		}
		if !deed.AmountNumeric.Equal(decimal.RequireFromString("1250000")) {
			t.Errorf("amount %v coerced to %s", amount, deed.AmountNumeric)
		}
	}
}

func TestRecord_GranteeString(t *testing.T) {
	c := candidate()
	c["grantee"] = "John & Sarah Connor"
	deed, rej := Record(c)
	if rej != nil {
		t.Fatalf("coercion failed: %v", rej)
	}
	if deed.Grantee != "John & Sarah Connor" {
		t.Errorf("unexpected grantee %q", deed.Grantee)
	}
}

func TestRecord_CaseFoldedEnums(t *testing.T) {
	c := candidate()
	c["state"] = "ca"
	c["status"] = "recorded"

	deed, rej := Record(c)
	if rej != nil {
		t.Fatalf("coercion failed: %v", rej)
	}
	if deed.State != "CA" || deed.Status != model.StatusRecorded {
		t.Errorf("expected folded enums, got %q/%q", deed.State, deed.Status)
	}
}
