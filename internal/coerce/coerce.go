// Package coerce converts the untrusted, untyped candidate record produced
// by extraction into a strongly-typed ParsedDeed. Coercion fails rather
// than guesses: no defaults, no repairs, and a failure always names the
// offending field.
package coerce

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/deedgate/internal/model"
)

// dateLayouts is the fixed set of accepted date formats
var dateLayouts = []string{"2006-01-02", "01/02/2006", "January 2, 2006"}

// Record coerces a candidate record into a ParsedDeed. Every required
// field must be present and convertible to its declared type; the first
// violation aborts coercion, so a partially-valid deed never exists.
func Record(c model.CandidateRecord) (*model.ParsedDeed, *model.Rejection) {
	deed := &model.ParsedDeed{}

	var rej *model.Rejection
	if deed.DocumentType, rej = stringField(c, "document_type"); rej != nil {
		return nil, rej
	}
	if deed.DocumentID, rej = stringField(c, "document_id"); rej != nil {
		return nil, rej
	}
	if deed.CountyRaw, rej = stringField(c, "county_raw"); rej != nil {
		return nil, rej
	}
	if deed.State, rej = stateField(c, "state"); rej != nil {
		return nil, rej
	}
	if deed.DateSigned, rej = dateField(c, "date_signed"); rej != nil {
		return nil, rej
	}
	if deed.DateRecorded, rej = dateField(c, "date_recorded"); rej != nil {
		return nil, rej
	}
	if deed.Grantor, rej = stringField(c, "grantor"); rej != nil {
		return nil, rej
	}
	if deed.Grantee, rej = granteeField(c, "grantee"); rej != nil {
		return nil, rej
	}
	if deed.AmountNumeric, rej = amountField(c, "amount_numeric"); rej != nil {
		return nil, rej
	}
	if deed.AmountText, rej = stringField(c, "amount_text"); rej != nil {
		return nil, rej
	}
	if deed.APN, rej = stringField(c, "apn"); rej != nil {
		return nil, rej
	}
	if deed.Status, rej = statusField(c, "status"); rej != nil {
		return nil, rej
	}

	return deed, nil
}

func schemaErr(field, format string, args ...any) *model.Rejection {
	return model.Rejectf(model.KindSchemaError, "field %q: %s", field, fmt.Sprintf(format, args...))
}

func rawValue(c model.CandidateRecord, field string) (any, *model.Rejection) {
	v, ok := c[field]
	if !ok || v == nil {
		return nil, schemaErr(field, "missing required field")
	}
	return v, nil
}

func stringField(c model.CandidateRecord, field string) (string, *model.Rejection) {
	v, rej := rawValue(c, field)
	if rej != nil {
		return "", rej
	}
	s, ok := v.(string)
	if !ok {
		return "", schemaErr(field, "expected string, got %T", v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", schemaErr(field, "must not be empty")
	}
	return s, nil
}

func stateField(c model.CandidateRecord, field string) (string, *model.Rejection) {
	s, rej := stringField(c, field)
	if rej != nil {
		return "", rej
	}
	s = strings.ToUpper(s)
	if len(s) != 2 || s[0] < 'A' || s[0] > 'Z' || s[1] < 'A' || s[1] > 'Z' {
		return "", schemaErr(field, "expected two-letter state code, got %q", s)
	}
	return s, nil
}

func dateField(c model.CandidateRecord, field string) (time.Time, *model.Rejection) {
	s, rej := stringField(c, field)
	if rej != nil {
		return time.Time{}, rej
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, schemaErr(field, "invalid date %q (accepted formats: %s)",
		s, strings.Join(dateLayouts, ", "))
}

// granteeField accepts either a string or an array of strings; the
// extraction step emits both shapes. Arrays are joined deterministically.
func granteeField(c model.CandidateRecord, field string) (string, *model.Rejection) {
	v, rej := rawValue(c, field)
	if rej != nil {
		return "", rej
	}

	switch g := v.(type) {
	case string:
		if strings.TrimSpace(g) == "" {
			return "", schemaErr(field, "must not be empty")
		}
		return strings.TrimSpace(g), nil

	case []any:
		if len(g) == 0 {
			return "", schemaErr(field, "must not be empty")
		}
		names := make([]string, len(g))
		for i, item := range g {
			s, ok := item.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return "", schemaErr(field, "expected array of non-empty strings")
			}
			names[i] = strings.TrimSpace(s)
		}
		return strings.Join(names, "; "), nil

	default:
		return "", schemaErr(field, "expected string or array of strings, got %T", v)
	}
}

func amountField(c model.CandidateRecord, field string) (decimal.Decimal, *model.Rejection) {
	v, rej := rawValue(c, field)
	if rej != nil {
		return decimal.Zero, rej
	}

	var d decimal.Decimal
	var err error

	switch n := v.(type) {
	case float64:
		d = decimal.NewFromFloat(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int64:
		d = decimal.NewFromInt(n)
	case json.Number:
		d, err = decimal.NewFromString(n.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(n))
	default:
		return decimal.Zero, schemaErr(field, "expected number, got %T", v)
	}
	if err != nil {
		return decimal.Zero, schemaErr(field, "invalid decimal %v", v)
	}

	if d.IsNegative() {
		return decimal.Zero, schemaErr(field, "must be non-negative, got %s", d)
	}
	if !d.Equal(d.Truncate(2)) {
		return decimal.Zero, schemaErr(field, "more than 2 fraction digits: %s", d)
	}
	return d, nil
}

func statusField(c model.CandidateRecord, field string) (model.Status, *model.Rejection) {
	s, rej := stringField(c, field)
	if rej != nil {
		return "", rej
	}
	s = strings.ToUpper(s)
	if !model.ValidStatus(s) {
		return "", schemaErr(field, "unknown status %q (legal values: %v)", s, model.KnownStatuses)
	}
	return model.Status(s), nil
}
