package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CandidateRecord is the untyped key/value record produced by the extraction
// step. It is never trusted: every field goes through schema coercion before
// the core looks at it.
type CandidateRecord map[string]any

// Status is the recording status of a deed document
type Status string

const (
	StatusRecorded    Status = "RECORDED"
	StatusPreliminary Status = "PRELIMINARY"
	StatusPending     Status = "PENDING"
	StatusVoid        Status = "VOID"
)

// KnownStatuses lists the legal values for the status field
var KnownStatuses = []Status{StatusRecorded, StatusPreliminary, StatusPending, StatusVoid}

// ValidStatus reports whether s is one of the enumerated legal statuses
func ValidStatus(s string) bool {
	for _, k := range KnownStatuses {
		if string(k) == s {
			return true
		}
	}
	return false
}

// ParsedDeed is the strongly-typed record produced by schema coercion.
// Every field is present and well-typed; a partially-valid ParsedDeed
// never exists. Treated as immutable after construction.
type ParsedDeed struct {
	DocumentType  string          `json:"document_type"`
	DocumentID    string          `json:"document_id"`
	CountyRaw     string          `json:"county_raw"` // as extracted, not canonical
	State         string          `json:"state"`
	DateSigned    time.Time       `json:"date_signed"`
	DateRecorded  time.Time       `json:"date_recorded"`
	Grantor       string          `json:"grantor"`
	Grantee       string          `json:"grantee"`
	AmountNumeric decimal.Decimal `json:"amount_numeric"`
	AmountText    string          `json:"amount_text"`
	APN           string          `json:"apn"`
	Status        Status          `json:"status"`
}

// EnrichedDeed is a validated ParsedDeed plus reference-catalog data.
// It is the terminal artifact of the pipeline: it exists only for
// accepted records.
type EnrichedDeed struct {
	ParsedDeed

	CountyCanonical string          `json:"county_canonical"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
}

// CountyReference is one reference-catalog entry. The catalog is loaded
// once at startup and shared read-only across pipeline runs.
type CountyReference struct {
	Name    string          `json:"name"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}
