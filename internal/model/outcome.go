package model

import "fmt"

// ErrorKind tags the reason a record was rejected
type ErrorKind string

const (
	KindSchemaError       ErrorKind = "schema_error"       // coercion failure, names the field
	KindAmountParse       ErrorKind = "amount_parse_error" // written amount not deterministically parseable
	KindInvalidDateOrder  ErrorKind = "invalid_date_order"
	KindAmountMismatch    ErrorKind = "amount_mismatch"
	KindUnknownCounty     ErrorKind = "unknown_county"      // no confident or unambiguous match
	KindExtractionFailure ErrorKind = "extraction_failure"  // collaborator produced no candidate record
)

// Rejection is the tagged failure returned by pipeline stages. Rejections
// are terminal for a record: nothing retries or repairs, the caller must
// resubmit a corrected candidate.
type Rejection struct {
	Kind    ErrorKind
	Message string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

// Rejectf builds a Rejection with a formatted message
func Rejectf(kind ErrorKind, format string, args ...any) *Rejection {
	return &Rejection{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Outcome is the single value the orchestrator returns. Either Deed is set
// (accepted) or Reason/Message are (rejected); never both.
type Outcome struct {
	Accepted bool          `json:"accepted"`
	Deed     *EnrichedDeed `json:"deed,omitempty"`
	Reason   ErrorKind     `json:"reason,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// Accept builds an accepted outcome
func Accept(deed *EnrichedDeed) Outcome {
	return Outcome{Accepted: true, Deed: deed}
}

// Reject builds a rejected outcome from a Rejection
func Reject(r *Rejection) Outcome {
	return Outcome{Accepted: false, Reason: r.Kind, Message: r.Message}
}
