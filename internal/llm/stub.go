package llm

import (
	"context"

	"github.com/ppiankov/deedgate/internal/model"
)

// SampleDeedText is a noisy recorder-office fixture. Note that it is a
// deliberately bad deed: the dates are out of order and the written amount
// does not match the numeric one, so running it through the pipeline
// demonstrates a rejection, not an acceptance.
const SampleDeedText = `*** RECORDING REQ ***
Doc: DEED-TRUST-0042
County: S. Clara | State: CA
Date Signed: 2024-01-15
Date Recorded: 2024-01-10
Grantor: T.E.S.L.A. Holdings LLC
Grantee: John & Sarah Connor
Amount: $1,250,000.00 (One Million Two Hundred Thousand Dollars)
APN: 992-001-XA
Status: PRELIMINARY
*** END ***`

// stubCandidateJSON is what a well-behaved extractor returns for the
// sample text: faithful to the document, errors included.
const stubCandidateJSON = `{
  "document_type": "DEED-TRUST",
  "document_id": "DEED-TRUST-0042",
  "county_raw": "S. Clara",
  "state": "CA",
  "date_signed": "2024-01-15",
  "date_recorded": "2024-01-10",
  "grantor": "T.E.S.L.A. Holdings LLC",
  "grantee": ["John Connor", "Sarah Connor"],
  "amount_numeric": 1250000,
  "amount_text": "One Million Two Hundred Thousand Dollars",
  "apn": "992-001-XA",
  "status": "PRELIMINARY"
}`

// StubProvider is the offline extraction provider. It returns the fixed
// candidate record for the embedded sample text, which keeps the full
// pipeline runnable in environments without network access.
type StubProvider struct{}

// NewStubProvider creates the offline stub provider
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// Name returns the provider name
func (p *StubProvider) Name() string {
	return "stub"
}

// IsAvailable always reports true; the stub needs nothing
func (p *StubProvider) IsAvailable(ctx context.Context) bool {
	return true
}

// Extract returns the fixed candidate record regardless of input
func (p *StubProvider) Extract(ctx context.Context, rawText string) (model.CandidateRecord, error) {
	return parseCandidate(stubCandidateJSON)
}
