// Test program to demonstrate gate decisions offline
// This shows rejection reasons and catalog enrichment working without
// any network access or API keys
package main

import (
	"fmt"
	"strings"

	"github.com/ppiankov/deedgate/internal/county"
	"github.com/ppiankov/deedgate/internal/llm"
	"github.com/ppiankov/deedgate/internal/model"
	"github.com/ppiankov/deedgate/internal/pipeline"
)

const catalogJSON = `[
  {"name": "Santa Clara", "tax_rate": "1.25"},
  {"name": "Orange", "tax_rate": "1.05"},
  {"name": "Saint Louis", "tax_rate": "1.10"}
]`

func baseCandidate() model.CandidateRecord {
	return model.CandidateRecord{
		"document_type":  "GRANT DEED",
		"document_id":    "2024-0012345",
		"county_raw":     "S. Clara Cnty",
		"state":          "CA",
		"date_signed":    "2024-03-01",
		"date_recorded":  "2024-03-15",
		"grantor":        "John A. Smith",
		"grantee":        []any{"Maria G. Lopez"},
		"amount_numeric": 1250000.00,
		"amount_text":    "One Million Two Hundred Fifty Thousand Dollars",
		"apn":            "123-45-678",
		"status":         "RECORDED",
	}
}

func main() {
	fmt.Println("=== Gate Decision Test ===")
	fmt.Println()

	catalog, err := county.ParseCatalog([]byte(catalogJSON))
	if err != nil {
		panic(err)
	}
	provider, _ := llm.NewProvider(llm.Config{Provider: "stub"})
	gate := pipeline.New(llm.NewExtractor(provider, nil, 0), catalog)

	cases := []struct {
		name   string
		mutate func(model.CandidateRecord)
	}{
		{"clean record", func(model.CandidateRecord) {}},
		{"dates out of order", func(c model.CandidateRecord) {
			c["date_signed"] = "2024-03-20"
		}},
		{"amount mismatch", func(c model.CandidateRecord) {
			c["amount_text"] = "One Million Dollars"
		}},
		{"unknown county", func(c model.CandidateRecord) {
			c["county_raw"] = "Atlantis"
		}},
		{"missing recording date", func(c model.CandidateRecord) {
			delete(c, "date_recorded")
		}},
	}

	for _, tc := range cases {
		fmt.Printf("Case: %s\n", tc.name)
		fmt.Println(strings.Repeat("-", 60))

		candidate := baseCandidate()
		tc.mutate(candidate)

		outcome := gate.Validate(candidate)
		if outcome.Accepted {
			fmt.Printf("  ✓ ACCEPTED\n")
			fmt.Printf("     - County:   %s (%s)\n", outcome.Deed.CountyCanonical, outcome.Deed.State)
			fmt.Printf("     - Tax rate: %s%%\n", outcome.Deed.TaxRate.String())
			fmt.Printf("     - Amount:   $%s\n", outcome.Deed.AmountNumeric.StringFixed(2))
		} else {
			fmt.Printf("  ✗ REJECTED: %s\n", outcome.Reason)
			fmt.Printf("     %s\n", outcome.Message)
		}
		fmt.Println()
	}

	fmt.Println("=== Test Complete ===")
	fmt.Println()
	fmt.Println("Note: this program never repairs a record.")
	fmt.Println("Every case above is decided by the same deterministic gate.")
}
