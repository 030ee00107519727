package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/deedgate/internal/model"
)

// Renderer writes reports to files and the terminal
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Deed Check: %s\n\n", report.Source)
	fmt.Fprintf(&b, "- Report ID: %s\n", report.ReportID)
	fmt.Fprintf(&b, "- Checked: %s\n", report.CheckedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Extraction: %s", report.Extraction.Provider)
	if report.Extraction.FromCache {
		b.WriteString(" (cached)")
	}
	b.WriteString("\n\n")

	if report.Outcome.Accepted {
		deed := report.Outcome.Deed
		b.WriteString("## Accepted\n\n")
		fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Document | %s (%s) |\n", deed.DocumentID, deed.DocumentType)
		fmt.Fprintf(&b, "| County | %s (canonical: %s) |\n", deed.CountyRaw, deed.CountyCanonical)
		fmt.Fprintf(&b, "| State | %s |\n", deed.State)
		fmt.Fprintf(&b, "| Signed | %s |\n", deed.DateSigned.Format("2006-01-02"))
		fmt.Fprintf(&b, "| Recorded | %s |\n", deed.DateRecorded.Format("2006-01-02"))
		fmt.Fprintf(&b, "| Grantor | %s |\n", deed.Grantor)
		fmt.Fprintf(&b, "| Grantee | %s |\n", deed.Grantee)
		fmt.Fprintf(&b, "| Amount | %s |\n", deed.AmountNumeric)
		fmt.Fprintf(&b, "| Tax rate | %s |\n", deed.TaxRate)
		fmt.Fprintf(&b, "| Status | %s |\n", deed.Status)
	} else {
		b.WriteString("## Rejected\n\n")
		fmt.Fprintf(&b, "- Reason: `%s`\n", report.Outcome.Reason)
		fmt.Fprintf(&b, "- Detail: %s\n", report.Outcome.Message)
	}

	if r.includeFooter {
		b.WriteString("\n---\n_Generated by deedgate. Rejection is terminal: resubmit a corrected document to get a different outcome._\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints the outcome to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	if report.Outcome.Accepted {
		deed := report.Outcome.Deed
		fmt.Printf("✅ Deed accepted: %s\n", deed.DocumentID)
		fmt.Printf("   County: %s  Tax rate: %s  Amount: %s\n",
			deed.CountyCanonical, deed.TaxRate, deed.AmountNumeric)
	} else {
		fmt.Println("❌ Deed rejected")
		fmt.Printf("   Reason: %s\n", report.Outcome.Reason)
		fmt.Printf("   %s\n", report.Outcome.Message)
	}
}
