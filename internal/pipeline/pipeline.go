// Package pipeline orchestrates the deed decision: coercion, validation,
// enrichment. The pipeline is strictly linear with early exits; the first
// failing stage decides the outcome and nothing downstream runs. Only this
// package decides accept/reject — the stages report local failures.
package pipeline

import (
	"context"

	"github.com/ppiankov/deedgate/internal/coerce"
	"github.com/ppiankov/deedgate/internal/county"
	"github.com/ppiankov/deedgate/internal/extract"
	"github.com/ppiankov/deedgate/internal/llm"
	"github.com/ppiankov/deedgate/internal/model"
	"github.com/ppiankov/deedgate/internal/validate"
)

// Pipeline runs candidate records through the decision core. The matcher's
// catalog is immutable, so one Pipeline is safe for concurrent use; each
// record's run is fully independent.
type Pipeline struct {
	extractor *llm.Extractor
	matcher   *county.Matcher
}

// New creates a pipeline over the given extractor and reference catalog
func New(extractor *llm.Extractor, catalog *county.Catalog) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		matcher:   county.NewMatcher(catalog),
	}
}

// Validate is the deterministic core: candidate record in, single outcome
// out. No stage mutates its input; each produces a new, more specific
// value or a tagged rejection.
func (p *Pipeline) Validate(candidate model.CandidateRecord) model.Outcome {
	// 1. Coerce the untyped record
	deed, rej := coerce.Record(candidate)
	if rej != nil {
		return model.Reject(rej)
	}

	// 2. Cross-field checks, fixed order, first failure wins
	if rej := validate.All(deed); rej != nil {
		return model.Reject(rej)
	}

	// 3. Enrich from the reference catalog
	match, err := p.matcher.Best(deed.CountyRaw)
	if err != nil {
		return model.Reject(model.Rejectf(model.KindUnknownCounty, "%v", err))
	}

	enriched := &model.EnrichedDeed{
		ParsedDeed:      *deed,
		CountyCanonical: match.County.Name,
		TaxRate:         match.County.TaxRate,
	}
	return model.Accept(enriched)
}

// CheckText prepares the raw source text, obtains a candidate record from
// the extraction collaborator, and validates it. Extraction failures are
// terminal rejections with their own kind; partial extractor output is
// never inspected.
func (p *Pipeline) CheckText(ctx context.Context, source, rawText string) *model.Report {
	report := model.NewReport(source)

	text := extract.Prepare(rawText)
	report.Extraction = model.ExtractionMeta{
		Provider:  p.extractor.Provider(),
		TextBytes: len(text),
	}

	candidate, fromCache, err := p.extractor.Extract(ctx, text)
	if err != nil {
		report.Outcome = model.Reject(model.Rejectf(model.KindExtractionFailure, "%v", err))
		return report
	}
	report.Extraction.FromCache = fromCache

	report.Outcome = p.Validate(candidate)
	return report
}
