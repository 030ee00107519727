// Package worker runs many deed checks with bounded concurrency. Each
// record's pipeline run is fully independent; the only shared state is
// the immutable reference catalog, so no synchronization is needed
// beyond the semaphore.
package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ppiankov/deedgate/internal/model"
)

// Checker runs one document through the decision pipeline
type Checker interface {
	CheckText(ctx context.Context, source, rawText string) *model.Report
}

// Loader resolves a source argument into raw document text
type Loader interface {
	Load(ctx context.Context, source string) (string, error)
}

// BatchProcessor checks multiple sources concurrently
type BatchProcessor struct {
	loader      Loader
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(loader Loader, checker Checker, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &BatchProcessor{
		loader:      loader,
		checker:     checker,
		concurrency: concurrency,
	}
}

// Process checks every source and returns one report per source, in
// input order. A source that cannot be loaded gets a rejection report
// with the extraction_failure kind; it never aborts the rest of the batch.
func (b *BatchProcessor) Process(ctx context.Context, sources []string) []*model.Report {
	reports := make([]*model.Report, len(sources))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for i, source := range sources {
		wg.Add(1)
		go func(idx int, src string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				report := model.NewReport(src)
				report.Outcome = model.Reject(model.Rejectf(model.KindExtractionFailure,
					"batch cancelled: %v", ctx.Err()))
				reports[idx] = report
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			text, err := b.loader.Load(ctx, src)
			if err != nil {
				report := model.NewReport(src)
				report.Outcome = model.Reject(model.Rejectf(model.KindExtractionFailure,
					"load source: %v", err))
				reports[idx] = report
				return
			}

			reports[idx] = b.checker.CheckText(ctx, src, text)
		}(i, source)
	}

	wg.Wait()
	return reports
}

// ReadSources reads a batch list file: one source per line, blank lines
// and #-comments skipped
func ReadSources(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sources []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sources = append(sources, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("batch file %s contains no sources", path)
	}
	return sources, nil
}
