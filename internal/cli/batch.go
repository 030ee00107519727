package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ppiankov/deedgate/internal/pipeline"
	"github.com/ppiankov/deedgate/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noCache, noFooter, and the HTTP/LLM flags are defined in check.go
	// and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Check multiple deed documents from a list file in parallel",
	Long: `Batch checks multiple deed documents concurrently:
- Read sources from the input file (one file path or URL per line)
- Run every source through the full gate with a bounded worker count
- Write one JSON report per source into the output directory
- Print a per-source accept/reject summary and batch totals

A source that fails to load or extract gets a rejection report; it never
aborts the rest of the batch.

Example:
  deedgate batch deeds.txt
  deedgate batch deeds.txt --concurrency 10 --output-dir ./reports
  deedgate batch deeds.txt --llm-provider openai --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./deedgate-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from check command
	batchCmd.Flags().DurationVar(&timeout, "check-timeout", 30*time.Second, "HTTP timeout for individual loads")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Deedgate/0.1 (+https://github.com/ppiankov/deedgate)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache (force fresh extraction)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Extraction flags
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "extraction provider (openai, apifree, stub; default from config)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "extraction model name (provider-specific)")

	// Reference flags
	batchCmd.Flags().StringVar(&countiesPath, "counties", "", "county reference catalog path (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	sources, err := worker.ReadSources(file)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Deedgate Batch Check\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Sources:      %d\n", len(sources))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Build configuration
	cfg := buildCheckConfig()
	cfg.HTTP.Timeout = timeout
	cfg.Concurrency.Workers = concurrency
	if err := resolveAPIKey(cfg); err != nil {
		return err
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline and batch processor
	p, fetcher, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	processor := worker.NewBatchProcessor(fetcher, p, concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Checking %d sources with %d workers...\n", len(sources), concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	reports := processor.Process(ctx, sources)

	// Write per-source reports and tally outcomes
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	accepted := 0
	rejected := 0

	for _, report := range reports {
		if report.Outcome.Accepted {
			accepted++
			fmt.Fprintf(os.Stderr, "✓ %s\n", report.Source)
		} else {
			rejected++
			fmt.Fprintf(os.Stderr, "✗ %s: %s (%s)\n", report.Source, report.Outcome.Reason, report.Outcome.Message)
		}

		jsonPath := filepath.Join(outputDir, sanitizeFilename(report.Source)+".json")
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write report: %v\n", report.Source, err)
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d sources\n", len(reports))
	fmt.Fprintf(os.Stderr, "  Accepted:  %d\n", accepted)
	fmt.Fprintf(os.Stderr, "  Rejected:  %d\n", rejected)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename turns a source path or URL into a safe report filename
func sanitizeFilename(s string) string {
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" || s == "-" {
		s = "stdin"
	}
	return s
}
