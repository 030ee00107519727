package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/deedgate/internal/llm"
	"github.com/ppiankov/deedgate/internal/model"
	"github.com/ppiankov/deedgate/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	noFooter     bool
	insecureTLS  bool
	httpProxy    string
	httpsProxy   string
	llmProvider  string
	llmModel     string
	countiesPath string
	useSample    bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [file|url|-]",
	Short: "Check a single deed document and decide accept or reject",
	Long: `Check runs one deed document through the full gate:
- Load raw text from a file, a URL, or stdin (-)
- Extract an untyped candidate record via the configured provider
- Coerce it against the deed schema
- Validate date ordering and numeric vs written amount
- Match the county against the reference catalog and enrich

The result is a single report: accepted with an enriched record, or
rejected with one machine-readable reason.

Example:
  deedgate check deed.txt
  deedgate check https://recorder.example.gov/deed/2024-0012345
  cat deed.txt | deedgate check -
  deedgate check --sample
  deedgate check deed.txt --llm-provider openai --json report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Input flags
	checkCmd.Flags().BoolVar(&useSample, "sample", false, "check the built-in sample deed instead of a source argument")

	// HTTP flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&userAgent, "ua", "Deedgate/0.1 (+https://github.com/ppiankov/deedgate)", "HTTP User-Agent")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	checkCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	checkCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	checkCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Cache flags
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache (force fresh extraction)")

	// Extraction flags
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "extraction provider (openai, apifree, stub; default from config)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "extraction model name (provider-specific)")

	// Reference flags
	checkCmd.Flags().StringVar(&countiesPath, "counties", "", "county reference catalog path (default from config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !useSample {
		return fmt.Errorf("provide a source argument (file, URL, or -) or use --sample")
	}
	if len(args) == 1 && useSample {
		return fmt.Errorf("--sample cannot be combined with a source argument")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildCheckConfig()
	if err := resolveAPIKey(cfg); err != nil {
		return err
	}

	p, fetcher, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	var report *model.Report
	if useSample {
		if verbose {
			fmt.Fprintln(os.Stderr, "Checking built-in sample deed")
		}
		report = p.CheckText(ctx, "sample", llm.SampleDeedText)
	} else {
		source := args[0]
		if verbose {
			fmt.Fprintf(os.Stderr, "Checking: %s\n", source)
		}
		text, err := fetcher.Load(ctx, source)
		if err != nil {
			return fmt.Errorf("load source: %w", err)
		}
		report = p.CheckText(ctx, source, text)
	}

	renderer := pipeline.NewRenderer(!noFooter)
	renderer.RenderSummary(report)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "JSON report: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("write Markdown report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Markdown report: %s\n", outMD)
		}
	}

	if !report.Outcome.Accepted {
		os.Exit(1)
	}
	return nil
}

// buildCheckConfig layers check command flags over the defaults
func buildCheckConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if countiesPath != "" {
		cfg.Reference.CountiesPath = countiesPath
	}
	return cfg
}
