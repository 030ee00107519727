package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/deedgate/internal/cache"
	"github.com/ppiankov/deedgate/internal/county"
	"github.com/ppiankov/deedgate/internal/fetch"
	"github.com/ppiankov/deedgate/internal/llm"
	"github.com/ppiankov/deedgate/internal/model"
	"github.com/ppiankov/deedgate/internal/pipeline"
)

// resolveAPIKey pulls the provider API key from the environment. The
// openai provider cannot run without a key; apifree degrades to the
// stub on its own.
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "apifree":
		cfg.LLM.APIKey = os.Getenv("APIFREE_API_KEY")
	}
	return nil
}

// cacheDir resolves the extraction cache directory, defaulting to
// ~/.deedgate/cache
func cacheDir(cfg *model.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".deedgate", "cache"), nil
}

// buildPipeline wires the full check stack from configuration: reference
// catalog, extraction provider, cache, and the decision pipeline.
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, *fetch.Fetcher, error) {
	catalog, err := county.LoadCatalog(cfg.Reference.CountiesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load county catalog: %w", err)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, fmt.Errorf("create extraction provider: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		dir, err := cacheDir(cfg)
		if err != nil {
			return nil, nil, err
		}
		store = cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
	}

	extractor := llm.NewExtractor(provider, store, cfg.Cache.TTL)

	if verbose {
		fmt.Fprintf(os.Stderr, "Catalog: %d counties from %s\n", catalog.Len(), cfg.Reference.CountiesPath)
		fmt.Fprintf(os.Stderr, "Provider: %s\n", extractor.Provider())
	}

	return pipeline.New(extractor, catalog), fetch.NewFetcher(cfg.HTTP), nil
}
