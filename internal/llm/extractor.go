package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/deedgate/internal/cache"
	"github.com/ppiankov/deedgate/internal/model"
)

// Extractor wraps a provider with result caching. Extraction is the only
// expensive, non-deterministic step in the system; everything downstream
// is a pure function, so caching by source text is safe.
type Extractor struct {
	provider Provider
	cache    cache.Cache // nil disables caching
	ttl      time.Duration
}

// NewExtractor creates an extractor over the given provider. A nil cache
// disables caching.
func NewExtractor(provider Provider, c cache.Cache, ttl time.Duration) *Extractor {
	return &Extractor{provider: provider, cache: c, ttl: ttl}
}

// Provider returns the name of the underlying provider
func (e *Extractor) Provider() string {
	return e.provider.Name()
}

// Extract produces a candidate record for the prepared source text. The
// second return reports whether the record came from cache.
func (e *Extractor) Extract(ctx context.Context, text string) (model.CandidateRecord, bool, error) {
	key := cache.Key(text)

	if e.cache != nil {
		if data, found := e.cache.Get(key); found {
			var record model.CandidateRecord
			if err := json.Unmarshal(data, &record); err == nil {
				return record, true, nil
			}
			// Corrupt entry: drop it and extract fresh
			_ = e.cache.Delete(key)
		}
	}

	record, err := e.provider.Extract(ctx, text)
	if err != nil {
		return nil, false, fmt.Errorf("%s extraction: %w", e.provider.Name(), err)
	}

	if e.cache != nil {
		if data, err := json.Marshal(record); err == nil {
			_ = e.cache.Set(key, data, e.ttl)
		}
	}

	return record, false, nil
}
