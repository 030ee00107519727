package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates an extraction provider based on configuration.
// An empty provider name and the apifree provider without an API key both
// resolve to the offline stub, so the tool stays usable without network
// access or credentials.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "apifree":
		if config.APIKey == "" {
			return NewStubProvider(), nil
		}
		return NewAPIFreeProvider(config)

	case "stub", "":
		return NewStubProvider(), nil

	default:
		return nil, fmt.Errorf("unknown extraction provider: %s (supported: openai, apifree, stub)", config.Provider)
	}
}
