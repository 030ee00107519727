package model

import "time"

// Config is the full runtime configuration. Hierarchy: CLI flags >
// DEEDGATE_* environment variables > ~/.deedgate/config.yaml > defaults.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Reference   ReferenceConfig   `yaml:"reference" mapstructure:"reference"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls fetching deed text from URLs
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RatePerHost  float64       `yaml:"rate_per_host" mapstructure:"rate_per_host"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
}

// CacheConfig controls caching of extraction results
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LLMConfig selects and configures the extraction provider
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, apifree, stub
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // env only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ReferenceConfig locates the county reference catalog
type ReferenceConfig struct {
	CountiesPath string `yaml:"counties_path" mapstructure:"counties_path"`
}

// ConcurrencyConfig bounds batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Deedgate/0.1 (+https://github.com/ppiankov/deedgate)",
			MaxBodyBytes: 2_000_000,
			RatePerHost:  2.0,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.deedgate/cache at startup
			TTL:     24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "stub",
			Timeout:   60,
			MaxTokens: 1000,
		},
		Reference: ReferenceConfig{
			CountiesPath: "data/counties.json",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
