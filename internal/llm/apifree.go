package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/deedgate/internal/model"
	"github.com/ppiankov/deedgate/internal/util"
)

const defaultAPIFreeURL = "https://apifreellm.com/api/v1/chat"

// APIFreeProvider implements the Provider interface for a free hosted
// chat endpoint with a plain JSON API
type APIFreeProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	config     Config
}

type apiFreeRequest struct {
	Message string `json:"message"`
}

type apiFreeResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// NewAPIFreeProvider creates a new free-API provider
func NewAPIFreeProvider(config Config) (*APIFreeProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required for the apifree provider")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultAPIFreeURL
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &APIFreeProvider{
		baseURL: baseURL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy),
			},
		},
		config: config,
	}, nil
}

// Name returns the provider name
func (p *APIFreeProvider) Name() string {
	return "apifree"
}

// IsAvailable checks if the endpoint is reachable
func (p *APIFreeProvider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.baseURL, nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode < http.StatusInternalServerError
}

// Extract sends the deed text to the chat endpoint and decodes the
// returned JSON into a candidate record
func (p *APIFreeProvider) Extract(ctx context.Context, rawText string) (model.CandidateRecord, error) {
	payload, err := json.Marshal(apiFreeRequest{Message: BuildPrompt(rawText)})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction request failed with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var apiResp apiFreeResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !apiResp.Success {
		return nil, fmt.Errorf("provider reported failure: %s", apiResp.Error)
	}
	if strings.TrimSpace(apiResp.Response) == "" {
		return nil, fmt.Errorf("provider returned an empty response")
	}

	return parseCandidate(apiResp.Response)
}
