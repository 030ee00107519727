package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func apiFreeServer(t *testing.T, handler http.HandlerFunc) *APIFreeProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAPIFreeProvider(Config{
		Provider: "apifree",
		APIKey:   "test-key",
		BaseURL:  server.URL,
		Timeout:  5,
	})
	if err != nil {
		t.Fatalf("NewAPIFreeProvider failed: %v", err)
	}
	return p
}

func TestAPIFreeProvider_Extract(t *testing.T) {
	p := apiFreeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}

		var req apiFreeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}

		_ = json.NewEncoder(w).Encode(apiFreeResponse{
			Success:  true,
			Response: "```json\n" + stubCandidateJSON + "\n```",
		})
	})

	record, err := p.Extract(context.Background(), SampleDeedText)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if record["document_type"] != "DEED-TRUST" {
		t.Errorf("unexpected document_type: %v", record["document_type"])
	}
}

func TestAPIFreeProvider_ErrorStatus(t *testing.T) {
	p := apiFreeServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	if _, err := p.Extract(context.Background(), SampleDeedText); err == nil {
		t.Error("expected non-200 status to fail extraction")
	}
}

func TestAPIFreeProvider_ReportedFailure(t *testing.T) {
	p := apiFreeServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(apiFreeResponse{Success: false, Error: "model overloaded"})
	})

	if _, err := p.Extract(context.Background(), SampleDeedText); err == nil {
		t.Error("expected success=false to fail extraction")
	}
}

func TestAPIFreeProvider_NonJSONContent(t *testing.T) {
	p := apiFreeServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(apiFreeResponse{Success: true, Response: "not json at all"})
	})

	if _, err := p.Extract(context.Background(), SampleDeedText); err == nil {
		t.Error("expected non-JSON content to fail extraction")
	}
}

func TestNewAPIFreeProvider_RequiresKey(t *testing.T) {
	if _, err := NewAPIFreeProvider(Config{Provider: "apifree"}); err == nil {
		t.Error("expected missing API key to fail")
	}
}
