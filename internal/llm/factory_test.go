package llm

import "testing"

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantErr  bool
	}{
		{"stub", Config{Provider: "stub"}, "stub", false},
		{"empty defaults to stub", Config{}, "stub", false},
		{"apifree without key falls back to stub", Config{Provider: "apifree"}, "stub", false},
		{"apifree with key", Config{Provider: "apifree", APIKey: "k"}, "apifree", false},
		{"openai with key", Config{Provider: "openai", APIKey: "k"}, "openai", false},
		{"openai without key", Config{Provider: "openai"}, "", true},
		{"unknown", Config{Provider: "psychic"}, "", true},
	}

	for _, tt := range tests {
		p, err := NewProvider(tt.config)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if p.Name() != tt.wantName {
			t.Errorf("%s: expected provider %q, got %q", tt.name, tt.wantName, p.Name())
		}
	}
}
