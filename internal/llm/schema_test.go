package llm

import "testing"

func TestValidateShape(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"full candidate", stubCandidateJSON, false},
		{"partial object is fine, coercion owns required fields", `{"document_id": "X-1"}`, false},
		{"empty object", `{}`, false},
		{"not an object", `[1, 2, 3]`, true},
		{"not json", `hello`, true},
		{"amount as object", `{"amount_numeric": {"value": 5}}`, true},
		{"grantee as number", `{"grantee": 12}`, true},
		{"date as number", `{"date_signed": 20240110}`, true},
	}

	for _, tt := range tests {
		err := ValidateShape([]byte(tt.json))
		if tt.wantErr && err == nil {
			t.Errorf("%s: expected shape validation to fail", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
	}
}
