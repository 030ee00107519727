package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// candidateSchema shape-checks provider output: it must be a JSON object
// and any known field must carry a sensible primitive type. Required-field
// and value enforcement is deliberately left to schema coercion, which
// owns the schema_error taxonomy.
const candidateSchema = `{
  "type": "object",
  "properties": {
    "document_type":  {"type": "string"},
    "document_id":    {"type": "string"},
    "county_raw":     {"type": "string"},
    "state":          {"type": "string"},
    "date_signed":    {"type": "string"},
    "date_recorded":  {"type": "string"},
    "grantor":        {"type": "string"},
    "grantee":        {"type": ["string", "array"]},
    "amount_numeric": {"type": ["number", "string"]},
    "amount_text":    {"type": "string"},
    "apn":            {"type": "string"},
    "status":         {"type": "string"}
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("candidate.json", bytes.NewReader([]byte(candidateSchema))); err != nil {
		panic(fmt.Sprintf("add candidate schema: %v", err))
	}
	schema, err := compiler.Compile("candidate.json")
	if err != nil {
		panic(fmt.Sprintf("compile candidate schema: %v", err))
	}
	return schema
}

// ValidateShape validates raw provider JSON against the candidate schema
func ValidateShape(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("provider did not return valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("provider output does not match deed shape: %w", err)
	}
	return nil
}
