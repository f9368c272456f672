package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas keyed by Schema.Name.
var compiled sync.Map

// ValidateJSON checks raw against schema. A nil schema accepts anything.
// Failures are *Error of KindInvalidResponse.
func ValidateJSON(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return invalidResponse(raw, "invalid JSON: %w", err)
	}

	sch, err := compile(schema)
	if err != nil {
		return invalidResponse(raw, "compile schema %q: %w", schema.Name, err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalidResponse(raw, "schema validation failed: %w", err)
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(schema.Name); ok {
		return s.(*jsonschema.Schema), nil
	}

	raw, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://llm/%s.json", schema.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	compiled.Store(schema.Name, s)
	return s, nil
}
