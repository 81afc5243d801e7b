package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled schemas keyed by Schema.Name
var schemaCache sync.Map

// Validate checks raw against schema and returns *InvalidResponseError on
// any failure. A nil schema accepts everything.
func Validate(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &InvalidResponseError{Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}

	compiled, err := compile(schema)
	if err != nil {
		return &InvalidResponseError{Content: raw, Err: fmt.Errorf("schema %q: %w", schema.Name, err)}
	}
	if err := compiled.Validate(doc); err != nil {
		return &InvalidResponseError{Content: raw, Err: err}
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// the compiler wants plain decoded JSON values
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, err
	}
	var def any
	if err := json.Unmarshal(b, &def); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("schema://%s.json", schema.Name)
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, err
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
