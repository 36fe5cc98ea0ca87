package layout

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed layout.schema.json
var schemaJSON string

const schemaURL = "layout.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON schema static layout files are validated against.
func Schema() string { return schemaJSON }

func layoutSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateJSON checks a JSON layout description against the layout schema.
func ValidateJSON(data []byte) error {
	schema, err := layoutSchema()
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("layout schema: %w", err)
	}
	return nil
}
