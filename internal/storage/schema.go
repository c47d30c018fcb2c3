package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed todos.schema.json
var todosSchemaJSON string

var todosSchema = jsonschema.MustCompileString("todos.schema.json", todosSchemaJSON)

// validate checks raw file contents against the todo file schema.
func validate(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse todo file: %w", err)
	}
	if err := todosSchema.Validate(doc); err != nil {
		return fmt.Errorf("validate todo file: %w", err)
	}
	return nil
}
