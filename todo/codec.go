package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const todosSchemaURL = "todos.schema.json"

const todosSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "title": {"type": "string"},
      "completed": {"type": "boolean"},
      "deleted": {"type": "boolean"}
    }
  }
}`

var todosSchemaCompiled = jsonschema.MustCompileString(todosSchemaURL, todosSchema)

// EncodeTodos serializes a collection as a JSON array.
func EncodeTodos(todos []Todo) ([]byte, error) {
	if todos == nil {
		todos = []Todo{}
	}
	data, err := json.Marshal(todos)
	if err != nil {
		return nil, fmt.Errorf("marshal todos: %w", err)
	}
	return data, nil
}

// DecodeTodos parses and validates a persisted collection.
func DecodeTodos(data []byte) ([]Todo, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc interface{}
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse todos: %w", err)
	}
	if err := todosSchemaCompiled.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate todos: %s", schemaErrorSummary(err))
	}

	var todos []Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, fmt.Errorf("unmarshal todos: %w", err)
	}
	if err := validateTodos(todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []Todo{}
	}
	return todos, nil
}

// schemaErrorSummary reports the innermost schema failure.
func schemaErrorSummary(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	location := ve.InstanceLocation
	if location == "" {
		location = "/"
	}
	return fmt.Sprintf("%s: %s", location, ve.Message)
}
