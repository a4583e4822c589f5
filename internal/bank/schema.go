package bank

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://questions.json"

// questionsSchema describes the questions.json payload.
const questionsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["num", "text", "answer"],
		"properties": {
			"num": {"type": ["integer", "string"], "minLength": 1},
			"text": {"type": "string"},
			"answer": {"type": "string", "minLength": 1}
		}
	}
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// bankSchema returns the compiled questions schema, compiling it once.
func bankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(questionsSchema)))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validate checks raw JSON against the questions schema.
func validate(data []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := bankSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
