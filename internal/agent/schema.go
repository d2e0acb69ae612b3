package agent

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Required-field validation at the parse boundary: a payload missing a field
// is treated exactly like unparseable JSON and routed into the stage
// fallback, never surfaced as a fault.

const solutionSchemaJSON = `{
	"type": "object",
	"required": ["answer", "reasoning", "intermediate_work"],
	"properties": {
		"answer": {"type": "string"},
		"reasoning": {"type": "string"},
		"intermediate_work": {"type": "string"}
	}
}`

const checksSchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["check_name", "passed", "details"],
		"properties": {
			"check_name": {"type": "string"},
			"passed": {"type": "boolean"},
			"details": {"type": "string"}
		}
	}
}`

var (
	solutionSchema = mustCompileSchema(solutionSchemaJSON)
	checksSchema   = mustCompileSchema(checksSchemaJSON)
)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return schema
}

// validate checks a raw JSON document against a compiled schema.
func validate(schema *gojsonschema.Schema, doc json.RawMessage) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("schema validation: %s", errs[0].String())
		}
		return fmt.Errorf("schema validation failed")
	}
	return nil
}
