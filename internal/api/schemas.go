package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/xeipuuv/gojsonschema"
)

// Request-body schemas. Validation runs before decoding so handlers never
// see structurally invalid payloads.
var (
	smartRecommendSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"category":   {"type": "string"},
			"difficulty": {"type": "string"},
			"max_hours":  {"type": "number", "minimum": 0},
			"min_rating": {"type": "number", "minimum": 0},
			"top_k":      {"type": "integer", "minimum": 1, "maximum": 50}
		},
		"additionalProperties": false
	}`)

	careerSchema = mustSchema(`{
		"type": "object",
		"required": ["career_goal"],
		"properties": {
			"career_goal":  {"type": "string", "minLength": 1},
			"per_category": {"type": "integer", "minimum": 1, "maximum": 20}
		},
		"additionalProperties": false
	}`)

	skillGapSchema = mustSchema(`{
		"type": "object",
		"required": ["target_course_id"],
		"properties": {
			"target_course_id":     {"type": "integer", "minimum": 1},
			"completed_course_ids": {"type": "array", "items": {"type": "integer"}}
		},
		"additionalProperties": false
	}`)

	chatSchema = mustSchema(`{
		"type": "object",
		"required": ["message"],
		"properties": {
			"message":           {"type": "string", "minLength": 1},
			"completed_courses": {"type": "array", "items": {"type": "integer"}},
			"user_id":           {"type": "string"}
		},
		"additionalProperties": false
	}`)

	completeCourseSchema = mustSchema(`{
		"type": "object",
		"required": ["course_id"],
		"properties": {
			"course_id": {"type": "integer", "minimum": 1}
		},
		"additionalProperties": false
	}`)
)

func mustSchema(def string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(def))
	if err != nil {
		panic(fmt.Sprintf("invalid request schema: %v", err))
	}
	return schema
}

const maxBodyBytes = 1 << 20

// readValidated reads and schema-validates a request body, returning the raw
// bytes for decoding. The error message is safe to return to the client.
func readValidated(r *http.Request, schema *gojsonschema.Schema) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading request body")
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid request: %s", result.Errors()[0].String())
	}
	return body, nil
}
