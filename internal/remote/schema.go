package remote

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// payloadSchema constrains what the client will accept from a server
// before any of it reaches the local ledgers.
const payloadSchema = `{
  "type": "object",
  "required": ["user", "updatedAt"],
  "properties": {
    "user": {"type": "string", "minLength": 1},
    "updatedAt": {"type": "string"},
    "stats": {
      "type": "object",
      "properties": {
        "xp": {"type": "integer", "minimum": 0},
        "level": {"type": "integer", "minimum": 1},
        "streak": {"type": "integer", "minimum": 0},
        "totalQuestions": {"type": "integer", "minimum": 0},
        "correctAnswers": {"type": "integer", "minimum": 0},
        "fastestTimeMs": {"type": "integer", "minimum": 0}
      }
    },
    "treasury": {
      "type": "object",
      "properties": {
        "petals": {"type": "integer", "minimum": 0},
        "embers": {"type": "integer", "minimum": 0},
        "totalXP": {"type": "integer", "minimum": 0},
        "rank": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validatePayload checks raw JSON against the payload schema. The
// schema compiles once per process.
func validatePayload(raw []byte) error {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(payloadSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://payload.json", def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://payload.json")
	})
	if compileErr != nil {
		return &ErrInvalidPayload{Err: compileErr}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidPayload{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := compiledSchema.Validate(parsed); err != nil {
		return &ErrInvalidPayload{Err: err}
	}
	return nil
}
