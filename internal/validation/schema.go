package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid   = errors.New("schema invalid")
	ErrPreambleInvalid = errors.New("preamble validation failed")
)

// PreambleSchema describes the metadata keys a recipe document must carry.
// Category membership is checked by recipe.ParseCategory, not here.
var PreambleSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "residence", "category"},
	"properties": map[string]any{
		"name":      map[string]any{"type": "string", "minLength": 1},
		"residence": map[string]any{"type": "string"},
		"category":  map[string]any{"type": "string", "minLength": 1},
		"tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"image": map[string]any{"type": "string"},
	},
	"additionalProperties": true,
}

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PreambleValidationError surfaces validation issues with their location in
// the preamble.
type PreambleValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PreambleValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrPreambleInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PreambleValidationError) Unwrap() error {
	return ErrPreambleInvalid
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var preambleErr *PreambleValidationError
	if errors.As(err, &preambleErr) && preambleErr != nil {
		return preambleErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

var (
	preambleOnce     sync.Once
	preambleCompiled *jsonschema.Schema
	preambleErr      error
)

// ValidatePreamble checks a raw preamble mapping against PreambleSchema.
// The mapping must hold JSON-compatible values.
func ValidatePreamble(raw map[string]any) error {
	preambleOnce.Do(func() {
		preambleCompiled, preambleErr = compileSchema(PreambleSchema)
	})
	if preambleErr != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, preambleErr)
	}
	return validatePayload(preambleCompiled, raw)
}

func validatePayload(compiled *jsonschema.Schema, payload map[string]any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	if err := compiled.Validate(toJSONValue(payload)); err != nil {
		return &PreambleValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

// toJSONValue widens typed containers into the interface shapes the
// validator walks.
func toJSONValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = toJSONValue(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = toJSONValue(val)
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = val
		}
		return out
	case int:
		return float64(typed)
	default:
		return value
	}
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("preamble.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("preamble.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
