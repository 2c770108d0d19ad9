package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// MaxCaptionLength bounds the caption stored with a content block.
const MaxCaptionLength = 280

// MaxMediaURLLength bounds video and image payloads.
const MaxMediaURLLength = 2048

// ContentSchema documents the JSON schema enforced by the contents store.
// Media kinds must point at an absolute http(s) URL or a root-relative path.
var ContentSchema = map[string]any{
	"type":     "object",
	"required": []string{"kind", "payload"},
	"properties": map[string]any{
		"kind": map[string]any{
			"enum": []string{"reading", "video", "image"},
		},
		"payload": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"caption": map[string]any{
			"type":      "string",
			"maxLength": MaxCaptionLength,
		},
	},
	"if": map[string]any{
		"properties": map[string]any{
			"kind": map[string]any{"enum": []string{"video", "image"}},
		},
	},
	"then": map[string]any{
		"properties": map[string]any{
			"payload": map[string]any{
				"pattern":   `^(https?://[^\s]+|/[^\s]*)$`,
				"maxLength": MaxMediaURLLength,
			},
		},
	},
}

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces schema issues with their instance location.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
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

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// Validator validates payloads against a schema compiled once.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schema.
func NewValidator(schema map[string]any) (*Validator, error) {
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Validator{schema: compiled}, nil
}

// NewContentValidator compiles ContentSchema.
func NewContentValidator() *Validator {
	validator, err := NewValidator(ContentSchema)
	if err != nil {
		panic(fmt.Sprintf("validation: content schema: %v", err))
	}
	return validator
}

// Validate checks payload, returning a *PayloadValidationError on failure.
func (v *Validator) Validate(payload map[string]any) error {
	if v == nil || v.schema == nil {
		return nil
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := v.schema.Validate(payload); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
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
