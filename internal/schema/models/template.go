package models

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	dErrors "issuer-verifier/pkg/domain-errors"
)

// Template is a locally configured schema definition that can be registered
// upstream and used to check credential subjects before an offering is made.
type Template struct {
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	Properties     map[string]any `json:"properties"`
	RequiredFields []string       `json:"requiredFields"`
}

// CreateRequest converts the template into a schema creation request.
func (t Template) CreateRequest() CreateRequest {
	return CreateRequest{
		Name:           t.Name,
		Type:           t.Type,
		Properties:     t.Properties,
		RequiredFields: t.RequiredFields,
	}
}

// JSONSchema renders the subject schema the template describes.
func (t Template) JSONSchema() map[string]any {
	required := t.RequiredFields
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       "object",
		"properties": t.Properties,
		"required":   required,
	}
}

// ValidateSubject checks subject against the template's JSON schema.
// Violations are reported as a single validation error listing every problem.
func (t Template) ValidateSubject(subject map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(t.JSONSchema()),
		gojsonschema.NewGoLoader(subject),
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("invalid %s template", t.Type))
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, re.String())
	}
	return dErrors.New(dErrors.CodeValidation,
		fmt.Sprintf("credential subject does not match %s: %s", t.Type, strings.Join(problems, "; ")))
}
