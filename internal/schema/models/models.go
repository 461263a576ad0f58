// Package models holds the credential schema shapes exchanged with the
// upstream credential API.
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Schema is a credential schema as returned by the upstream API.
type Schema struct {
	ID                string         `json:"id,omitempty"`
	Name              string         `json:"name"`
	Type              string         `json:"type"`
	Version           Version        `json:"version,omitempty"`
	CredentialSubject *SubjectSchema `json:"credentialSubject,omitempty"`
}

// SubjectSchema is the JSON schema fragment describing a credential subject.
type SubjectSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required"`
}

// Version is a schema version. Upstream may send it as a number or as a
// numeric string; anything non-numeric compares as 0.
type Version float64

func (v *Version) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			f = 0
		}
		*v = Version(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Version(f)
	return nil
}

// CreateRequest is the input of schema creation.
type CreateRequest struct {
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	Properties     map[string]any `json:"properties"`
	RequiredFields []string       `json:"requiredFields"`
}

// createBody is what the upstream API expects on POST /api/v1/schema.
type createBody struct {
	Name              string        `json:"name"`
	Type              string        `json:"type"`
	CredentialSubject SubjectSchema `json:"credentialSubject"`
}

// UpstreamBody builds the upstream payload, nesting properties and required
// fields under an object-typed credentialSubject.
func (r CreateRequest) UpstreamBody() any {
	return createBody{
		Name: r.Name,
		Type: r.Type,
		CredentialSubject: SubjectSchema{
			Type:       "object",
			Properties: r.Properties,
			Required:   r.RequiredFields,
		},
	}
}

// ExistsResponse answers GET /schema/type/{type}/exists.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
