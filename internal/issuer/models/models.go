// Package models holds the credential issuance shapes exchanged with the
// upstream credential API.
package models

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Offering is a credential offer created upstream. ID and URL are lifted out
// of the response; every other member is kept in Extra and written back
// unchanged.
type Offering struct {
	ID    string
	URL   string
	Extra map[string]any
}

func (o *Offering) UnmarshalJSON(data []byte) error {
	extra, err := decodeObject(data)
	if err != nil {
		return err
	}
	o.ID = takeString(extra, "id")
	o.URL = takeString(extra, "url")
	o.Extra = extra
	return nil
}

func (o Offering) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(o.Extra)+2)
	maps.Copy(out, o.Extra)
	out["id"] = o.ID
	out["url"] = o.URL
	return json.Marshal(out)
}

// Challenge is the upstream answer to a DID authentication request.
type Challenge struct {
	Challenge string
	Extra     map[string]any
}

func (c *Challenge) UnmarshalJSON(data []byte) error {
	extra, err := decodeObject(data)
	if err != nil {
		return err
	}
	c.Challenge = takeString(extra, "challenge")
	c.Extra = extra
	return nil
}

func (c Challenge) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+1)
	maps.Copy(out, c.Extra)
	out["challenge"] = c.Challenge
	return json.Marshal(out)
}

// Payload is an upstream response body relayed to the caller byte for byte
// (authorization results, token responses, issued credentials). It may be
// any JSON value, not only an object.
type Payload = json.RawMessage

// OfferingRequest is the input of offering creation. RecipientDID makes the
// offering targeted.
type OfferingRequest struct {
	Type              string         `json:"type"`
	CredentialSubject map[string]any `json:"credentialSubject"`
	RecipientDID      string         `json:"recipientDid,omitempty"`
}

type offeringBody struct {
	CredentialType    string         `json:"credential_type"`
	CredentialSubject map[string]any `json:"credential_subject"`
	Recipient         string         `json:"recipient,omitempty"`
}

// UpstreamBody builds the POST /api/v1/offering payload.
func (r OfferingRequest) UpstreamBody() any {
	return offeringBody{
		CredentialType:    r.Type,
		CredentialSubject: r.CredentialSubject,
		Recipient:         r.RecipientDID,
	}
}

type VerifyAuthRequest struct {
	Challenge       string `json:"challenge"`
	SignedChallenge string `json:"signedChallenge"`
}

type IssueRequest struct {
	OfferingID  string `json:"offeringId"`
	AccessToken string `json:"accessToken"`
}

func decodeObject(data []byte) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}

// takeString removes key from m and returns its value as a string. Numeric
// identifiers are formatted without a fractional part.
func takeString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	delete(m, key)
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}
