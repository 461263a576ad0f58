// Package models holds the verifier request and result shapes.
package models

import "encoding/json"

const (
	// ValidatorCredentialType is the credential type issued to network
	// validators. The registered schema template uses the same type.
	ValidatorCredentialType = "ValidatorCredential"

	// DefaultNetworkID is used when a validator request names no network.
	DefaultNetworkID = "mainnet"
)

// ValidatorRequest asks for a validator credential offering.
type ValidatorRequest struct {
	ValidatorAddress string `json:"validatorAddress"`
	ValidatorName    string `json:"validatorName,omitempty"`
	NetworkID        string `json:"networkId,omitempty"`
}

// Subject builds the credential subject for the request. validatorName is
// left out when empty.
func (r ValidatorRequest) Subject() map[string]any {
	network := r.NetworkID
	if network == "" {
		network = DefaultNetworkID
	}
	subject := map[string]any{
		"validatorAddress": r.ValidatorAddress,
		"networkId":        network,
	}
	if r.ValidatorName != "" {
		subject["validatorName"] = r.ValidatorName
	}
	return subject
}

// ValidatorCredential is the result of a validator credential flow.
type ValidatorCredential struct {
	OfferingID        string         `json:"offering_id"`
	OfferingURL       string         `json:"offering_url"`
	QRCodeBase64      string         `json:"qr_code_base64"`
	CredentialSubject map[string]any `json:"credential_subject"`
}

// Verdict is the upstream verification result, relayed unchanged whatever
// its JSON shape.
type Verdict = json.RawMessage
