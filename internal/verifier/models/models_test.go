package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorRequestSubject(t *testing.T) {
	t.Run("defaults network and omits empty name", func(t *testing.T) {
		subject := ValidatorRequest{ValidatorAddress: "0xabc"}.Subject()
		assert.Equal(t, map[string]any{"validatorAddress": "0xabc", "networkId": "mainnet"}, subject)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		subject := ValidatorRequest{ValidatorAddress: "0xabc", ValidatorName: "node-1", NetworkID: "testnet"}.Subject()
		assert.Equal(t, map[string]any{
			"validatorAddress": "0xabc",
			"validatorName":    "node-1",
			"networkId":        "testnet",
		}, subject)
	})
}

func TestValidatorCredentialJSON(t *testing.T) {
	data, err := json.Marshal(ValidatorCredential{
		OfferingID:        "o1",
		OfferingURL:       "https://x/o1",
		QRCodeBase64:      "data:image/png;base64,AA==",
		CredentialSubject: map[string]any{"validatorAddress": "0xabc"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"offering_id":"o1",
		"offering_url":"https://x/o1",
		"qr_code_base64":"data:image/png;base64,AA==",
		"credential_subject":{"validatorAddress":"0xabc"}
	}`, string(data))
}
