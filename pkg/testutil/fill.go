// Package testutil holds helpers shared by service and handler tests.
package testutil

import "encoding/json"

// Fill copies v into out through a JSON round trip, the way the upstream
// client decodes a response body. Use it in gomock DoAndReturn callbacks.
func Fill(out any, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
