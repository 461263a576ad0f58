package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

const defaultErrorMessage = "Unknown error"

// Error is the single normalized shape of every failed call to the upstream
// credential API, whether the API answered with a non-2xx status or the
// request never produced a response.
type Error struct {
	// Message is the upstream body's "error" field, the transport failure
	// message, or "Unknown error".
	Message string
	// Status is the upstream HTTP status, or 500 when there was no response.
	Status int
	// Details is the upstream body's "details" field, verbatim.
	Details json.RawMessage
	// Err is the transport-level cause, if any.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HTTPStatus() int {
	return e.Status
}

func (e *Error) ErrorDetails() json.RawMessage {
	return e.Details
}

// AsError extracts an upstream error from err's chain.
func AsError(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// StatusOf returns the upstream status carried by err, defaulting to 500.
func StatusOf(err error) int {
	if ue, ok := AsError(err); ok && ue.Status != 0 {
		return ue.Status
	}
	return http.StatusInternalServerError
}

// normalize maps a response status/body or a transport failure to *Error.
// status is 0 when no response was received.
func normalize(status int, body []byte, cause error) *Error {
	e := &Error{Status: status, Err: cause}

	if len(body) > 0 && gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "error"); msg.Type == gjson.String && msg.Str != "" {
			e.Message = msg.Str
		}
		if details := gjson.GetBytes(body, "details"); details.Exists() && details.Type != gjson.Null {
			e.Details = json.RawMessage(details.Raw)
		}
	}

	if e.Message == "" {
		switch {
		case cause != nil && cause.Error() != "":
			e.Message = cause.Error()
		case status != 0:
			e.Message = fmt.Sprintf("Request failed with status code %d", status)
		default:
			e.Message = defaultErrorMessage
		}
	}
	if e.Status == 0 {
		e.Status = http.StatusInternalServerError
	}
	return e
}
