package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "issuer-verifier/pkg/domain-errors"
)

const internalErrorMessage = "Internal Server Error"

// ErrorResponse is the body of every failed request: {"error": ..., "details": ...}.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// UpstreamError is satisfied by errors that already carry the status and
// details returned by a remote API.
type UpstreamError interface {
	error
	HTTPStatus() int
	ErrorDetails() json.RawMessage
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteNoContent writes a bare 204.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

type errorOptions struct {
	details bool
}

type ErrorOption func(*errorOptions)

// WithDetails controls whether the "details" member is populated. It should
// only be enabled in development.
func WithDetails(enabled bool) ErrorOption {
	return func(o *errorOptions) {
		o.details = enabled
	}
}

// WriteError translates err into the error envelope.
// Upstream errors keep their status and message, domain errors are mapped by
// code, and anything else is a 500 carrying the error text.
func WriteError(w http.ResponseWriter, err error, opts ...ErrorOption) {
	var o errorOptions
	for _, opt := range opts {
		opt(&o)
	}

	status, resp := errorResponse(err, o.details)
	WriteJSON(w, status, resp)
}

func errorResponse(err error, withDetails bool) (int, ErrorResponse) {
	var upstreamErr UpstreamError
	if errors.As(err, &upstreamErr) {
		resp := ErrorResponse{Error: messageOr(upstreamErr.Error())}
		if withDetails {
			if d := upstreamErr.ErrorDetails(); len(d) > 0 {
				resp.Details = d
			}
		}
		status := upstreamErr.HTTPStatus()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		return status, resp
	}

	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		resp := ErrorResponse{Error: messageOr(domainErr.Error())}
		if withDetails && domainErr.Err != nil {
			resp.Details = domainErr.Err.Error()
		}
		return DomainCodeToHTTPStatus(domainErr.Code), resp
	}

	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage}
	}
	resp := ErrorResponse{Error: messageOr(err.Error())}
	if withDetails {
		if inner := errors.Unwrap(err); inner != nil {
			resp.Details = inner.Error()
		}
	}
	return http.StatusInternalServerError, resp
}

func messageOr(msg string) string {
	if msg == "" {
		return internalErrorMessage
	}
	return msg
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
