package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "issuer-verifier/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
)

type fakeUpstreamError struct {
	msg     string
	status  int
	details json.RawMessage
}

func (e *fakeUpstreamError) Error() string                 { return e.msg }
func (e *fakeUpstreamError) HTTPStatus() int               { return e.status }
func (e *fakeUpstreamError) ErrorDetails() json.RawMessage { return e.details }

func TestWriteError(t *testing.T) {
	upstreamErr := &fakeUpstreamError{msg: "Offering not found", status: http.StatusNotFound, details: json.RawMessage(`{"id":"o9"}`)}

	tests := []struct {
		name       string
		err        error
		opts       []ErrorOption
		wantStatus int
		wantBody   string
	}{
		{
			name:       "upstream error keeps status and message",
			err:        upstreamErr,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Offering not found"}`,
		},
		{
			name:       "upstream details exposed in development",
			err:        fmt.Errorf("issue credential: %w", upstreamErr),
			opts:       []ErrorOption{WithDetails(true)},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Offering not found","details":{"id":"o9"}}`,
		},
		{
			name:       "validation error maps to 400",
			err:        dErrors.New(dErrors.CodeValidation, "Credential is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Credential is required"}`,
		},
		{
			name:       "not found maps to 404",
			err:        dErrors.New(dErrors.CodeNotFound, "Schema not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Schema not found"}`,
		},
		{
			name:       "wrapped domain cause exposed in development",
			err:        dErrors.Wrap(errors.New("png: invalid format"), dErrors.CodeInternal, "Failed to render QR code"),
			opts:       []ErrorOption{WithDetails(true)},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to render QR code","details":"png: invalid format"}`,
		},
		{
			name:       "unknown error is 500 with its message",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"boom"}`,
		},
		{
			name:       "empty message falls back",
			err:        errors.New(""),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err, tt.opts...)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestWriteNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	WriteNoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
