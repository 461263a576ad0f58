package upstream

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"issuer-verifier/internal/platform/metrics"
	"issuer-verifier/pkg/platform/circuit"
)

type ClientSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
	s.client = New(Config{BaseURL: s.server.URL, ClientSecret: "s3cret", Timeout: time.Second})
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestPostSendsHeadersAndDecodesBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/api/v1/offering", r.URL.Path)
		s.Equal("application/json", r.Header.Get("Content-Type"))
		s.Equal("s3cret", r.Header.Get(HeaderClientSecret))

		var body map[string]any
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("ValidatorCredential", body["type"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"o1","url":"openid-credential-offer://?x=1"}`))
	}

	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	err := s.client.Post(s.T().Context(), "/api/v1/offering", map[string]any{"type": "ValidatorCredential"}, &out)
	s.Require().NoError(err)
	s.Equal("o1", out.ID)
	s.Equal("openid-credential-offer://?x=1", out.URL)
}

func (s *ClientSuite) TestRequestOptionsApplied() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer tok", r.Header.Get("Authorization"))
		s.Equal("yes", r.Header.Get("X-Extra"))
		body, _ := io.ReadAll(r.Body)
		s.JSONEq(`{}`, string(body))
		_, _ = w.Write([]byte(`{"credential":"vc"}`))
	}

	var out map[string]any
	err := s.client.Post(s.T().Context(), "/api/v1/issue-credential/o1", map[string]any{}, &out,
		WithBearer("tok"), WithHeader("X-Extra", "yes"))
	s.Require().NoError(err)
	s.Equal("vc", out["credential"])
}

func (s *ClientSuite) TestEmptySuccessBodyLeavesOutUntouched() {
	var out *map[string]any
	err := s.client.Get(s.T().Context(), "/api/v1/schema/missing", &out)
	s.Require().NoError(err)
	s.Nil(out)
}

func (s *ClientSuite) TestDeleteSucceeds() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodDelete, r.Method)
		s.Equal("/api/v1/schema/s1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}
	s.NoError(s.client.Delete(s.T().Context(), "/api/v1/schema/s1"))
}

func (s *ClientSuite) TestUpstreamErrorBodyIsNormalized() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Offering not found","details":{"id":"o9"}}`))
	}

	err := s.client.Post(s.T().Context(), "/api/v1/issue-credential/o9", map[string]any{}, nil)
	ue, ok := AsError(err)
	s.Require().True(ok)
	s.Equal("Offering not found", ue.Message)
	s.Equal(http.StatusNotFound, ue.Status)
	s.JSONEq(`{"id":"o9"}`, string(ue.Details))
}

func (s *ClientSuite) TestStatusWithoutErrorFieldUsesStatusMessage() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`<html>down</html>`))
	}

	err := s.client.Get(s.T().Context(), "/api/v1/schema", nil)
	ue, ok := AsError(err)
	s.Require().True(ok)
	s.Equal("Request failed with status code 503", ue.Message)
	s.Equal(http.StatusServiceUnavailable, ue.Status)
	s.Nil(ue.Details)
}

func (s *ClientSuite) TestTransportFailureDefaultsTo500() {
	s.server.Close()

	err := s.client.Get(s.T().Context(), "/api/v1/schema", nil)
	ue, ok := AsError(err)
	s.Require().True(ok)
	s.Equal(http.StatusInternalServerError, ue.Status)
	s.NotEmpty(ue.Message)
	s.Error(ue.Unwrap())
}

func (s *ClientSuite) TestTimeoutIsNormalized() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}
	client := New(Config{BaseURL: s.server.URL, Timeout: 20 * time.Millisecond})

	err := client.Get(s.T().Context(), "/api/v1/schema", nil)
	s.Equal(http.StatusInternalServerError, StatusOf(err))
}

func (s *ClientSuite) TestInvalidJSONSuccessBodyFails() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}

	var out map[string]any
	err := s.client.Get(s.T().Context(), "/api/v1/schema", &out)
	s.Equal(http.StatusInternalServerError, StatusOf(err))
}

func (s *ClientSuite) TestMetricsAndBreakerObserveCalls() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	b := circuit.New("upstream", circuit.WithFailureThreshold(2))
	client := New(Config{BaseURL: s.server.URL}, WithMetrics(m), WithBreaker(b))

	s.Error(client.Get(s.T().Context(), "/api/v1/schema/abc", nil))
	s.Error(client.Get(s.T().Context(), "/api/v1/schema/def", nil))

	s.Equal(2.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("GET", "schema", "502")))
	s.Equal(circuit.StateOpen, b.State())
	s.ErrorIs(b.Check(), circuit.ErrOpen)
}

func TestNormalize(t *testing.T) {
	t.Run("no status no cause", func(t *testing.T) {
		e := normalize(0, nil, nil)
		assert.Equal(t, "Unknown error", e.Message)
		assert.Equal(t, http.StatusInternalServerError, e.Status)
	})

	t.Run("non-string error field falls back", func(t *testing.T) {
		e := normalize(http.StatusBadRequest, []byte(`{"error":{"code":1}}`), nil)
		assert.Equal(t, "Request failed with status code 400", e.Message)
	})

	t.Run("null details ignored", func(t *testing.T) {
		e := normalize(http.StatusConflict, []byte(`{"error":"dup","details":null}`), nil)
		assert.Equal(t, "dup", e.Message)
		assert.Equal(t, http.StatusConflict, e.Status)
		assert.Nil(t, e.Details)
	})
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, http.StatusNotFound, StatusOf(&Error{Message: "x", Status: http.StatusNotFound}))
	require.Equal(t, http.StatusInternalServerError, StatusOf(io.EOF))
}

func TestResourceOf(t *testing.T) {
	cases := map[string]string{
		"/api/v1/schema":              "schema",
		"/api/v1/schema/abc":          "schema",
		"/api/v1/issue-credential/o1": "issue-credential",
		"/api/v1/authorize/verify":    "authorize/verify",
		"/api/v1/connect/token":       "connect/token",
		"/api/v1/offering":            "offering",
	}
	for path, want := range cases {
		assert.Equal(t, want, resourceOf(path), path)
	}
}
