package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"issuer-verifier/internal/issuer/handler/mocks"
	"issuer-verifier/internal/issuer/models"
	"issuer-verifier/internal/upstream"
	dErrors "issuer-verifier/pkg/domain-errors"
)

type HandlerSuite struct {
	suite.Suite
	router      http.Handler
	ctrl        *gomock.Controller
	mockService *mocks.MockService
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.ctrl)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	r := chi.NewRouter()
	New(s.mockService, logger, false).Register(r)
	s.router = r
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestCreateOffering() {
	s.Run("without recipient creates a plain offering", func() {
		s.mockService.EXPECT().CreateOffering(gomock.Any(), models.OfferingRequest{
			Type:              "EmailCredential",
			CredentialSubject: map[string]any{"email": "a@b.c"},
		}).Return(&models.Offering{ID: "o1", URL: "https://offer/o1"}, nil)

		rec := s.do(http.MethodPost, "/offering", `{"type":" EmailCredential ","credentialSubject":{"email":"a@b.c"}}`)

		s.Equal(http.StatusCreated, rec.Code)
		s.JSONEq(`{"id":"o1","url":"https://offer/o1"}`, rec.Body.String())
	})

	s.Run("with recipient creates a targeted offering", func() {
		s.mockService.EXPECT().CreateTargetedOffering(gomock.Any(), models.OfferingRequest{
			Type:              "EmailCredential",
			CredentialSubject: map[string]any{"email": "a@b.c"},
			RecipientDID:      "did:example:1",
		}).Return(&models.Offering{ID: "o2", URL: "https://offer/o2"}, nil)

		rec := s.do(http.MethodPost, "/offering", `{"type":"EmailCredential","credentialSubject":{"email":"a@b.c"},"recipientDid":"did:example:1"}`)

		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), `"id":"o2"`)
	})

	s.Run("validation error", func() {
		s.mockService.EXPECT().CreateOffering(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "Type and credentialSubject are required"))

		rec := s.do(http.MethodPost, "/offering", `{}`)

		s.Equal(http.StatusBadRequest, rec.Code)
		s.JSONEq(`{"error":"Type and credentialSubject are required"}`, rec.Body.String())
	})
}

func (s *HandlerSuite) TestCreateOpenAndTargetedOffering() {
	s.mockService.EXPECT().CreateOpenOffering(gomock.Any(), gomock.Any()).
		Return(&models.Offering{ID: "open"}, nil)
	s.mockService.EXPECT().CreateTargetedOffering(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeValidation, "Recipient DID is required for targeted offerings"))

	rec := s.do(http.MethodPost, "/offering/open", `{"type":"A","credentialSubject":{"x":1}}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"id":"open"`)

	rec = s.do(http.MethodPost, "/offering/targeted", `{"type":"A","credentialSubject":{"x":1}}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{"error":"Recipient DID is required for targeted offerings"}`, rec.Body.String())
}

func (s *HandlerSuite) TestInitiateAuth() {
	s.mockService.EXPECT().InitiateDIDAuthentication(gomock.Any(), "did:example:1").
		Return(&models.Challenge{Challenge: "c1", Extra: map[string]any{"expires_in": float64(300)}}, nil)

	rec := s.do(http.MethodPost, "/authorize", `{"recipientDid":"did:example:1 "}`)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"challenge":"c1","expires_in":300}`, rec.Body.String())
}

func (s *HandlerSuite) TestVerifyAuth() {
	s.mockService.EXPECT().VerifyDIDAuthentication(gomock.Any(), models.VerifyAuthRequest{
		Challenge:       "c1",
		SignedChallenge: "sig",
	}).Return(models.Payload(`{"authorization_code":"code-1"}`), nil)

	rec := s.do(http.MethodPost, "/authorize/verify", `{"challenge":"c1","signedChallenge":"sig"}`)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"authorization_code":"code-1"}`, rec.Body.String())
}

func (s *HandlerSuite) TestExchangeToken() {
	s.mockService.EXPECT().ExchangeToken(gomock.Any(), "code-1").
		Return(nil, &upstream.Error{Message: "invalid_grant", Status: http.StatusUnauthorized})

	rec := s.do(http.MethodPost, "/token", `{"authorizationCode":"code-1"}`)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.JSONEq(`{"error":"invalid_grant"}`, rec.Body.String())
}

func (s *HandlerSuite) TestIssueCredential() {
	s.Run("bearer header", func() {
		s.mockService.EXPECT().IssueCredential(gomock.Any(), models.IssueRequest{OfferingID: "o1", AccessToken: "tok"}).
			Return(models.Payload(`{"credential":"vc"}`), nil)

		rec := s.do(http.MethodPost, "/issue-credential/o1", `{"accessToken":"ignored"}`, "Authorization", "Bearer tok")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"credential":"vc"}`, rec.Body.String())
	})

	s.Run("token in body", func() {
		s.mockService.EXPECT().IssueCredential(gomock.Any(), models.IssueRequest{OfferingID: "o1", AccessToken: "body-tok"}).
			Return(models.Payload(`{"credential":"vc"}`), nil)

		rec := s.do(http.MethodPost, "/issue-credential/o1", `{"accessToken":"body-tok"}`)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("missing token", func() {
		s.mockService.EXPECT().IssueCredential(gomock.Any(), models.IssueRequest{OfferingID: "o1"}).
			Return(nil, dErrors.New(dErrors.CodeValidation, "Offering ID and access token are required"))

		rec := s.do(http.MethodPost, "/issue-credential/o1", ``)

		s.Equal(http.StatusBadRequest, rec.Code)
		s.JSONEq(`{"error":"Offering ID and access token are required"}`, rec.Body.String())
	})
}
