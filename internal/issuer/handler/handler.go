package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"issuer-verifier/internal/issuer/models"
	issuerservice "issuer-verifier/internal/issuer/service"
	"issuer-verifier/pkg/platform/httputil"
	"issuer-verifier/pkg/requestcontext"
	s "issuer-verifier/pkg/string"
)

// Service defines the issuance operations used by the handler.
type Service interface {
	CreateOffering(ctx context.Context, req models.OfferingRequest) (*models.Offering, error)
	CreateTargetedOffering(ctx context.Context, req models.OfferingRequest) (*models.Offering, error)
	CreateOpenOffering(ctx context.Context, req models.OfferingRequest) (*models.Offering, error)
	InitiateDIDAuthentication(ctx context.Context, recipientDID string) (*models.Challenge, error)
	VerifyDIDAuthentication(ctx context.Context, req models.VerifyAuthRequest) (models.Payload, error)
	ExchangeToken(ctx context.Context, authorizationCode string) (models.Payload, error)
	IssueCredential(ctx context.Context, req models.IssueRequest) (models.Payload, error)
}

// Handler wires issuance endpoints to the issuer service. Required-field
// checks live in the service so every entry point reports the same message.
type Handler struct {
	service       Service
	logger        *slog.Logger
	exposeDetails bool
}

func New(service Service, logger *slog.Logger, exposeDetails bool) *Handler {
	return &Handler{service: service, logger: logger, exposeDetails: exposeDetails}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/offering", h.HandleCreateOffering)
	r.Post("/offering/open", h.HandleCreateOpenOffering)
	r.Post("/offering/targeted", h.HandleCreateTargetedOffering)
	r.Post("/authorize", h.HandleInitiateAuth)
	r.Post("/authorize/verify", h.HandleVerifyAuth)
	r.Post("/token", h.HandleExchangeToken)
	r.Post("/issue-credential/{offeringId}", h.HandleIssueCredential)
}

// OfferingRequest is the request body shared by the offering endpoints.
type OfferingRequest struct {
	Type              string         `json:"type"`
	CredentialSubject map[string]any `json:"credentialSubject"`
	RecipientDID      string         `json:"recipientDid"`
}

func (r *OfferingRequest) Normalize() {
	s.TrimStrings(&r.Type, &r.RecipientDID)
}

func (r *OfferingRequest) toModel() models.OfferingRequest {
	return models.OfferingRequest{
		Type:              r.Type,
		CredentialSubject: r.CredentialSubject,
		RecipientDID:      r.RecipientDID,
	}
}

type InitiateAuthRequest struct {
	RecipientDID string `json:"recipientDid"`
}

func (r *InitiateAuthRequest) Normalize() {
	s.TrimStrings(&r.RecipientDID)
}

type VerifyAuthRequest struct {
	Challenge       string `json:"challenge"`
	SignedChallenge string `json:"signedChallenge"`
}

type TokenRequest struct {
	AuthorizationCode string `json:"authorizationCode"`
}

func (r *TokenRequest) Normalize() {
	s.TrimStrings(&r.AuthorizationCode)
}

// IssueCredentialRequest carries the access token when it is not sent as a
// bearer header.
type IssueCredentialRequest struct {
	AccessToken string `json:"accessToken"`
}

// HandleCreateOffering handles POST /offering. A recipientDid makes the
// offering targeted.
func (h *Handler) HandleCreateOffering(w http.ResponseWriter, r *http.Request) {
	h.createOffering(w, r, func(ctx context.Context, req models.OfferingRequest) (*models.Offering, error) {
		if req.RecipientDID != "" {
			return h.service.CreateTargetedOffering(ctx, req)
		}
		return h.service.CreateOffering(ctx, req)
	})
}

// HandleCreateOpenOffering handles POST /offering/open.
func (h *Handler) HandleCreateOpenOffering(w http.ResponseWriter, r *http.Request) {
	h.createOffering(w, r, h.service.CreateOpenOffering)
}

// HandleCreateTargetedOffering handles POST /offering/targeted.
func (h *Handler) HandleCreateTargetedOffering(w http.ResponseWriter, r *http.Request) {
	h.createOffering(w, r, h.service.CreateTargetedOffering)
}

func (h *Handler) createOffering(
	w http.ResponseWriter,
	r *http.Request,
	create func(context.Context, models.OfferingRequest) (*models.Offering, error),
) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[OfferingRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	offering, err := create(ctx, req.toModel())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, offering)
}

// HandleInitiateAuth handles POST /authorize.
func (h *Handler) HandleInitiateAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[InitiateAuthRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	challenge, err := h.service.InitiateDIDAuthentication(ctx, req.RecipientDID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, challenge)
}

// HandleVerifyAuth handles POST /authorize/verify.
func (h *Handler) HandleVerifyAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[VerifyAuthRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.VerifyDIDAuthentication(ctx, models.VerifyAuthRequest{
		Challenge:       req.Challenge,
		SignedChallenge: req.SignedChallenge,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleExchangeToken handles POST /token.
func (h *Handler) HandleExchangeToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[TokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	token, err := h.service.ExchangeToken(ctx, req.AuthorizationCode)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, token)
}

// HandleIssueCredential handles POST /issue-credential/{offeringId}. The
// bearer header wins over an accessToken in the body.
func (h *Handler) HandleIssueCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[IssueCredentialRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	accessToken := req.AccessToken
	if bearer, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		accessToken = strings.TrimSpace(bearer)
	}

	credential, err := h.service.IssueCredential(ctx, models.IssueRequest{
		OfferingID:  chi.URLParam(r, "offeringId"),
		AccessToken: accessToken,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, credential)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err, httputil.WithDetails(h.exposeDetails))
}

var _ Service = (*issuerservice.Service)(nil)
