package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"issuer-verifier/internal/mpc"
	dErrors "issuer-verifier/pkg/domain-errors"
	"issuer-verifier/pkg/platform/httputil"
	"issuer-verifier/pkg/requestcontext"
)

// Authenticator is the local challenge/token surface exposed to demo clients.
type Authenticator interface {
	VerifySignedChallenge(ctx context.Context, req mpc.SignedChallenge) bool
	GenerateToken(req mpc.TokenRequest) (string, error)
	Simulated() bool
}

// Handler serves the challenge/token routes. It is mounted when DEMO_MODE or
// TOKEN_SIGNING_KEY is set.
type Handler struct {
	auth          Authenticator
	newChallenge  func() (string, error)
	logger        *slog.Logger
	exposeDetails bool
}

func New(auth Authenticator, logger *slog.Logger, exposeDetails bool) *Handler {
	return &Handler{
		auth:          auth,
		newChallenge:  mpc.GenerateChallenge,
		logger:        logger,
		exposeDetails: exposeDetails,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/challenge", h.HandleChallenge)
	r.Post("/challenge/verify", h.HandleVerifyChallenge)
	r.Post("/token", h.HandleToken)
}

type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}

type VerifyChallengeRequest struct {
	Challenge       string `json:"challenge"`
	SignedChallenge string `json:"signedChallenge"`
	DID             string `json:"did"`
}

func (r *VerifyChallengeRequest) Normalize() {
	r.Challenge = strings.TrimSpace(r.Challenge)
	r.DID = strings.TrimSpace(r.DID)
}

func (r *VerifyChallengeRequest) Validate() error {
	if r.Challenge == "" || r.SignedChallenge == "" {
		return dErrors.New(dErrors.CodeValidation, "Challenge and signedChallenge are required")
	}
	return nil
}

type VerifyChallengeResponse struct {
	Valid bool `json:"valid"`
}

type TokenRequest struct {
	DID       string `json:"did"`
	ExpiresIn *int   `json:"expiresIn"`
}

func (r *TokenRequest) Normalize() {
	r.DID = strings.TrimSpace(r.DID)
}

func (r *TokenRequest) Validate() error {
	if r.DID == "" {
		return dErrors.New(dErrors.CodeValidation, "DID is required")
	}
	_, err := r.token().TTL()
	return err
}

func (r *TokenRequest) token() mpc.TokenRequest {
	return mpc.TokenRequest{DID: r.DID, ExpiresIn: r.ExpiresIn}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Simulated   bool   `json:"simulated"`
}

// HandleChallenge handles POST /challenge.
func (h *Handler) HandleChallenge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	challenge, err := h.newChallenge()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate challenge",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to generate challenge"), httputil.WithDetails(h.exposeDetails))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ChallengeResponse{Challenge: challenge})
}

// HandleVerifyChallenge handles POST /challenge/verify.
func (h *Handler) HandleVerifyChallenge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyChallengeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	valid := h.auth.VerifySignedChallenge(ctx, mpc.SignedChallenge{
		Challenge:       req.Challenge,
		SignedChallenge: req.SignedChallenge,
		DID:             req.DID,
	})

	httputil.WriteJSON(w, http.StatusOK, VerifyChallengeResponse{Valid: valid})
}

// HandleToken handles POST /token.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[TokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tokenReq := req.token()
	ttl, err := tokenReq.TTL()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	token, err := h.auth.GenerateToken(tokenReq)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token",
			"request_id", requestID,
			"did", req.DID,
			"error", err,
		)
		httputil.WriteError(w, err, httputil.WithDetails(h.exposeDetails))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
		Simulated:   h.auth.Simulated(),
	})
}

var _ Authenticator = (*mpc.Authenticator)(nil)
