package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"issuer-verifier/internal/verifier/models"
	verifierservice "issuer-verifier/internal/verifier/service"
	"issuer-verifier/pkg/platform/httputil"
	"issuer-verifier/pkg/requestcontext"
	s "issuer-verifier/pkg/string"
)

// Service defines the verifier operations used by the handler.
type Service interface {
	ValidateCredential(ctx context.Context, credential any) (models.Verdict, error)
	GenerateQRCode(ctx context.Context, offeringURL string) (string, error)
	CreateValidatorCredential(ctx context.Context, req models.ValidatorRequest) (*models.ValidatorCredential, error)
}

type Handler struct {
	service       Service
	logger        *slog.Logger
	exposeDetails bool
}

func New(service Service, logger *slog.Logger, exposeDetails bool) *Handler {
	return &Handler{service: service, logger: logger, exposeDetails: exposeDetails}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/validate", h.HandleValidate)
	r.Post("/qr", h.HandleQRCode)
	r.Post("/validator-credential", h.HandleCreateValidatorCredential)
}

type ValidateRequest struct {
	Credential any `json:"credential"`
}

type QRCodeRequest struct {
	OfferingURL string `json:"offeringUrl"`
}

func (r *QRCodeRequest) Normalize() {
	s.TrimStrings(&r.OfferingURL)
}

type QRCodeResponse struct {
	QRCodeBase64 string `json:"qr_code_base64"`
}

type ValidatorCredentialRequest struct {
	ValidatorAddress string `json:"validatorAddress"`
	ValidatorName    string `json:"validatorName"`
	NetworkID        string `json:"networkId"`
}

func (r *ValidatorCredentialRequest) Normalize() {
	s.TrimStrings(&r.ValidatorAddress, &r.ValidatorName, &r.NetworkID)
}

// HandleValidate handles POST /validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	verdict, err := h.service.ValidateCredential(ctx, req.Credential)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, verdict)
}

// HandleQRCode handles POST /qr.
func (h *Handler) HandleQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[QRCodeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	uri, err := h.service.GenerateQRCode(ctx, req.OfferingURL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, QRCodeResponse{QRCodeBase64: uri})
}

// HandleCreateValidatorCredential handles POST /validator-credential.
func (h *Handler) HandleCreateValidatorCredential(w http.ResponseWriter, r *http.Request) {
	h.createValidatorCredential(w, r, http.StatusCreated)
}

// HandleCreateValidator handles the legacy POST /api/validator/create route,
// which answers 200 instead of 201.
func (h *Handler) HandleCreateValidator(w http.ResponseWriter, r *http.Request) {
	h.createValidatorCredential(w, r, http.StatusOK)
}

func (h *Handler) createValidatorCredential(w http.ResponseWriter, r *http.Request, status int) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidatorCredentialRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.CreateValidatorCredential(ctx, models.ValidatorRequest{
		ValidatorAddress: req.ValidatorAddress,
		ValidatorName:    req.ValidatorName,
		NetworkID:        req.NetworkID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, status, result)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err, httputil.WithDetails(h.exposeDetails))
}

var _ Service = (*verifierservice.Service)(nil)
