// Package service verifies presented credentials and builds validator
// credential offerings with a scannable QR code.
package service

import (
	"context"
	"log/slog"

	issuermodels "issuer-verifier/internal/issuer/models"
	schemamodels "issuer-verifier/internal/schema/models"
	"issuer-verifier/internal/upstream"
	"issuer-verifier/internal/verifier/models"
	dErrors "issuer-verifier/pkg/domain-errors"
	"issuer-verifier/pkg/requestcontext"
	"issuer-verifier/pkg/validation"
)

const verifyPath = "/api/v1/verify"

// Offerer creates open offerings. The issuer service satisfies it.
type Offerer interface {
	CreateOpenOffering(ctx context.Context, req issuermodels.OfferingRequest) (*issuermodels.Offering, error)
}

// Metrics records QR rendering outcomes.
type Metrics interface {
	IncrementQRCodesRendered()
	IncrementQRRenderFailures()
}

type Option func(*Service)

type Service struct {
	client   upstream.API
	offerer  Offerer
	renderer Renderer
	template *schemamodels.Template
	logger   *slog.Logger
	metrics  Metrics
}

func NewService(client upstream.API, offerer Offerer, opts ...Option) *Service {
	svc := &Service{
		client:   client,
		offerer:  offerer,
		renderer: NewQRRenderer(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		s.renderer = r
	}
}

// WithSubjectTemplate checks validator credential subjects against tmpl
// before any offering is created.
func WithSubjectTemplate(tmpl schemamodels.Template) Option {
	return func(s *Service) {
		s.template = &tmpl
	}
}

// ValidateCredential asks the upstream API to verify credential and returns
// its verdict unchanged.
func (s *Service) ValidateCredential(ctx context.Context, credential any) (models.Verdict, error) {
	if err := validation.Required(map[string]any{"credential": credential}, "Credential is required", "credential"); err != nil {
		return nil, err
	}

	var verdict models.Verdict
	if err := s.client.Post(ctx, verifyPath, map[string]any{"credential": credential}, &verdict); err != nil {
		s.logFailure(ctx, "failed to validate credential", err)
		return nil, err
	}
	return verdict, nil
}

// GenerateQRCode renders offeringURL as a PNG data URI.
func (s *Service) GenerateQRCode(ctx context.Context, offeringURL string) (string, error) {
	if offeringURL == "" {
		return "", dErrors.New(dErrors.CodeValidation, "Offering URL is required")
	}

	uri, err := s.renderer.Render(offeringURL)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementQRRenderFailures()
		}
		s.logFailure(ctx, "failed to generate QR code", err)
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "Failed to generate QR code")
	}
	if s.metrics != nil {
		s.metrics.IncrementQRCodesRendered()
	}
	return uri, nil
}

// CreateValidatorCredential creates an open ValidatorCredential offering and
// renders its URL as a QR code. A rendering failure is reported even though
// the offering already exists upstream.
func (s *Service) CreateValidatorCredential(ctx context.Context, req models.ValidatorRequest) (*models.ValidatorCredential, error) {
	if err := validation.Required(req, "Validator address is required", "validatorAddress"); err != nil {
		return nil, err
	}

	subject := req.Subject()
	if s.template != nil {
		if err := s.template.ValidateSubject(subject); err != nil {
			return nil, err
		}
	}

	offering, err := s.offerer.CreateOpenOffering(ctx, issuermodels.OfferingRequest{
		Type:              models.ValidatorCredentialType,
		CredentialSubject: subject,
	})
	if err != nil {
		s.logFailure(ctx, "failed to create validator credential", err, "validator_address", req.ValidatorAddress)
		return nil, err
	}

	qr, err := s.GenerateQRCode(ctx, offering.URL)
	if err != nil {
		s.logFailure(ctx, "validator offering created without QR code", err, "offering_id", offering.ID)
		return nil, err
	}

	return &models.ValidatorCredential{
		OfferingID:        offering.ID,
		OfferingURL:       offering.URL,
		QRCodeBase64:      qr,
		CredentialSubject: subject,
	}, nil
}

func (s *Service) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs,
		"request_id", requestcontext.RequestID(ctx),
		"status", upstream.StatusOf(err),
		"error", err,
	)
	s.logger.ErrorContext(ctx, msg, attrs...)
}
