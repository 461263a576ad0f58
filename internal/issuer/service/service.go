// Package service drives credential issuance against the upstream credential
// API: offerings, DID authentication, token exchange and credential issuance.
// The caller carries state between steps; nothing is enforced or stored here.
package service

import (
	"context"
	"log/slog"
	"net/url"

	"issuer-verifier/internal/issuer/models"
	"issuer-verifier/internal/upstream"
	"issuer-verifier/pkg/requestcontext"
	"issuer-verifier/pkg/validation"
)

const (
	offeringPath        = "/api/v1/offering"
	authorizePath       = "/api/v1/authorize"
	authorizeVerifyPath = "/api/v1/authorize/verify"
	tokenPath           = "/api/v1/connect/token"
	issueCredentialPath = "/api/v1/issue-credential/"
)

// Metrics records issuance outcomes.
type Metrics interface {
	IncrementOfferingsCreated(credentialType string)
}

type Option func(*Service)

type Service struct {
	client  upstream.API
	logger  *slog.Logger
	metrics Metrics
}

func NewService(client upstream.API, opts ...Option) *Service {
	svc := &Service{
		client: client,
		logger: slog.New(slog.DiscardHandler),
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

// CreateOffering creates an offering, targeted when req.RecipientDID is set.
func (s *Service) CreateOffering(ctx context.Context, req models.OfferingRequest) (*models.Offering, error) {
	if err := validation.Required(req, "Type and credentialSubject are required", "type", "credentialSubject"); err != nil {
		return nil, err
	}

	var offering models.Offering
	if err := s.client.Post(ctx, offeringPath, req.UpstreamBody(), &offering); err != nil {
		s.logFailure(ctx, "failed to create offering", err, "credential_type", req.Type)
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementOfferingsCreated(req.Type)
	}
	s.logger.InfoContext(ctx, "offering created",
		"request_id", requestcontext.RequestID(ctx),
		"offering_id", offering.ID,
		"credential_type", req.Type,
		"targeted", req.RecipientDID != "",
	)
	return &offering, nil
}

func (s *Service) CreateTargetedOffering(ctx context.Context, req models.OfferingRequest) (*models.Offering, error) {
	if err := validation.Required(req, "Recipient DID is required for targeted offerings", "recipientDid"); err != nil {
		return nil, err
	}
	return s.CreateOffering(ctx, req)
}

// CreateOpenOffering creates an offering anyone holding the URL can claim.
// A recipient on req is ignored.
func (s *Service) CreateOpenOffering(ctx context.Context, req models.OfferingRequest) (*models.Offering, error) {
	req.RecipientDID = ""
	return s.CreateOffering(ctx, req)
}

func (s *Service) InitiateDIDAuthentication(ctx context.Context, recipientDID string) (*models.Challenge, error) {
	if err := validation.Required(map[string]any{"recipientDid": recipientDID}, "Recipient DID is required", "recipientDid"); err != nil {
		return nil, err
	}

	var challenge models.Challenge
	if err := s.client.Post(ctx, authorizePath, map[string]string{"did": recipientDID}, &challenge); err != nil {
		s.logFailure(ctx, "failed to initiate DID authentication", err, "did", recipientDID)
		return nil, err
	}
	return &challenge, nil
}

func (s *Service) VerifyDIDAuthentication(ctx context.Context, req models.VerifyAuthRequest) (models.Payload, error) {
	if err := validation.Required(req, "Challenge and signedChallenge are required", "challenge", "signedChallenge"); err != nil {
		return nil, err
	}

	var result models.Payload
	if err := s.client.Post(ctx, authorizeVerifyPath, req, &result); err != nil {
		s.logFailure(ctx, "failed to verify DID authentication", err)
		return nil, err
	}
	return result, nil
}

func (s *Service) ExchangeToken(ctx context.Context, authorizationCode string) (models.Payload, error) {
	if err := validation.Required(map[string]any{"authorizationCode": authorizationCode}, "Authorization code is required", "authorizationCode"); err != nil {
		return nil, err
	}

	var token models.Payload
	body := map[string]string{"authorization_code": authorizationCode}
	if err := s.client.Post(ctx, tokenPath, body, &token); err != nil {
		s.logFailure(ctx, "failed to exchange token", err)
		return nil, err
	}
	return token, nil
}

// IssueCredential redeems an offering with the bearer token from ExchangeToken.
func (s *Service) IssueCredential(ctx context.Context, req models.IssueRequest) (models.Payload, error) {
	if err := validation.Required(req, "Offering ID and access token are required", "offeringId", "accessToken"); err != nil {
		return nil, err
	}

	var credential models.Payload
	path := issueCredentialPath + url.PathEscape(req.OfferingID)
	if err := s.client.Post(ctx, path, struct{}{}, &credential, upstream.WithBearer(req.AccessToken)); err != nil {
		s.logFailure(ctx, "failed to issue credential", err, "offering_id", req.OfferingID)
		return nil, err
	}
	return credential, nil
}

func (s *Service) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs,
		"request_id", requestcontext.RequestID(ctx),
		"status", upstream.StatusOf(err),
		"error", err,
	)
	s.logger.ErrorContext(ctx, msg, attrs...)
}
