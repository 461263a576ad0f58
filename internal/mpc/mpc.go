// Package mpc holds the placeholder DID challenge and token helpers used by the
// demo flow. Nothing here is cryptographically meaningful: challenges are random
// hex, signed challenges are not checked, and demo tokens are unsigned.
// Outside DEMO_MODE, GenerateToken signs real HS256 tokens with
// TOKEN_SIGNING_KEY.
package mpc

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "issuer-verifier/pkg/domain-errors"
)

const (
	// DefaultTokenTTL applies when TokenRequest.ExpiresIn is omitted.
	DefaultTokenTTL = 3600 * time.Second
	MaxTokenTTL     = 24 * time.Hour

	challengeBytes     = 32
	simulatedSignature = "simulated_signature"
)

// GenerateChallenge returns 32 random bytes as 64 lowercase hex characters.
func GenerateChallenge() (string, error) {
	b := make([]byte, challengeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type SignedChallenge struct {
	Challenge       string `json:"challenge"`
	SignedChallenge string `json:"signedChallenge"`
	DID             string `json:"did"`
}

type TokenRequest struct {
	DID string `json:"did"`
	// ExpiresIn is the token lifetime in seconds. Nil means DefaultTokenTTL.
	ExpiresIn *int `json:"expiresIn,omitempty"`
}

// TTL returns the requested lifetime, or DefaultTokenTTL when none was given.
// An explicit lifetime must be between one second and MaxTokenTTL.
func (r TokenRequest) TTL() (time.Duration, error) {
	if r.ExpiresIn == nil {
		return DefaultTokenTTL, nil
	}
	maxSeconds := int(MaxTokenTTL / time.Second)
	if secs := *r.ExpiresIn; secs >= 1 && secs <= maxSeconds {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("expiresIn must be between 1 and %d seconds", maxSeconds))
}

// Authenticator answers the local challenge/token operations.
type Authenticator struct {
	demoMode   bool
	signingKey []byte
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Authenticator)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

// WithClock overrides the time source used for iat/exp.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		a.now = now
	}
}

func NewAuthenticator(demoMode bool, signingKey string, opts ...Option) *Authenticator {
	a := &Authenticator{
		demoMode:   demoMode,
		signingKey: []byte(signingKey),
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Simulated reports whether tokens and verifications are placeholders.
func (a *Authenticator) Simulated() bool {
	return a.demoMode
}

// VerifySignedChallenge never checks a signature. In demo mode every
// submission is accepted; otherwise every submission is rejected. It never fails.
func (a *Authenticator) VerifySignedChallenge(ctx context.Context, req SignedChallenge) bool {
	if !a.demoMode {
		a.logger.WarnContext(ctx, "signed challenge rejected: verification requires demo mode",
			"did", req.DID,
		)
		return false
	}
	a.logger.WarnContext(ctx, "accepting signed challenge without verification (demo mode)",
		"did", req.DID,
	)
	return true
}

type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

type tokenPayload struct {
	Sub string `json:"sub"`
	Iat int64  `json:"iat"`
	Exp int64  `json:"exp"`
}

// GenerateToken issues a bearer token for req.DID with sub/iat/exp claims.
// Demo mode yields "<header>.<payload>.simulated_signature" with standard
// base64 segments. Outside demo mode a signing key is required and the token
// is a real HS256 JWT.
func (a *Authenticator) GenerateToken(req TokenRequest) (string, error) {
	ttl, err := req.TTL()
	if err != nil {
		return "", err
	}
	now := a.now()
	iat := now.Unix()
	exp := now.Add(ttl).Unix()

	if a.demoMode {
		return simulatedToken(tokenPayload{Sub: req.DID, Iat: iat, Exp: exp})
	}

	if len(a.signingKey) == 0 {
		return "", dErrors.New(dErrors.CodeUnavailable, "token signing is not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   req.DID,
		IssuedAt:  jwt.NewNumericDate(time.Unix(iat, 0)),
		ExpiresAt: jwt.NewNumericDate(time.Unix(exp, 0)),
	})
	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func simulatedToken(payload tokenPayload) (string, error) {
	header, err := json.Marshal(tokenHeader{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(header) + "." +
		base64.StdEncoding.EncodeToString(body) + "." +
		simulatedSignature, nil
}
