package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"issuer-verifier/internal/schema/models"
	verifiermodels "issuer-verifier/internal/verifier/models"
	"issuer-verifier/pkg/validation"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultPort            = "3000"
	defaultAPIBaseURL      = "http://localhost:8081"
	defaultUpstreamTimeout = 10 * time.Second
)

// Server captures everything main needs to wire the service.
type Server struct {
	Port            string `validate:"required,numeric"`
	APIBaseURL      string `validate:"required,url"`
	ClientSecret    string
	Environment     string        `validate:"oneof=development production test"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	UpstreamTimeout time.Duration `validate:"gt=0"`
	DemoMode        bool
	TokenSigningKey string
	SchemaBootstrap bool
	// OTelEnabled switches outbound spans from the noop tracer to the global
	// OpenTelemetry provider.
	OTelEnabled bool
}

// Addr is the listen address derived from Port.
func (s Server) Addr() string {
	return ":" + s.Port
}

// IsDevelopment gates error details in responses.
func (s Server) IsDevelopment() bool {
	return s.Environment == EnvDevelopment
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables win over it.
func FromEnv() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, err
	}

	cfg := Server{
		Port:            envOr("PORT", defaultPort),
		APIBaseURL:      envOr("API_BASE_URL", defaultAPIBaseURL),
		ClientSecret:    os.Getenv("CLIENT_SECRET"),
		Environment:     strings.ToLower(envOr("APP_ENV", EnvProduction)),
		LogLevel:        strings.ToLower(envOr("LOG_LEVEL", "info")),
		UpstreamTimeout: durationOr("UPSTREAM_TIMEOUT", defaultUpstreamTimeout),
		DemoMode:        boolOr("DEMO_MODE", false),
		TokenSigningKey: os.Getenv("TOKEN_SIGNING_KEY"),
		SchemaBootstrap: boolOr("SCHEMA_BOOTSTRAP", false),
		OTelEnabled:     boolOr("OTEL_ENABLED", false),
	}
	if err := validation.Struct(cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Bare integers are milliseconds, matching the upstream client's historical setting.
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

func boolOr(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// ValidatorCredentialTemplate is the schema registered for validator credentials.
func ValidatorCredentialTemplate() models.Template {
	return models.Template{
		Name: "Validator Credential",
		Type: verifiermodels.ValidatorCredentialType,
		Properties: map[string]any{
			"validatorAddress": textProperty("Validator Address", "The blockchain address of the validator"),
			"validatorName":    textProperty("Validator Name", "The name of the validator node"),
			"networkId":        textProperty("Network ID", "The ID of the blockchain network"),
		},
		RequiredFields: []string{"validatorAddress", "networkId"},
	}
}

// SchemaTemplates lists every template bootstrapped at startup.
func SchemaTemplates() []models.Template {
	return []models.Template{ValidatorCredentialTemplate()}
}

func textProperty(title, description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"title":       title,
		"description": description,
		"format":      "text",
	}
}
