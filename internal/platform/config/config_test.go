package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	verifiermodels "issuer-verifier/internal/verifier/models"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	for _, key := range []string{
		"PORT", "API_BASE_URL", "CLIENT_SECRET", "APP_ENV", "LOG_LEVEL", "UPSTREAM_TIMEOUT",
		"DEMO_MODE", "TOKEN_SIGNING_KEY", "SCHEMA_BOOTSTRAP", "OTEL_ENABLED",
	} {
		s.T().Setenv(key, "")
	}
	s.T().Chdir(s.T().TempDir())
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := FromEnv()
	s.Require().NoError(err)

	s.Equal("3000", cfg.Port)
	s.Equal(":3000", cfg.Addr())
	s.Equal(defaultAPIBaseURL, cfg.APIBaseURL)
	s.Equal(EnvProduction, cfg.Environment)
	s.False(cfg.IsDevelopment())
	s.Equal("info", cfg.LogLevel)
	s.Equal(10*time.Second, cfg.UpstreamTimeout)
	s.False(cfg.DemoMode)
	s.False(cfg.SchemaBootstrap)
}

func (s *ConfigSuite) TestOverrides() {
	s.T().Setenv("PORT", "8088")
	s.T().Setenv("API_BASE_URL", "https://issuer.example.org")
	s.T().Setenv("CLIENT_SECRET", "shh")
	s.T().Setenv("APP_ENV", "Development")
	s.T().Setenv("LOG_LEVEL", "DEBUG")
	s.T().Setenv("UPSTREAM_TIMEOUT", "2500")
	s.T().Setenv("DEMO_MODE", "true")
	s.T().Setenv("SCHEMA_BOOTSTRAP", "1")

	cfg, err := FromEnv()
	s.Require().NoError(err)

	s.Equal(":8088", cfg.Addr())
	s.Equal("https://issuer.example.org", cfg.APIBaseURL)
	s.Equal("shh", cfg.ClientSecret)
	s.True(cfg.IsDevelopment())
	s.Equal("debug", cfg.LogLevel)
	s.Equal(2500*time.Millisecond, cfg.UpstreamTimeout)
	s.True(cfg.DemoMode)
	s.True(cfg.SchemaBootstrap)
}

func (s *ConfigSuite) TestInvalidBaseURL() {
	s.T().Setenv("API_BASE_URL", "not a url")

	_, err := FromEnv()
	s.Require().Error(err)
	s.Equal("api_base_url must be a valid url", err.Error())
}

func (s *ConfigSuite) TestInvalidEnvironment() {
	s.T().Setenv("APP_ENV", "staging")

	_, err := FromEnv()
	s.Require().Error(err)
	s.Contains(err.Error(), "environment must be one of")
}

func TestValidatorCredentialTemplate(t *testing.T) {
	tmpl := ValidatorCredentialTemplate()

	assert.Equal(t, verifiermodels.ValidatorCredentialType, tmpl.Type)
	assert.ElementsMatch(t, []string{"validatorAddress", "networkId"}, tmpl.RequiredFields)
	require.Contains(t, tmpl.Properties, "validatorName")
	assert.Equal(t, "text", tmpl.Properties["validatorName"].(map[string]any)["format"])
	assert.Len(t, SchemaTemplates(), 1)
}
