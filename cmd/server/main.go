package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	issuerhandler "issuer-verifier/internal/issuer/handler"
	issuerservice "issuer-verifier/internal/issuer/service"
	"issuer-verifier/internal/mpc"
	mpchandler "issuer-verifier/internal/mpc/handler"
	"issuer-verifier/internal/platform/config"
	"issuer-verifier/internal/platform/health"
	"issuer-verifier/internal/platform/httpserver"
	"issuer-verifier/internal/platform/logger"
	"issuer-verifier/internal/platform/metrics"
	"issuer-verifier/internal/platform/tracer"
	schemahandler "issuer-verifier/internal/schema/handler"
	schemaservice "issuer-verifier/internal/schema/service"
	httptransport "issuer-verifier/internal/transport/http"
	"issuer-verifier/internal/upstream"
	verifierhandler "issuer-verifier/internal/verifier/handler"
	verifierservice "issuer-verifier/internal/verifier/service"
	"issuer-verifier/pkg/platform/circuit"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing issuer-verifier",
		"addr", cfg.Addr(),
		"api_base_url", cfg.APIBaseURL,
		"environment", cfg.Environment,
		"demo_mode", cfg.DemoMode,
	)
	if cfg.ClientSecret == "" {
		log.Warn("CLIENT_SECRET is empty; upstream calls will be sent without a usable secret")
	}

	m := metrics.New()
	breaker := circuit.New("credential-api")

	var t tracer.Tracer = tracer.NewNoop()
	if cfg.OTelEnabled {
		t = tracer.NewOTel()
	}

	client := upstream.New(
		upstream.Config{
			BaseURL:      cfg.APIBaseURL,
			ClientSecret: cfg.ClientSecret,
			Timeout:      cfg.UpstreamTimeout,
		},
		upstream.WithLogger(log),
		upstream.WithMetrics(m),
		upstream.WithTracer(t),
		upstream.WithBreaker(breaker),
	)

	schemaSvc := schemaservice.NewService(client, schemaservice.WithLogger(log))
	issuerSvc := issuerservice.NewService(client,
		issuerservice.WithLogger(log),
		issuerservice.WithMetrics(m),
	)
	verifierSvc := verifierservice.NewService(client, issuerSvc,
		verifierservice.WithLogger(log),
		verifierservice.WithMetrics(m),
		verifierservice.WithSubjectTemplate(config.ValidatorCredentialTemplate()),
	)

	if cfg.SchemaBootstrap {
		bootstrapSchemas(ctx, schemaSvc, log)
	}

	healthHandler := health.New(cfg.Environment, health.WithDemoMode(cfg.DemoMode))
	healthHandler.RegisterCheck(breaker.Name(), func(context.Context) error {
		return breaker.Check()
	})

	exposeDetails := cfg.IsDevelopment()
	verifierH := verifierhandler.New(verifierSvc, log, exposeDetails)
	deps := httptransport.Deps{
		Logger:         log,
		Latency:        m,
		MetricsHandler: promhttp.Handler(),
		Health:         healthHandler,
		Schema:         schemahandler.New(schemaSvc, log, exposeDetails),
		Issuer:         issuerhandler.New(issuerSvc, log, exposeDetails),
		Verifier:       verifierH,
		ValidatorAlias: verifierH.HandleCreateValidator,
	}
	deps.Demo = localAuthRoutes(cfg, log, exposeDetails)

	srv := httpserver.New(cfg.Addr(), httptransport.NewRouter(deps))
	log.Info("starting http server", "addr", cfg.Addr())
	return httpserver.Run(ctx, srv, shutdownTimeout)
}

// bootstrapSchemas registers the configured schema templates that are not
// yet known upstream. Failures are logged and do not stop startup.
func bootstrapSchemas(ctx context.Context, svc *schemaservice.Service, log *slog.Logger) {
	for _, tmpl := range config.SchemaTemplates() {
		created, err := svc.EnsureTemplate(ctx, tmpl)
		if err != nil {
			log.Warn("schema bootstrap failed", "schema_type", tmpl.Type, "error", err)
			continue
		}
		if !created {
			log.Info("schema already registered", "schema_type", tmpl.Type)
		}
	}
}

// localAuthRoutes returns the challenge/token routes, or nil when neither
// DEMO_MODE nor TOKEN_SIGNING_KEY is set. With only a signing key the token
// endpoint issues HS256 JWTs and signed challenges are always rejected.
func localAuthRoutes(cfg config.Server, log *slog.Logger, exposeDetails bool) httptransport.Registrar {
	switch {
	case cfg.DemoMode:
		log.Warn("demo mode enabled: challenge and token endpoints are simulated")
	case cfg.TokenSigningKey != "":
		log.Info("token endpoint enabled: issuing HS256 tokens")
	default:
		return nil
	}
	auth := mpc.NewAuthenticator(cfg.DemoMode, cfg.TokenSigningKey, mpc.WithLogger(log))
	return mpchandler.New(auth, log, exposeDetails)
}
