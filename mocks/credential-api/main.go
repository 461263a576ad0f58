// Command credential-api is an in-memory stand-in for the upstream
// verifiable-credential API, for local runs and end-to-end checks.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort      = "8081"
	defaultLatencyMs = "50"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	port := getEnv("PORT", defaultPort)
	secret := os.Getenv("CLIENT_SECRET")
	latency := time.Duration(getEnvInt("LATENCY_MS", defaultLatencyMs)) * time.Millisecond

	srv := newServer(newStore(), secret, latency, log)

	log.Info("mock credential API starting",
		"port", port,
		"secret_required", secret != "",
		"latency", latency,
	)
	httpSrv := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := httpSrv.ListenAndServe(); err != nil {
		log.Error("mock credential API stopped", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) int {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		intValue, _ = strconv.Atoi(defaultValue)
	}
	return intValue
}
