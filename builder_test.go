package goCSRF

import (
	"errors"
	"testing"
	"time"

	"github.com/dualtoken/goCSRF/jwt"
)

func TestBuilderBuildsEngine(t *testing.T) {
	engine, err := New().
		WithSecret([]byte("0123456789abcdef0123456789abcdef")).
		WithBackend(BackendHMAC).
		WithExpiresIn(10 * time.Minute).
		WithIDStrategy(IDStrategySimple).
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if engine.Backend() != BackendHMAC {
		t.Fatalf("expected hmac backend, got %s", engine.Backend())
	}
	if engine.ExpiresIn() != 10*time.Minute {
		t.Fatalf("expected 10m lifetime, got %s", engine.ExpiresIn())
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithSecret([]byte("0123456789abcdef0123456789abcdef"))
	if _, err := b.Build(); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected second build to fail")
	}
}

func TestBuilderRequiresSecret(t *testing.T) {
	if _, err := New().Build(); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestBuilderFailedBuildCanRetry(t *testing.T) {
	b := New()
	if _, err := b.Build(); err == nil {
		t.Fatal("expected build without secret to fail")
	}
	if _, err := b.WithSecret([]byte("0123456789abcdef0123456789abcdef")).Build(); err != nil {
		t.Fatalf("retry build: %v", err)
	}
}

func TestBuilderIDStrategyClearsCustomGenerator(t *testing.T) {
	engine, err := New().
		WithSecret([]byte("0123456789abcdef0123456789abcdef")).
		WithIDGenerator(func() string { return "fixed" }).
		WithIDStrategy(IDStrategyUUID).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	pair := mustCreate(t, engine, nil)
	got, err := engine.Verify(pair.Header, pair.Cookie)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Header.UUID == "fixed" {
		t.Fatal("expected WithIDStrategy to replace the custom generator")
	}
}

func TestBuilderJWTSigningMethod(t *testing.T) {
	engine, err := New().
		WithSecret([]byte("0123456789abcdef0123456789abcdef")).
		WithJWTSigningMethod(jwt.MethodHS512).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if alg := engine.SecurityReport().SigningAlgorithm; alg != "HS512" {
		t.Fatalf("expected HS512, got %s", alg)
	}
}

func TestBuilderWithConfigCopiesSecret(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Secret = []byte("0123456789abcdef0123456789abcdef")
	b := New().WithConfig(cfg)
	cfg.Secret[0] = 'X'

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if engine.config.Secret[0] != '0' {
		t.Fatal("expected builder to own a copy of the secret")
	}
}
