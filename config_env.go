package goCSRF

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dualtoken/goCSRF/jwt"
	"github.com/joho/godotenv"
)

const base64SecretPrefix = "base64:"

var dotenvLoaded sync.Once

type envConfig struct {
	Secret         string        `env:"SECRET,required,unset"`
	ExpiresIn      time.Duration `env:"EXPIRES_IN" envDefault:"1h"`
	Backend        string        `env:"BACKEND" envDefault:"jwt"`
	IDStrategy     string        `env:"ID_STRATEGY" envDefault:"uuid"`
	SigningMethod  string        `env:"JWT_SIGNING_METHOD" envDefault:"hs256"`
	Issuer         string        `env:"JWT_ISSUER"`
	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"false"`
	LatencyEnabled bool          `env:"METRICS_LATENCY" envDefault:"false"`
}

// ConfigFromEnv reads a Config from environment variables named with prefix
// (for example "CSRF_" reads CSRF_SECRET, CSRF_EXPIRES_IN, CSRF_BACKEND,
// CSRF_ID_STRATEGY, CSRF_JWT_SIGNING_METHOD, CSRF_JWT_ISSUER,
// CSRF_METRICS_ENABLED and CSRF_METRICS_LATENCY). A .env file in the working
// directory is loaded once if present. A secret written as "base64:<std>"
// is decoded.
//
// The result is validated; ExpiresIn accepts Go durations such as "0s" or "15m".
func ConfigFromEnv(prefix string) (Config, error) {
	dotenvLoaded.Do(func() {
		// A missing .env file is normal outside local development.
		_ = godotenv.Load()
	})
	return configFromEnvOptions(env.Options{Prefix: prefix})
}

func configFromEnvOptions(opts env.Options) (Config, error) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, opts); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}

	secret, err := decodeSecret(ec.Secret)
	if err != nil {
		return Config{}, err
	}

	cfg := defaultConfig()
	cfg.Secret = secret
	cfg.ExpiresIn = ec.ExpiresIn
	cfg.Backend = Backend(strings.ToLower(strings.TrimSpace(ec.Backend)))
	cfg.IDStrategy = IDStrategy(strings.ToLower(strings.TrimSpace(ec.IDStrategy)))
	cfg.JWT.SigningMethod = jwt.SigningMethod(strings.ToLower(strings.TrimSpace(ec.SigningMethod)))
	cfg.JWT.Issuer = ec.Issuer
	cfg.Metrics.Enabled = ec.MetricsEnabled
	cfg.Metrics.EnableLatencyHistograms = ec.MetricsEnabled && ec.LatencyEnabled

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeSecret(raw string) ([]byte, error) {
	if encoded, ok := strings.CutPrefix(raw, base64SecretPrefix); ok {
		secret, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode base64 secret: %w", err)
		}
		if len(secret) == 0 {
			return nil, ErrMissingSecret
		}
		return secret, nil
	}
	if raw == "" {
		return nil, ErrMissingSecret
	}
	return []byte(raw), nil
}
