package goCSRF

import (
	"fmt"
	"strings"
	"time"

	"github.com/dualtoken/goCSRF/jwt"
)

// DefaultExpiresIn is the token lifetime used by DefaultConfig.
const DefaultExpiresIn = time.Hour

// Config defines a public type used by goCSRF APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable.
// Start from DefaultConfig: a literal zero ExpiresIn means tokens are already expired at issuance.
type Config struct {
	Secret      []byte
	ExpiresIn   time.Duration
	Backend     Backend
	IDStrategy  IDStrategy
	IDGenerator IDGenerator
	JWT         JWTConfig
	Metrics     MetricsConfig
}

// Backend selects the signing backend.
type Backend string

const (
	// BackendJWT signs pairs as HMAC JWTs.
	BackendJWT Backend = "jwt"
	// BackendHMAC signs pairs in the compact payload.tag format.
	BackendHMAC Backend = "hmac"
)

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig tunes BackendJWT. It is ignored by BackendHMAC.
type JWTConfig struct {
	SigningMethod jwt.SigningMethod // "hs256" (default), "hs384", "hs512"
	Issuer        string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goCSRF APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns a config with every field but Secret set.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		ExpiresIn:  DefaultExpiresIn,
		Backend:    BackendJWT,
		IDStrategy: IDStrategyUUID,
		JWT: JWTConfig{
			SigningMethod: jwt.MethodHS256,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Secret = cloneBytes(cfg.Secret)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first construction-time problem with c.
func (c *Config) Validate() error {
	if len(c.Secret) == 0 {
		return ErrMissingSecret
	}
	if c.ExpiresIn < 0 {
		return ErrInvalidExpiry
	}

	switch c.Backend {
	case "", BackendJWT, BackendHMAC:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}

	if c.IDGenerator == nil {
		switch c.IDStrategy {
		case "", IDStrategySimple, IDStrategyUUID:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownIDStrategy, c.IDStrategy)
		}
	}

	if c.Backend != BackendHMAC && c.JWT.SigningMethod != "" {
		switch jwt.SigningMethod(strings.ToLower(string(c.JWT.SigningMethod))) {
		case jwt.MethodHS256, jwt.MethodHS384, jwt.MethodHS512:
		default:
			return fmt.Errorf("%w: %q", jwt.ErrUnsupportedMethod, c.JWT.SigningMethod)
		}
	}

	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return fmt.Errorf("latency histograms require metrics to be enabled")
	}

	return nil
}

/*
====================================
LINT
====================================
*/

// LintWarning is an advisory finding about a valid but questionable config.
type LintWarning struct {
	Code    string
	Message string
}

// LintWarnings is the ordered result of Config.Lint.
type LintWarnings []LintWarning

// Codes returns the warning codes in order.
func (ws LintWarnings) Codes() []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Code)
	}
	return out
}

const (
	maxRecommendedExpiresIn = 24 * time.Hour
	minRecommendedSecret    = 32
)

// Lint returns advisory warnings. It never fails; use Validate for hard errors.
func (c Config) Lint() LintWarnings {
	var ws LintWarnings

	if n := len(c.Secret); n > 0 && n < minRecommendedSecret {
		ws = append(ws, LintWarning{
			Code:    "secret_short",
			Message: fmt.Sprintf("secret is %d bytes; use at least %d", n, minRecommendedSecret),
		})
	}

	switch {
	case c.ExpiresIn == 0:
		ws = append(ws, LintWarning{Code: "expires_in_zero", Message: "tokens are expired at issuance"})
	case c.ExpiresIn > maxRecommendedExpiresIn:
		ws = append(ws, LintWarning{Code: "expires_in_long", Message: "token lifetime exceeds 24h"})
	case c.ExpiresIn < time.Second && c.Backend != BackendHMAC:
		ws = append(ws, LintWarning{Code: "expires_in_subsecond", Message: "jwt timestamps have one second precision"})
	}

	if c.IDGenerator != nil {
		ws = append(ws, LintWarning{Code: "custom_id_generator", Message: "identifier uniqueness is the caller's responsibility"})
	} else if c.IDStrategy == IDStrategySimple {
		ws = append(ws, LintWarning{Code: "simple_id_generator", Message: "simple ids embed the issue time"})
	}

	return ws
}
