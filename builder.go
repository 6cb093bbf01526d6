package goCSRF

import (
	"errors"
	"time"

	"github.com/dualtoken/goCSRF/jwt"
)

// Builder assembles an Engine step by step. A Builder is single-use.
//
// Builder instances are intended to be configured during initialization; they are not safe for concurrent use.
type Builder struct {
	config Config
	built  bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole config.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithSecret sets the signing key. The slice is copied.
func (b *Builder) WithSecret(secret []byte) *Builder {
	b.config.Secret = cloneBytes(secret)
	return b
}

// WithExpiresIn sets the token lifetime. Zero issues already-expired tokens.
func (b *Builder) WithExpiresIn(d time.Duration) *Builder {
	b.config.ExpiresIn = d
	return b
}

// WithBackend selects the signing backend.
func (b *Builder) WithBackend(backend Backend) *Builder {
	b.config.Backend = backend
	return b
}

// WithJWTSigningMethod selects the HMAC algorithm used by BackendJWT.
func (b *Builder) WithJWTSigningMethod(method jwt.SigningMethod) *Builder {
	b.config.JWT.SigningMethod = method
	return b
}

// WithIDStrategy selects a built-in identifier generator and clears any custom one.
func (b *Builder) WithIDStrategy(strategy IDStrategy) *Builder {
	b.config.IDStrategy = strategy
	b.config.IDGenerator = nil
	return b
}

// WithIDGenerator installs a custom identifier generator.
func (b *Builder) WithIDGenerator(gen IDGenerator) *Builder {
	b.config.IDGenerator = gen
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the accumulated config and returns the Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	engine, err := NewEngine(b.config)
	if err != nil {
		return nil, err
	}

	b.built = true
	return engine, nil
}
