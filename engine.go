package goCSRF

import (
	"errors"
	"fmt"
	"time"

	"github.com/dualtoken/goCSRF/claims"
	"github.com/dualtoken/goCSRF/hmactoken"
	"github.com/dualtoken/goCSRF/jwt"
	gjwt "github.com/golang-jwt/jwt/v5"
)

// codec is the signing backend contract. *jwt.Manager and *hmactoken.Codec
// implement it.
type codec interface {
	Sign(c claims.Claims) (string, error)
	Parse(token string) (claims.Claims, error)
	Algorithm() string
}

// Engine issues and verifies header/cookie token pairs.
//
// Engine is immutable after construction; Create and Verify are safe for
// concurrent use and perform no I/O.
type Engine struct {
	config  Config
	codec   codec
	newID   IDGenerator
	metrics *Metrics
}

var _ TokenEngine = (*Engine)(nil)

// NewEngine validates cfg and builds an Engine for cfg.Backend.
func NewEngine(cfg Config) (*Engine, error) {
	cfg = cloneConfig(cfg)
	if cfg.Backend == "" {
		cfg.Backend = BackendJWT
	}
	if cfg.IDGenerator == nil && cfg.IDStrategy == "" {
		cfg.IDStrategy = IDStrategyUUID
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	newID, err := resolveIDGenerator(cfg.IDGenerator, cfg.IDStrategy)
	if err != nil {
		return nil, err
	}

	c, err := newCodec(cfg)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:  cfg,
		codec:   c,
		newID:   newID,
		metrics: NewMetrics(cfg.Metrics),
	}, nil
}

// NewJWTEngine builds an Engine on the JWT backend regardless of cfg.Backend.
func NewJWTEngine(cfg Config) (*Engine, error) {
	cfg.Backend = BackendJWT
	return NewEngine(cfg)
}

// NewHMACEngine builds an Engine on the compact HMAC backend regardless of cfg.Backend.
func NewHMACEngine(cfg Config) (*Engine, error) {
	cfg.Backend = BackendHMAC
	return NewEngine(cfg)
}

func newCodec(cfg Config) (codec, error) {
	switch cfg.Backend {
	case BackendJWT:
		return jwt.NewManager(jwt.Config{
			Secret:        cfg.Secret,
			SigningMethod: cfg.JWT.SigningMethod,
			Issuer:        cfg.JWT.Issuer,
		})
	case BackendHMAC:
		return hmactoken.New(cfg.Secret)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Create issues a new pair. Both tokens carry the same fresh identifier and
// a copy of extra; they differ only in purpose. Extra values travel as JSON,
// so strings in extra must be valid UTF-8 to come back unchanged.
//
// A nil *Engine returns ErrCreateFailed.
func (e *Engine) Create(extra map[string]any) (TokenPair, error) {
	if e == nil {
		return TokenPair{}, fmt.Errorf("%w: nil engine", ErrCreateFailed)
	}
	id := e.newID()
	now := time.Now()

	header, err := e.codec.Sign(claims.New(id, claims.PurposeHeader, now, e.config.ExpiresIn, extra))
	if err != nil {
		e.metrics.Inc(MetricCreateFailure)
		return TokenPair{}, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}
	cookie, err := e.codec.Sign(claims.New(id, claims.PurposeCookie, now, e.config.ExpiresIn, extra))
	if err != nil {
		e.metrics.Inc(MetricCreateFailure)
		return TokenPair{}, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	e.metrics.Inc(MetricCreateSuccess)
	return TokenPair{Header: header, Cookie: cookie}, nil
}

// Verify checks a pair. It returns ErrMissingToken when either token is
// empty, before any cryptographic work, and ErrInvalidToken for every other
// failure. On success both decoded claim sets are returned.
//
// A nil *Engine accepts nothing.
func (e *Engine) Verify(headerToken, cookieToken string) (*VerifiedPair, error) {
	if headerToken == "" || cookieToken == "" {
		if e != nil {
			e.metrics.Inc(MetricVerifyMissingToken)
		}
		return nil, ErrMissingToken
	}
	if e == nil {
		return nil, ErrInvalidToken
	}

	var start time.Time
	if e.metrics.LatencyEnabled() {
		start = time.Now()
		defer func() { e.metrics.Observe(MetricVerifyLatency, time.Since(start)) }()
	}

	pair, reason := e.verifyPair(headerToken, cookieToken)
	if pair == nil {
		e.metrics.Inc(MetricVerifyInvalidToken)
		e.metrics.Inc(reason)
		return nil, ErrInvalidToken
	}

	e.metrics.Inc(MetricVerifySuccess)
	return pair, nil
}

// verifyPair returns the decoded pair, or nil and the counter naming why the
// pair was rejected. Callers only ever see ErrInvalidToken; the reason is
// kept for metrics.
func (e *Engine) verifyPair(headerToken, cookieToken string) (*VerifiedPair, MetricID) {
	header, err := e.codec.Parse(headerToken)
	if err != nil {
		return nil, parseFailureReason(err)
	}
	cookie, err := e.codec.Parse(cookieToken)
	if err != nil {
		return nil, parseFailureReason(err)
	}

	if header.Purpose != claims.PurposeHeader || cookie.Purpose != claims.PurposeCookie {
		return nil, MetricVerifyInvalidPurpose
	}
	if header.UUID != cookie.UUID {
		return nil, MetricVerifyInvalidMismatch
	}

	return &VerifiedPair{Header: header, Cookie: cookie}, 0
}

func parseFailureReason(err error) MetricID {
	switch {
	case errors.Is(err, claims.ErrExpired), errors.Is(err, gjwt.ErrTokenExpired):
		return MetricVerifyInvalidExpired
	case errors.Is(err, hmactoken.ErrSignatureInvalid), errors.Is(err, gjwt.ErrTokenSignatureInvalid):
		return MetricVerifyInvalidSignature
	default:
		return MetricVerifyInvalidMalformed
	}
}

// Backend reports the signing backend in use.
func (e *Engine) Backend() Backend {
	if e == nil {
		return ""
	}
	return e.config.Backend
}

// ExpiresIn reports the configured token lifetime.
func (e *Engine) ExpiresIn() time.Duration {
	if e == nil {
		return 0
	}
	return e.config.ExpiresIn
}

// MetricsSnapshot returns a copy of the engine counters labelled with the
// engine's backend. It is empty when metrics are disabled.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return (*Metrics)(nil).Snapshot()
	}
	s := e.metrics.Snapshot()
	s.Backend = e.config.Backend
	return s
}
