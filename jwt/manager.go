package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dualtoken/goCSRF/claims"
	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod names an HMAC algorithm supported by Manager.
type SigningMethod string

const (
	// MethodHS256 signs with HMAC-SHA256.
	MethodHS256 SigningMethod = "hs256"
	// MethodHS384 signs with HMAC-SHA384.
	MethodHS384 SigningMethod = "hs384"
	// MethodHS512 signs with HMAC-SHA512.
	MethodHS512 SigningMethod = "hs512"
)

var (
	// ErrMissingSecret is returned by NewManager when no secret is configured.
	ErrMissingSecret = errors.New("jwt: secret is required")
	// ErrUnsupportedMethod is returned by NewManager for unknown signing methods.
	ErrUnsupportedMethod = errors.New("jwt: unsupported signing method")
	// ErrInvalidClaims is returned by Parse when the payload is missing pair fields.
	ErrInvalidClaims = errors.New("jwt: invalid claims")
)

// Config configures a Manager.
//
// Config instances are intended to be configured during initialization and then treated as immutable.
type Config struct {
	Secret        []byte
	SigningMethod SigningMethod
	Issuer        string
}

// Manager signs and parses pair tokens. It holds no mutable state and is
// safe for concurrent use.
type Manager struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	issuer string
}

type pairClaims struct {
	UUID    string         `json:"uuid"`
	Purpose string         `json:"purpose"`
	Extra   map[string]any `json:"ext,omitempty"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a Manager. The secret is copied.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	if cfg.SigningMethod == "" {
		cfg.SigningMethod = MethodHS256
	}
	method, err := methodFor(cfg.SigningMethod)
	if err != nil {
		return nil, err
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &Manager{
		secret: secret,
		method: method,
		issuer: strings.TrimSpace(cfg.Issuer),
	}, nil
}

// Algorithm returns the JOSE name of the configured algorithm, e.g. "HS256".
func (m *Manager) Algorithm() string {
	return m.method.Alg()
}

// Sign encodes c as a signed JWT.
func (m *Manager) Sign(c claims.Claims) (string, error) {
	pc := pairClaims{
		UUID:    claims.EncodeID(c.UUID),
		Purpose: string(c.Purpose),
		Extra:   c.Extra,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(m.method, pc)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenStr and returns its claims. Malformed input, a bad
// signature, a foreign algorithm or issuer, and expiry all yield an error.
func (m *Manager) Parse(tokenStr string) (claims.Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if m.issuer != "" {
		options = append(options, jwt.WithIssuer(m.issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &pairClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != m.method.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return claims.Claims{}, fmt.Errorf("jwt: parse: %w", err)
	}

	pc, ok := token.Claims.(*pairClaims)
	if !ok || !token.Valid {
		return claims.Claims{}, ErrInvalidClaims
	}
	if pc.ExpiresAt == nil || pc.IssuedAt == nil || !claims.Purpose(pc.Purpose).Valid() {
		return claims.Claims{}, ErrInvalidClaims
	}

	id, err := claims.DecodeID(pc.UUID)
	if err != nil {
		return claims.Claims{}, fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}

	out := claims.Claims{
		UUID:      id,
		Purpose:   claims.Purpose(pc.Purpose),
		IssuedAt:  pc.IssuedAt.Time,
		ExpiresAt: pc.ExpiresAt.Time,
		Extra:     claims.CloneExtra(pc.Extra),
	}
	// exp is re-checked here so a zero lifetime never depends on library leeway.
	if out.Expired(time.Now()) {
		return claims.Claims{}, claims.ErrExpired
	}
	return out, nil
}

func methodFor(method SigningMethod) (*jwt.SigningMethodHMAC, error) {
	switch SigningMethod(strings.ToLower(string(method))) {
	case MethodHS256:
		return jwt.SigningMethodHS256, nil
	case MethodHS384:
		return jwt.SigningMethodHS384, nil
	case MethodHS512:
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
}
