package hmactoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dualtoken/goCSRF/claims"
)

const separator = "."

var (
	// ErrMissingSecret is returned by New when no secret is configured.
	ErrMissingSecret = errors.New("hmactoken: secret is required")
	// ErrMalformed is returned by Parse for tokens that do not split or decode.
	ErrMalformed = errors.New("hmactoken: malformed token")
	// ErrSignatureInvalid is returned by Parse when the tag does not match the payload.
	ErrSignatureInvalid = errors.New("hmactoken: signature mismatch")
)

var encoding = base64.RawURLEncoding.Strict()

type payload struct {
	UUID      string         `json:"uuid"`
	Purpose   string         `json:"purpose"`
	IssuedAt  int64          `json:"iat"`
	ExpiresAt int64          `json:"exp"`
	Extra     map[string]any `json:"ext,omitempty"`
}

// Codec signs and parses compact tokens. It is safe for concurrent use.
type Codec struct {
	secret []byte
}

// New returns a Codec keyed with a copy of secret.
func New(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Codec{secret: key}, nil
}

// Algorithm names the keyed hash used for tags.
func (c *Codec) Algorithm() string {
	return "HMAC-SHA256"
}

// Sign serializes cl and appends its tag.
func (c *Codec) Sign(cl claims.Claims) (string, error) {
	data, err := json.Marshal(payload{
		UUID:      claims.EncodeID(cl.UUID),
		Purpose:   string(cl.Purpose),
		IssuedAt:  cl.IssuedAt.UnixMilli(),
		ExpiresAt: cl.ExpiresAt.UnixMilli(),
		Extra:     cl.Extra,
	})
	if err != nil {
		return "", fmt.Errorf("hmactoken: marshal payload: %w", err)
	}

	return encoding.EncodeToString(data) + separator + encoding.EncodeToString(c.tag(data)), nil
}

// Parse verifies token and returns its claims. The tag is checked before the
// payload is decoded.
func (c *Codec) Parse(token string) (claims.Claims, error) {
	encPayload, encTag, ok := strings.Cut(token, separator)
	if !ok || encPayload == "" || encTag == "" || strings.Contains(encTag, separator) {
		return claims.Claims{}, ErrMalformed
	}

	data, err := encoding.DecodeString(encPayload)
	if err != nil {
		return claims.Claims{}, fmt.Errorf("%w: payload: %v", ErrMalformed, err)
	}
	tag, err := encoding.DecodeString(encTag)
	if err != nil {
		return claims.Claims{}, fmt.Errorf("%w: tag: %v", ErrMalformed, err)
	}

	if !hmac.Equal(tag, c.tag(data)) {
		return claims.Claims{}, ErrSignatureInvalid
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return claims.Claims{}, fmt.Errorf("%w: payload json: %v", ErrMalformed, err)
	}
	if !claims.Purpose(p.Purpose).Valid() {
		return claims.Claims{}, ErrMalformed
	}

	id, err := claims.DecodeID(p.UUID)
	if err != nil {
		return claims.Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	out := claims.Claims{
		UUID:      id,
		Purpose:   claims.Purpose(p.Purpose),
		IssuedAt:  time.UnixMilli(p.IssuedAt),
		ExpiresAt: time.UnixMilli(p.ExpiresAt),
		Extra:     claims.CloneExtra(p.Extra),
	}
	if out.Expired(time.Now()) {
		return claims.Claims{}, claims.ErrExpired
	}
	return out, nil
}

func (c *Codec) tag(data []byte) []byte {
	h := hmac.New(sha256.New, c.secret)
	h.Write(data)
	return h.Sum(nil)
}
