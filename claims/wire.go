package claims

import (
	"encoding/base64"
	"errors"
)

// ErrMalformedID is returned by DecodeID for values EncodeID never produces.
var ErrMalformedID = errors.New("claims: malformed id")

var idEncoding = base64.RawURLEncoding.Strict()

// EncodeID renders an identifier for a token payload. Identifiers are opaque
// byte strings, so they travel base64url-encoded and survive JSON unchanged
// even when they are not valid UTF-8.
func EncodeID(id string) string {
	return idEncoding.EncodeToString([]byte(id))
}

// DecodeID reverses EncodeID.
func DecodeID(s string) (string, error) {
	b, err := idEncoding.DecodeString(s)
	if err != nil {
		return "", ErrMalformedID
	}
	return string(b), nil
}
