package goCSRF

import "github.com/dualtoken/goCSRF/claims"

type (
	// Claims is the decoded payload of one token.
	Claims = claims.Claims
	// Purpose tags the slot a token belongs to.
	Purpose = claims.Purpose
)

const (
	// PurposeHeader marks the header-slot token.
	PurposeHeader = claims.PurposeHeader
	// PurposeCookie marks the cookie-slot token.
	PurposeCookie = claims.PurposeCookie
)

// TokenPair is the result of Create: two independently signed tokens that
// share one identifier.
type TokenPair struct {
	Header string
	Cookie string
}

// VerifiedPair holds the decoded claims of a pair that passed Verify.
// Header.UUID always equals Cookie.UUID.
type VerifiedPair struct {
	Header Claims
	Cookie Claims
}

// TokenEngine is the contract shared by every backend.
type TokenEngine interface {
	Create(extra map[string]any) (TokenPair, error)
	Verify(headerToken, cookieToken string) (*VerifiedPair, error)
}
