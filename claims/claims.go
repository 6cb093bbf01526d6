package claims

import (
	"errors"
	"maps"
	"time"
)

// ErrExpired is returned by backends when a token's ExpiresAt is not in the future.
var ErrExpired = errors.New("token expired")

// Purpose tags the slot a token was issued for.
type Purpose string

const (
	// PurposeHeader marks the token carried in the request header.
	PurposeHeader Purpose = "header"
	// PurposeCookie marks the token carried in the cookie.
	PurposeCookie Purpose = "cookie"
)

// Valid reports whether p is one of the two known slots.
func (p Purpose) Valid() bool {
	return p == PurposeHeader || p == PurposeCookie
}

// Claims is the payload of one token.
//
// Claims values are immutable once built: New copies Extra, and backends
// return freshly decoded values on every parse.
type Claims struct {
	UUID      string
	Purpose   Purpose
	IssuedAt  time.Time
	ExpiresAt time.Time
	Extra     map[string]any
}

// New builds the claims for one slot. A zero expiresIn yields claims that
// are already expired at issuance.
func New(id string, purpose Purpose, now time.Time, expiresIn time.Duration, extra map[string]any) Claims {
	return Claims{
		UUID:      id,
		Purpose:   purpose,
		IssuedAt:  now,
		ExpiresAt: now.Add(expiresIn),
		Extra:     CloneExtra(extra),
	}
}

// Expired reports whether the claims are no longer valid at now.
// ExpiresAt itself counts as expired.
func (c Claims) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// CloneExtra returns a shallow copy of extra, or nil when it is empty.
func CloneExtra(extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return nil
	}
	return maps.Clone(extra)
}
