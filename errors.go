package goCSRF

import "errors"

var (
	// ErrMissingToken is returned by Verify when either token is empty.
	ErrMissingToken = errors.New("MISSING_TOKEN")
	// ErrInvalidToken is returned by Verify for any present-but-bad token:
	// malformed, badly signed, expired, slot-swapped, or from another pair.
	ErrInvalidToken = errors.New("INVALID_TOKEN")

	// ErrMissingSecret is returned at construction when Config.Secret is empty.
	ErrMissingSecret = errors.New("secret is required")
	// ErrInvalidExpiry is returned at construction when Config.ExpiresIn is negative.
	ErrInvalidExpiry = errors.New("expires in must be >= 0")
	// ErrUnknownBackend is returned at construction for an unrecognized Config.Backend.
	ErrUnknownBackend = errors.New("unknown token backend")
	// ErrUnknownIDStrategy is returned at construction for an unrecognized Config.IDStrategy.
	ErrUnknownIDStrategy = errors.New("unknown id strategy")
	// ErrCreateFailed is returned by Create when a token cannot be signed.
	ErrCreateFailed = errors.New("token creation failed")
)
