package middleware

import (
	"errors"
	"net/http"
	"time"

	goCSRF "github.com/dualtoken/goCSRF"
)

const (
	DefaultHeaderName = "X-CSRF-Token"
	DefaultCookieName = "csrf_token"
)

// ErrorHandler writes the response for a rejected request. err is one of
// goCSRF.ErrMissingToken, goCSRF.ErrInvalidToken or an issuance failure.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Options configures Protect and Issue. The zero value is usable.
type Options struct {
	HeaderName string
	CookieName string

	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite http.SameSite
	// CookieMaxAge of zero derives the cookie lifetime from the engine.
	CookieMaxAge time.Duration

	ErrorHandler ErrorHandler
}

func (o Options) withDefaults() Options {
	if o.HeaderName == "" {
		o.HeaderName = DefaultHeaderName
	}
	if o.CookieName == "" {
		o.CookieName = DefaultCookieName
	}
	if o.CookiePath == "" {
		o.CookiePath = "/"
	}
	if o.CookieSameSite == 0 {
		o.CookieSameSite = http.SameSiteStrictMode
	}
	if o.ErrorHandler == nil {
		o.ErrorHandler = defaultErrorHandler
	}
	return o
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	switch {
	case errors.Is(err, goCSRF.ErrMissingToken):
		http.Error(w, goCSRF.ErrMissingToken.Error(), http.StatusForbidden)
	case errors.Is(err, goCSRF.ErrInvalidToken):
		http.Error(w, goCSRF.ErrInvalidToken.Error(), http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
