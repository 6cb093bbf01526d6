package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	goCSRF "github.com/dualtoken/goCSRF"
)

type issueResponse struct {
	Token      string `json:"token"`
	HeaderName string `json:"header_name"`
}

type expiresInProvider interface {
	ExpiresIn() time.Duration
}

// Issue returns a handler that mints a fresh pair. The cookie token is set
// as an HttpOnly cookie; the header token is echoed in the response header
// and in a JSON body for clients that read it from script.
func Issue(engine goCSRF.TokenEngine, opts Options) http.Handler {
	opts = opts.withDefaults()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			opts.ErrorHandler(w, r, goCSRF.ErrCreateFailed)
			return
		}

		pair, err := engine.Create(nil)
		if err != nil {
			opts.ErrorHandler(w, r, err)
			return
		}

		http.SetCookie(w, buildCookie(engine, opts, pair.Cookie))
		w.Header().Set(opts.HeaderName, pair.Header)
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(issueResponse{Token: pair.Header, HeaderName: opts.HeaderName})
	})
}

func buildCookie(engine goCSRF.TokenEngine, opts Options, value string) *http.Cookie {
	maxAge := opts.CookieMaxAge
	if maxAge == 0 {
		if p, ok := engine.(expiresInProvider); ok {
			maxAge = p.ExpiresIn()
		}
	}

	c := &http.Cookie{
		Name:     opts.CookieName,
		Value:    value,
		Path:     opts.CookiePath,
		Domain:   opts.CookieDomain,
		Secure:   opts.CookieSecure,
		HttpOnly: true,
		SameSite: opts.CookieSameSite,
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge / time.Second)
		if c.MaxAge == 0 {
			c.MaxAge = 1
		}
	}
	return c
}
