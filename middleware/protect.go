package middleware

import (
	"context"
	"net/http"

	goCSRF "github.com/dualtoken/goCSRF"
)

type verifiedPairContextKey struct{}

// FromContext returns the pair verified by Protect for this request.
func FromContext(ctx context.Context) (*goCSRF.VerifiedPair, bool) {
	pair, ok := ctx.Value(verifiedPairContextKey{}).(*goCSRF.VerifiedPair)
	return pair, ok
}

// Protect returns middleware that requires a valid token pair on every
// request whose method is not safe. Safe methods pass through untouched.
// A nil engine, including a nil *goCSRF.Engine, rejects every unsafe request.
func Protect(engine goCSRF.TokenEngine, opts Options) func(http.Handler) http.Handler {
	opts = opts.withDefaults()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if engine == nil {
				opts.ErrorHandler(w, r, goCSRF.ErrInvalidToken)
				return
			}

			header := r.Header.Get(opts.HeaderName)
			cookie := ""
			if c, err := r.Cookie(opts.CookieName); err == nil {
				cookie = c.Value
			}

			pair, err := engine.Verify(header, cookie)
			if err != nil {
				opts.ErrorHandler(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), verifiedPairContextKey{}, pair)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
