package middleware

import (
	"net/http"

	. "stream/pkg/common"
	"stream/pkg/logger"
	"stream/pkg/sessions"
)

type (
	Authenticator interface {
		Authenticate(authHeader string) (*sessions.Principal, error)
	}
	Auth struct {
		Sessions Authenticator
	}
)

func NewAuthMiddleware(a Authenticator) *Auth {
	return &Auth{
		Sessions: a,
	}
}

// Require lets the request through only with a valid bearer token. The
// principal is put into the request context.
func (auth Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := auth.Sessions.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			logger.Log(r.Context()).Infof("auth: rejected request to %s: %v", r.URL.Path, err)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("WWW-Authenticate", `Bearer realm="stream"`)
			WriteMsg(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := sessions.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
