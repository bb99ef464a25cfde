package api

import (
	"context"
	"net/http"
	"os"
	"strings"

	"log/slog"

	"github.com/gorilla/mux"
	"github.com/hackercoop/coop/internal/identity"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey string

const CtxIdentity ctxKey = "identity"

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// IdentityFromContext returns the authenticated identity placed in the
// request context by SessionMiddleware, or nil.
func IdentityFromContext(ctx context.Context) *identity.Identity {
	ident, _ := ctx.Value(CtxIdentity).(*identity.Identity)

	return ident
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				writeError(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// SessionMiddlewareWithSecret authenticates requests by the session cookie
// minted at OAuth callback and places the caller's identity in the context.
func SessionMiddlewareWithSecret(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			ident, err := parseSessionToken(secret, cookie.Value)
			if err != nil {
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CtxIdentity, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminAuthMiddleware gates admin endpoints on a bearer token checked against
// a configured bcrypt hash. When no hash is configured the endpoints stay
// reachable in development only, matching the local-review workflow.
func AdminAuthMiddleware(adminTokenHash string, development bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminTokenHash == "" {
				if development {
					next.ServeHTTP(w, r)
					return
				}
				writeError(w, http.StatusUnauthorized, msgAccessDenied)
				return
			}

			authHeader := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenStr == "" {
				writeError(w, http.StatusUnauthorized, msgAccessDenied)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(adminTokenHash), []byte(tokenStr)); err != nil {
				writeError(w, http.StatusUnauthorized, msgAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
