package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hackercoop/coop/internal/identity"
)

type AuthHandler struct {
	provider        *identity.Provider
	sessionSecret   string
	sessionDuration time.Duration
	secureCookies   bool
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(provider *identity.Provider, sessionSecret string, sessionDuration time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		provider:        provider,
		sessionSecret:   sessionSecret,
		sessionDuration: sessionDuration,
		secureCookies:   secureCookies,
	}
}

// Login redirects the browser to the GitHub authorize page with a fresh
// state nonce echoed in a short-lived cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.provider.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "GitHub OAuth is not configured.")
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusFound)
}

// Callback completes the OAuth code flow: verify state, exchange the code
// for the GitHub profile, mint the session cookie, land on the dashboard.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || state == "" || cookie.Value != state {
		writeError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}
	if code == "" {
		writeError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	ident, err := h.provider.Exchange(r.Context(), code)
	if err != nil {
		logger.Error("oauth exchange failed", "err", err)
		writeError(w, http.StatusBadGateway, "Authentication failed.")
		return
	}

	tokenStr, err := mintSessionToken(h.sessionSecret, h.sessionDuration, ident)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error signing session token")
		return
	}

	h.clearCookie(w, stateCookieName)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    tokenStr,
		Path:     "/",
		MaxAge:   int(h.sessionDuration / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Signout clears the session cookie; the JWT itself simply expires.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, sessionCookieName)
	writeJSON(w, map[string]string{"message": "signed out"}, http.StatusOK)
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
	})
}
