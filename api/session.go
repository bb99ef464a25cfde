package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hackercoop/coop/internal/identity"
)

const (
	sessionCookieName = "coop_session"
	stateCookieName   = "coop_oauth_state"
)

// mintSessionToken issues the HS256 session JWT carried by the session cookie.
func mintSessionToken(secret string, duration time.Duration, ident *identity.Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": ident.UserID,
		"login":   ident.Login,
		"name":    ident.Name,
		"email":   ident.Email,
		"exp":     time.Now().Add(duration).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// parseSessionToken validates the session JWT and rebuilds the caller's
// identity from its claims.
func parseSessionToken(secret, tokenStr string) (*identity.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid session claims")
	}

	ident := &identity.Identity{}
	if v, ok := claims["user_id"].(string); ok {
		ident.UserID = v
	}
	if v, ok := claims["login"].(string); ok {
		ident.Login = v
	}
	if v, ok := claims["name"].(string); ok {
		ident.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		ident.Email = v
	}
	if ident.UserID == "" {
		return nil, fmt.Errorf("session has no user id")
	}

	return ident, nil
}
