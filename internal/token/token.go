// Package token implements the opaque access token that lets an applicant
// read and update their own submission without an account. The token is a
// URL-safe base64 encoding of the (id, email, updated_at) triple and is not
// cryptographically authenticated: it is an obfuscation convenience for a
// low-stakes community app, not a security boundary. Every successful update
// bumps updated_at, so previously issued tokens stop matching the row.
package token

import (
	"encoding/base64"
	"encoding/json"

	"github.com/hackercoop/coop/pkg/models"
)

// Grant is the decoded form of an access token.
type Grant struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Updated int64  `json:"updated_at"`
}

// Encode produces the opaque token for an application row. Deterministic:
// the same row always yields the same token.
func Encode(a *models.Application) string {
	g := Grant{ID: a.ID, Email: a.Email, Updated: a.Updated}
	b, _ := json.Marshal(g)

	return base64.URLEncoding.EncodeToString(b)
}

// Decode is the inverse of Encode. Tokens arrive from untrusted query
// strings, so any structurally invalid input yields nil rather than an error.
func Decode(s string) *Grant {
	if s == "" {
		return nil
	}

	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil
	}

	var g Grant
	if err := json.Unmarshal(b, &g); err != nil {
		return nil
	}
	if g.ID <= 0 || g.Email == "" {
		return nil
	}

	return &g
}
