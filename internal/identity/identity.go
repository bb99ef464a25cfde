// Package identity bridges the external GitHub OAuth provider. It exchanges
// authorization codes for the caller's GitHub profile; session handling on
// top of that profile lives in the api package.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const userEndpoint = "https://api.github.com/user"

// Identity is the resolved external identity of an authenticated caller.
// Login is the GitHub username; every identity is expected to carry one.
type Identity struct {
	UserID string `json:"user_id"`
	Login  string `json:"login"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Provider performs the GitHub OAuth code flow.
type Provider struct {
	oauth *oauth2.Config
}

func NewProvider(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

// Enabled reports whether OAuth credentials are configured.
func (p *Provider) Enabled() bool {
	return p.oauth.ClientID != "" && p.oauth.ClientSecret != ""
}

// AuthCodeURL returns the GitHub authorize URL for the given state nonce.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for the caller's GitHub profile.
func (p *Provider) Exchange(ctx context.Context, code string) (*Identity, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	return p.fetchUser(ctx, tok)
}

func (p *Provider) fetchUser(ctx context.Context, tok *oauth2.Token) (*Identity, error) {
	client := p.oauth.Client(ctx, tok)
	res, err := client.Get(userEndpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("fetch user: status %d: %s", res.StatusCode, string(b))
	}

	var u struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(res.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if u.Login == "" {
		return nil, fmt.Errorf("github profile has no login")
	}

	return &Identity{
		UserID: fmt.Sprintf("github:%d", u.ID),
		Login:  u.Login,
		Name:   u.Name,
		Email:  u.Email,
	}, nil
}
