package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hackercoop/coop/pkg/repository"
)

type memberUpdateRequest struct {
	DisplayName      string `json:"display_name"`
	DiscordUsername  string `json:"discord_username"`
	Bio              string `json:"bio"`
	Goals            string `json:"goals"`
	LinkedinURL      string `json:"linkedin_url"`
	PortfolioURL     string `json:"portfolio_url"`
	TwitterURL       string `json:"twitter_url"`
	ProjectDemoURL   string `json:"project_demo_url"`
	ProjectGithubURL string `json:"project_github_url"`
}

// Me returns the caller's member row, provisioning it on first access.
func (h *MembersHandler) Me(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	member, err := h.findOrCreateMember(r.Context(), ident)
	if err != nil {
		if errors.Is(err, errMissingGithubLogin) {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeDBError(w, err)
		return
	}

	writeJSON(w, map[string]any{"user": member}, http.StatusOK)
}

// UpdateMe overwrites the caller's own profile fields.
func (h *MembersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req memberUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	// bootstrap first so a profile edit before the first /me read still works
	if _, err := h.findOrCreateMember(r.Context(), ident); err != nil {
		if errors.Is(err, errMissingGithubLogin) {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeDBError(w, err)
		return
	}

	member, err := h.members.UpdateMemberByUserID(r.Context(), ident.UserID, repository.MemberUpdate{
		DisplayName:      req.DisplayName,
		DiscordUsername:  req.DiscordUsername,
		Bio:              req.Bio,
		Goals:            req.Goals,
		LinkedinURL:      req.LinkedinURL,
		PortfolioURL:     req.PortfolioURL,
		TwitterURL:       req.TwitterURL,
		ProjectDemoURL:   req.ProjectDemoURL,
		ProjectGithubURL: req.ProjectGithubURL,
	})
	if err != nil {
		writeDBError(w, err)
		return
	}
	if member == nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	writeJSON(w, map[string]any{"user": member}, http.StatusOK)
}
