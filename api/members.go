package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"log/slog"

	"github.com/gorilla/mux"
	"github.com/hackercoop/coop/internal/identity"
	"github.com/hackercoop/coop/pkg/models"
	"github.com/hackercoop/coop/pkg/repository"
)

// errMissingGithubLogin marks an authenticated identity without a GitHub
// username. The auth provider is GitHub-based, so this is a configuration
// fault for that user, not a normal not-found.
var errMissingGithubLogin = errors.New("identity is missing a github username")

type MembersHandler struct {
	members      repository.MemberRepo
	applications repository.ApplicationRepo
}

func NewMembersHandler(members repository.MemberRepo, applications repository.ApplicationRepo) *MembersHandler {
	return &MembersHandler{members: members, applications: applications}
}

func (h *MembersHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.ListMembers(r.Context())
	if err != nil {
		writeDBError(w, err)
		return
	}
	if members == nil {
		members = []models.Member{}
	}

	writeJSON(w, map[string]any{"members": members}, http.StatusOK)
}

func (h *MembersHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	member, err := h.members.GetMemberByGithubUsername(r.Context(), username)
	if err != nil {
		writeDBError(w, err)
		return
	}

	writeJSON(w, map[string]any{"member": member}, http.StatusOK)
}

// findOrCreateMember resolves the caller's member row, provisioning one on
// first authenticated access. The originating application (matched by GitHub
// username) seeds discord_username and application_id. The find-then-create
// sequence is not guarded against a concurrent first login; the UNIQUE
// constraint on members.user_id backstops the race.
func (h *MembersHandler) findOrCreateMember(ctx context.Context, ident *identity.Identity) (*models.Member, error) {
	member, err := h.members.GetMemberByUserID(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return member, nil
	}

	if ident.Login == "" {
		return nil, fmt.Errorf("user %s: %w", ident.UserID, errMissingGithubLogin)
	}

	app, err := h.applications.GetApplicationByGithubUsername(ctx, ident.Login)
	if err != nil {
		// linking a prior application is best-effort
		logger.Warn("application lookup failed", slog.String("login", ident.Login), slog.Any("err", err))
		app = nil
	}

	member = &models.Member{
		UserID:         ident.UserID,
		Email:          ident.Email,
		DisplayName:    ident.Name,
		GithubUsername: ident.Login,
	}
	if app != nil {
		member.DiscordUsername = app.DiscordUsername
		member.ApplicationID = &app.ID
	}

	if _, err := h.members.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}
