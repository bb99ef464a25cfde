package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hackercoop/coop/internal/notify"
	"github.com/hackercoop/coop/internal/token"
	"github.com/hackercoop/coop/internal/validate"
	"github.com/hackercoop/coop/pkg/models"
	"github.com/hackercoop/coop/pkg/repository"
)

type ApplicationsHandler struct {
	repo     repository.ApplicationRepo
	notifier *notify.Discord
}

func NewApplicationsHandler(repo repository.ApplicationRepo, notifier *notify.Discord) *ApplicationsHandler {
	return &ApplicationsHandler{repo: repo, notifier: notifier}
}

type createApplicationRequest struct {
	Email              string `json:"email"`
	Commitment         string `json:"commitment"`
	Education          string `json:"education"`
	Employment         string `json:"employment"`
	CanUseGit          bool   `json:"can_use_git"`
	Languages          string `json:"languages"`
	Location           string `json:"location"`
	Timezone           string `json:"timezone"`
	ProjectProposal    string `json:"project_proposal"`
	DiscordUsername    string `json:"discord_username"`
	GithubUsername     string `json:"github_username"`
	HomeworkGithubURL  string `json:"homework_github_url"`
	HomeworkStagingURL string `json:"homework_staging_url"`
}

type updateApplicationRequest struct {
	DiscordUsername    string `json:"discord_username"`
	GithubUsername     string `json:"github_username"`
	HomeworkGithubURL  string `json:"homework_github_url"`
	HomeworkStagingURL string `json:"homework_staging_url"`
	ProjectProposal    string `json:"project_proposal"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// applicationResponse pairs a row with the access token that authorizes the
// applicant's next read or update of it.
type applicationResponse struct {
	*models.Application
	Token string `json:"token"`
}

func newApplicationResponse(a *models.Application) applicationResponse {
	return applicationResponse{Application: a, Token: token.Encode(a)}
}

// Create handles the public intake form submission.
func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	violation, err := validate.CheckIntake(r.Context(), body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if violation != nil {
		writeFieldError(w, violation.Field, violation.Message)
		return
	}

	var req createApplicationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if !validate.Email(req.Email) {
		writeFieldError(w, "email", "A valid email is required.")
		return
	}
	required := []struct{ field, value string }{
		{"commitment", req.Commitment},
		{"education", req.Education},
		{"employment", req.Employment},
		{"languages", req.Languages},
		{"location", req.Location},
		{"project_proposal", req.ProjectProposal},
	}
	for _, f := range required {
		if !validate.NonEmpty(f.value) {
			writeFieldError(w, f.field, fmt.Sprintf("%s is required.", f.field))
			return
		}
	}
	if field, msg, ok := checkHomeworkURLs(req.HomeworkGithubURL, req.HomeworkStagingURL); !ok {
		writeFieldError(w, field, msg)
		return
	}

	app := &models.Application{
		Email:              req.Email,
		Commitment:         req.Commitment,
		Education:          req.Education,
		Employment:         req.Employment,
		CanUseGit:          req.CanUseGit,
		Languages:          req.Languages,
		Location:           req.Location,
		Timezone:           req.Timezone,
		ProjectProposal:    req.ProjectProposal,
		DiscordUsername:    req.DiscordUsername,
		GithubUsername:     req.GithubUsername,
		HomeworkGithubURL:  req.HomeworkGithubURL,
		HomeworkStagingURL: req.HomeworkStagingURL,
	}

	id, err := h.repo.CreateApplication(r.Context(), app)
	if err != nil {
		writeDBError(w, err)
		return
	}
	app.ID = id

	// best-effort announcement; a broken webhook never fails the intake
	h.notifier.Announce(r.Context(), fmt.Sprintf("New application from %s", app.Email))

	writeJSON(w, map[string]any{"application": newApplicationResponse(app)}, http.StatusOK)
}

// Get serves an applicant their own submission, authorized by access token.
// Invalid and stale tokens both come back 401 so the endpoint does not leak
// whether a record exists.
func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	grant := token.Decode(mux.Vars(r)["token"])
	if grant == nil {
		writeError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	app, err := h.repo.GetApplicationByGrant(r.Context(), grant.ID, grant.Email, grant.Updated)
	if err != nil {
		writeDBError(w, err)
		return
	}
	if app == nil {
		writeError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	writeJSON(w, map[string]any{"application": newApplicationResponse(app)}, http.StatusOK)
}

// Update overwrites the applicant-mutable fields. Email and status never
// change here; the bumped updated timestamp rotates the token, and the fresh
// token rides back on the response.
func (h *ApplicationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	grant := token.Decode(mux.Vars(r)["token"])
	if grant == nil {
		writeError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	var req updateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if !validate.NonEmpty(req.ProjectProposal) {
		writeFieldError(w, "project_proposal", "project_proposal is required.")
		return
	}
	if field, msg, ok := checkHomeworkURLs(req.HomeworkGithubURL, req.HomeworkStagingURL); !ok {
		writeFieldError(w, field, msg)
		return
	}

	app, err := h.repo.UpdateApplicationByGrant(r.Context(), grant.ID, grant.Email, grant.Updated, repository.ApplicationUpdate{
		DiscordUsername:    req.DiscordUsername,
		GithubUsername:     req.GithubUsername,
		HomeworkGithubURL:  req.HomeworkGithubURL,
		HomeworkStagingURL: req.HomeworkStagingURL,
		ProjectProposal:    req.ProjectProposal,
	})
	if err != nil {
		writeDBError(w, err)
		return
	}
	if app == nil {
		writeError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	writeJSON(w, map[string]any{"application": newApplicationResponse(app)}, http.StatusOK)
}

// List returns every application for the admin review queue, each with its
// current access token.
func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.repo.ListApplications(r.Context())
	if err != nil {
		writeDBError(w, err)
		return
	}

	out := make([]applicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, newApplicationResponse(&apps[i]))
	}

	writeJSON(w, map[string]any{"applications": out}, http.StatusOK)
}

// UpdateStatus transitions an application's review state. The updated
// timestamp is bumped too, so every previously issued token stops working.
func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !models.ValidStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "A valid status is required.")
		return
	}

	app, err := h.repo.UpdateApplicationStatus(r.Context(), id, req.Status)
	if err != nil {
		writeDBError(w, err)
		return
	}
	if app == nil {
		writeError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	writeJSON(w, map[string]any{"application": newApplicationResponse(app)}, http.StatusOK)
}

func checkHomeworkURLs(githubURL, stagingURL string) (field, msg string, ok bool) {
	if githubURL != "" && !validate.GithubURL(githubURL) {
		return "homework_github_url", "homework_github_url must be a GitHub URL.", false
	}
	if stagingURL != "" && !validate.VercelURL(stagingURL) {
		return "homework_staging_url", "homework_staging_url must be a vercel.app URL.", false
	}

	return "", "", true
}
