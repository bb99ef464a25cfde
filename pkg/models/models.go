package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Application review states. A missing status means pending.
const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
)

// ValidStatus reports whether s is one of the recognized review states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewing, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// Application is one intake submission. Mutated by the applicant (scoped by
// access token) or by an admin (status only); never deleted in normal flow.
type Application struct {
	ID                 int64  `json:"id" db:"id"`
	Email              string `json:"email" db:"email"`
	Commitment         string `json:"commitment,omitempty" db:"commitment"`
	Education          string `json:"education,omitempty" db:"education"`
	Employment         string `json:"employment,omitempty" db:"employment"`
	CanUseGit          bool   `json:"can_use_git" db:"can_use_git"`
	Languages          string `json:"languages,omitempty" db:"languages"`
	Location           string `json:"location,omitempty" db:"location"`
	Timezone           string `json:"timezone,omitempty" db:"timezone"`
	ProjectProposal    string `json:"project_proposal,omitempty" db:"project_proposal"`
	DiscordUsername    string `json:"discord_username,omitempty" db:"discord_username"`
	GithubUsername     string `json:"github_username,omitempty" db:"github_username"`
	HomeworkGithubURL  string `json:"homework_github_url,omitempty" db:"homework_github_url"`
	HomeworkStagingURL string `json:"homework_staging_url,omitempty" db:"homework_staging_url"`
	Status             string `json:"status" db:"status"`
	Created            int64  `json:"created" db:"created"`
	Updated            int64  `json:"updated" db:"updated"`
}

// Member is a person who has authenticated at least once. UserID is the
// external identity id; unique and immutable once created.
type Member struct {
	ID               int64  `json:"id" db:"id"`
	UserID           string `json:"user_id" db:"user_id"`
	Email            string `json:"email,omitempty" db:"email"`
	DisplayName      string `json:"display_name,omitempty" db:"display_name"`
	GithubUsername   string `json:"github_username,omitempty" db:"github_username"`
	DiscordUsername  string `json:"discord_username,omitempty" db:"discord_username"`
	Bio              string `json:"bio,omitempty" db:"bio"`
	Goals            string `json:"goals,omitempty" db:"goals"`
	LinkedinURL      string `json:"linkedin_url,omitempty" db:"linkedin_url"`
	PortfolioURL     string `json:"portfolio_url,omitempty" db:"portfolio_url"`
	TwitterURL       string `json:"twitter_url,omitempty" db:"twitter_url"`
	ProjectDemoURL   string `json:"project_demo_url,omitempty" db:"project_demo_url"`
	ProjectGithubURL string `json:"project_github_url,omitempty" db:"project_github_url"`
	ApplicationID    *int64 `json:"application_id,omitempty" db:"application_id"`
	CohortID         *int64 `json:"cohort_id,omitempty" db:"cohort_id"`
	Created          int64  `json:"created" db:"created"`
	Updated          int64  `json:"updated" db:"updated"`
}

// Cohort groups members with a lifecycle status. Present for schema parity;
// no handler manipulates cohorts.
type Cohort struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Status   string `json:"status,omitempty" db:"status"`
	Started  *int64 `json:"started,omitempty" db:"started"`
	Finished *int64 `json:"finished,omitempty" db:"finished"`
	Created  int64  `json:"created" db:"created"`
	Updated  int64  `json:"updated" db:"updated"`
}
