package repository

import (
	"context"

	"github.com/hackercoop/coop/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// ApplicationUpdate holds the fields an applicant may overwrite on their own
// submission. Email and status are deliberately absent.
type ApplicationUpdate struct {
	DiscordUsername    string
	GithubUsername     string
	HomeworkGithubURL  string
	HomeworkStagingURL string
	ProjectProposal    string
}

// MemberUpdate holds the profile fields a member may change about themself.
type MemberUpdate struct {
	DisplayName      string
	DiscordUsername  string
	Bio              string
	Goals            string
	LinkedinURL      string
	PortfolioURL     string
	TwitterURL       string
	ProjectDemoURL   string
	ProjectGithubURL string
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) (int64, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	// GetApplicationByGrant fetches the row only if (id, email, updated) all
	// match the current values; a stale triple yields (nil, nil).
	GetApplicationByGrant(ctx context.Context, id int64, email string, updated int64) (*models.Application, error)
	GetApplicationByGithubUsername(ctx context.Context, username string) (*models.Application, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
	// UpdateApplicationByGrant overwrites the mutable fields and bumps the
	// updated timestamp, guarded by the same triple match. Returns (nil, nil)
	// when the triple no longer matches any row.
	UpdateApplicationByGrant(ctx context.Context, id int64, email string, updated int64, upd ApplicationUpdate) (*models.Application, error)
	// UpdateApplicationStatus sets the review status and bumps the updated
	// timestamp, rotating any previously issued access tokens.
	UpdateApplicationStatus(ctx context.Context, id int64, status string) (*models.Application, error)
}

type MemberRepo interface {
	CreateMember(ctx context.Context, m *models.Member) (int64, error)
	GetMemberByUserID(ctx context.Context, userID string) (*models.Member, error)
	GetMemberByGithubUsername(ctx context.Context, username string) (*models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	UpdateMemberByUserID(ctx context.Context, userID string, upd MemberUpdate) (*models.Member, error)
}
