package mock

import (
	"context"
	"time"

	"github.com/hackercoop/coop/pkg/models"
	"github.com/hackercoop/coop/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	AppRepo    *ApplicationRepo
	MemberRepo *MemberRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		AppRepo:    &ApplicationRepo{},
		MemberRepo: &MemberRepo{},
	}
}

// ApplicationRepo is an in-memory repository.ApplicationRepo with injectable
// failures. It reproduces the triple-match and token-rotation semantics of
// the sqlite implementation.
type ApplicationRepo struct {
	Apps      []*models.Application
	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	NowFn     func() int64
}

var _ repository.ApplicationRepo = (*ApplicationRepo)(nil)

func (m *ApplicationRepo) now() int64 {
	if m.NowFn != nil {
		return m.NowFn()
	}
	return time.Now().UTC().UnixMilli()
}

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}

	ts := m.now()
	cp := *a
	cp.ID = int64(len(m.Apps) + 1)
	cp.Created = ts
	cp.Updated = ts
	if cp.Status == "" {
		cp.Status = models.StatusPending
	}
	m.Apps = append(m.Apps, &cp)

	a.ID = cp.ID
	a.Created = ts
	a.Updated = ts
	a.Status = cp.Status
	return cp.ID, nil
}

func (m *ApplicationRepo) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, a := range m.Apps {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *ApplicationRepo) GetApplicationByGrant(ctx context.Context, id int64, email string, updated int64) (*models.Application, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, a := range m.Apps {
		if a.ID == id && a.Email == email && a.Updated == updated {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *ApplicationRepo) GetApplicationByGithubUsername(ctx context.Context, username string) (*models.Application, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, a := range m.Apps {
		if a.GithubUsername == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *ApplicationRepo) ListApplications(ctx context.Context) ([]models.Application, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Application, 0, len(m.Apps))
	for _, a := range m.Apps {
		out = append(out, *a)
	}
	return out, nil
}

func (m *ApplicationRepo) UpdateApplicationByGrant(ctx context.Context, id int64, email string, updated int64, upd repository.ApplicationUpdate) (*models.Application, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for _, a := range m.Apps {
		if a.ID == id && a.Email == email && a.Updated == updated {
			a.DiscordUsername = upd.DiscordUsername
			a.GithubUsername = upd.GithubUsername
			a.HomeworkGithubURL = upd.HomeworkGithubURL
			a.HomeworkStagingURL = upd.HomeworkStagingURL
			a.ProjectProposal = upd.ProjectProposal
			a.Updated = bump(a.Updated, m.now())
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *ApplicationRepo) UpdateApplicationStatus(ctx context.Context, id int64, status string) (*models.Application, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for _, a := range m.Apps {
		if a.ID == id {
			a.Status = status
			a.Updated = bump(a.Updated, m.now())
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// bump guarantees a strictly newer updated timestamp even when the clock has
// not advanced a full millisecond since the last write.
func bump(prev, next int64) int64 {
	if next <= prev {
		return prev + 1
	}
	return next
}

// MemberRepo is an in-memory repository.MemberRepo with injectable failures.
type MemberRepo struct {
	Members   []*models.Member
	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
}

var _ repository.MemberRepo = (*MemberRepo)(nil)

func (m *MemberRepo) CreateMember(ctx context.Context, mem *models.Member) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}

	ts := time.Now().UTC().UnixMilli()
	cp := *mem
	cp.ID = int64(len(m.Members) + 1)
	cp.Created = ts
	cp.Updated = ts
	m.Members = append(m.Members, &cp)

	mem.ID = cp.ID
	mem.Created = ts
	mem.Updated = ts
	return cp.ID, nil
}

func (m *MemberRepo) GetMemberByUserID(ctx context.Context, userID string) (*models.Member, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, mem := range m.Members {
		if mem.UserID == userID {
			cp := *mem
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemberRepo) GetMemberByGithubUsername(ctx context.Context, username string) (*models.Member, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, mem := range m.Members {
		if mem.GithubUsername == username {
			cp := *mem
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemberRepo) ListMembers(ctx context.Context) ([]models.Member, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Member, 0, len(m.Members))
	for _, mem := range m.Members {
		out = append(out, *mem)
	}
	return out, nil
}

func (m *MemberRepo) UpdateMemberByUserID(ctx context.Context, userID string, upd repository.MemberUpdate) (*models.Member, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for _, mem := range m.Members {
		if mem.UserID == userID {
			mem.DisplayName = upd.DisplayName
			mem.DiscordUsername = upd.DiscordUsername
			mem.Bio = upd.Bio
			mem.Goals = upd.Goals
			mem.LinkedinURL = upd.LinkedinURL
			mem.PortfolioURL = upd.PortfolioURL
			mem.TwitterURL = upd.TwitterURL
			mem.ProjectDemoURL = upd.ProjectDemoURL
			mem.ProjectGithubURL = upd.ProjectGithubURL
			mem.Updated = bump(mem.Updated, time.Now().UTC().UnixMilli())
			cp := *mem
			return &cp, nil
		}
	}
	return nil, nil
}
