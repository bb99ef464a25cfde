package sqlite_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dbfs "github.com/hackercoop/coop/db"
	"github.com/hackercoop/coop/internal/db"
	"github.com/hackercoop/coop/internal/repository/sqlite"
	"github.com/hackercoop/coop/pkg/models"
	"github.com/hackercoop/coop/pkg/repository"
)

func newTestRepo(t *testing.T) *sqlite.SQLiteRepo {
	t.Helper()
	ctx := context.Background()
	d, err := db.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqlite.New(d)
}

func sampleApplication() *models.Application {
	return &models.Application{
		Email:           "jane@example.com",
		Commitment:      "10 hours a week",
		Education:       "self taught",
		Employment:      "barista",
		CanUseGit:       true,
		Languages:       "Python for 8 months",
		Location:        "NYC",
		Timezone:        "America/New_York",
		ProjectProposal: "a recipe planner",
	}
}

func TestCreateAndGetApplication(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a := sampleApplication()
	id, err := repo.CreateApplication(ctx, a)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id <= 0 {
		t.Fatalf("bad id %d", id)
	}

	got, err := repo.GetApplicationByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("row not found")
	}
	if got.Email != a.Email || got.Status != models.StatusPending {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.Created == 0 || got.Updated != got.Created {
		t.Fatalf("timestamps not initialized: created=%d updated=%d", got.Created, got.Updated)
	}
	if !got.CanUseGit {
		t.Fatalf("can_use_git lost in round trip")
	}
}

func TestGetApplicationByID_Missing(t *testing.T) {
	repo := newTestRepo(t)
	got, err := repo.GetApplicationByID(context.Background(), 12345)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing row, got %+v", got)
	}
}

func TestGetApplicationByGrant(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a := sampleApplication()
	id, err := repo.CreateApplication(ctx, a)
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetApplicationByGrant(ctx, id, a.Email, a.Updated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatalf("exact triple did not match")
	}

	for name, tc := range map[string]struct {
		id      int64
		email   string
		updated int64
	}{
		"wrong id":      {id + 1, a.Email, a.Updated},
		"wrong email":   {id, "other@example.com", a.Updated},
		"stale updated": {id, a.Email, a.Updated - 1},
	} {
		got, err := repo.GetApplicationByGrant(ctx, tc.id, tc.email, tc.updated)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != nil {
			t.Fatalf("%s: expected nil, got %+v", name, got)
		}
	}
}

func TestUpdateApplicationByGrant(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a := sampleApplication()
	id, err := repo.CreateApplication(ctx, a)
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(2 * time.Millisecond)
	upd := repository.ApplicationUpdate{
		DiscordUsername:    "jane#1234",
		GithubUsername:     "janeo",
		HomeworkGithubURL:  "https://github.com/janeo/homework",
		HomeworkStagingURL: "https://homework-janeo.vercel.app",
		ProjectProposal:    "a better recipe planner",
	}
	got, err := repo.UpdateApplicationByGrant(ctx, id, a.Email, a.Updated, upd)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got == nil {
		t.Fatalf("update matched nothing")
	}
	if got.DiscordUsername != upd.DiscordUsername || got.GithubUsername != upd.GithubUsername {
		t.Fatalf("fields not updated: %+v", got)
	}
	if got.Updated <= a.Updated {
		t.Fatalf("updated timestamp did not advance: %d <= %d", got.Updated, a.Updated)
	}

	// the old triple is stale now
	stale, err := repo.UpdateApplicationByGrant(ctx, id, a.Email, a.Updated, upd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stale != nil {
		t.Fatalf("stale grant still matched: %+v", stale)
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a := sampleApplication()
	id, err := repo.CreateApplication(ctx, a)
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(2 * time.Millisecond)
	got, err := repo.UpdateApplicationStatus(ctx, id, models.StatusAccepted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got == nil || got.Status != models.StatusAccepted {
		t.Fatalf("status not applied: %+v", got)
	}
	if got.Updated <= a.Updated {
		t.Fatalf("status change must advance updated: %d <= %d", got.Updated, a.Updated)
	}
}

func TestUpdateApplicationStatus_Invalid(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.UpdateApplicationStatus(context.Background(), 1, "approved"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestUpdateApplicationStatus_Missing(t *testing.T) {
	repo := newTestRepo(t)
	got, err := repo.UpdateApplicationStatus(context.Background(), 999, models.StatusReviewing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing row")
	}
}

func TestListApplications(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	empty, err := repo.ListApplications(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty))
	}

	first := sampleApplication()
	if _, err := repo.CreateApplication(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := sampleApplication()
	second.Email = "sam@example.com"
	if _, err := repo.CreateApplication(ctx, second); err != nil {
		t.Fatal(err)
	}

	all, err := repo.ListApplications(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}
	if all[0].Email != "jane@example.com" || all[1].Email != "sam@example.com" {
		t.Fatalf("rows out of creation order: %v", all)
	}
}

func TestGetApplicationByGithubUsername(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a := sampleApplication()
	a.GithubUsername = "janeo"
	if _, err := repo.CreateApplication(ctx, a); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetApplicationByGithubUsername(ctx, "janeo")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.GithubUsername != "janeo" {
		t.Fatalf("lookup failed: %+v", got)
	}

	missing, err := repo.GetApplicationByGithubUsername(ctx, "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown username")
	}
}

func TestCreateAndGetMember(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	appID := int64(7)
	m := &models.Member{
		UserID:          "github:1001",
		Email:           "jane@example.com",
		DisplayName:     "Jane",
		GithubUsername:  "janeo",
		DiscordUsername: "jane#1234",
		ApplicationID:   &appID,
	}
	id, err := repo.CreateMember(ctx, m)
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if id <= 0 {
		t.Fatalf("bad id %d", id)
	}

	got, err := repo.GetMemberByUserID(ctx, "github:1001")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatalf("member not found")
	}
	if got.GithubUsername != "janeo" || got.ApplicationID == nil || *got.ApplicationID != 7 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.CohortID != nil {
		t.Fatalf("expected nil cohort_id, got %v", *got.CohortID)
	}
}

func TestCreateMember_DuplicateUserID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.CreateMember(ctx, &models.Member{UserID: "github:1001"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateMember(ctx, &models.Member{UserID: "github:1001"}); err == nil {
		t.Fatalf("expected unique constraint error on duplicate user_id")
	}
}

func TestUpdateMemberByUserID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	m := &models.Member{UserID: "github:1001", GithubUsername: "janeo"}
	if _, err := repo.CreateMember(ctx, m); err != nil {
		t.Fatal(err)
	}

	time.Sleep(2 * time.Millisecond)
	got, err := repo.UpdateMemberByUserID(ctx, "github:1001", repository.MemberUpdate{
		DisplayName: "Jane O.",
		Bio:         "hello",
		Goals:       "ship things",
	})
	if err != nil {
		t.Fatalf("update member: %v", err)
	}
	if got == nil || got.DisplayName != "Jane O." || got.Bio != "hello" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Updated <= m.Updated {
		t.Fatalf("updated did not advance")
	}

	missing, err := repo.UpdateMemberByUserID(ctx, "github:9999", repository.MemberUpdate{})
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown user")
	}
}

func TestListMembersAndGetByGithubUsername(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, m := range []*models.Member{
		{UserID: "github:1", GithubUsername: "alpha"},
		{UserID: "github:2", GithubUsername: "beta"},
	} {
		if _, err := repo.CreateMember(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.ListMembers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 members, got %d", len(all))
	}
	var names []string
	for _, m := range all {
		names = append(names, m.GithubUsername)
	}
	if strings.Join(names, ",") != "alpha,beta" {
		t.Fatalf("unexpected order: %v", names)
	}

	got, err := repo.GetMemberByGithubUsername(ctx, "beta")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.UserID != "github:2" {
		t.Fatalf("lookup failed: %+v", got)
	}
}
