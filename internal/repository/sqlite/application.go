package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hackercoop/coop/pkg/models"
	"github.com/hackercoop/coop/pkg/repository"
)

const applicationColumns = `id, email, commitment, education, employment, can_use_git, languages, location, timezone, project_proposal, discord_username, github_username, homework_github_url, homework_staging_url, status, created, updated`

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}

	ts := now()
	a.Created = ts
	a.Updated = ts
	if a.Status == "" {
		a.Status = models.StatusPending
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO applications (email, commitment, education, employment, can_use_git, languages, location, timezone, project_proposal, discord_username, github_username, homework_github_url, homework_staging_url, status, created, updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Email, a.Commitment, a.Education, a.Employment, a.CanUseGit, a.Languages, a.Location, a.Timezone, a.ProjectProposal, a.DiscordUsername, a.GithubUsername, a.HomeworkGithubURL, a.HomeworkStagingURL, a.Status, a.Created, a.Updated)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)

	return scanApplication(row)
}

func (r *SQLiteRepo) GetApplicationByGrant(ctx context.Context, id int64, email string, updated int64) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ? AND email = ? AND updated = ?`, id, email, updated)

	return scanApplication(row)
}

func (r *SQLiteRepo) GetApplicationByGithubUsername(ctx context.Context, username string) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE github_username = ? ORDER BY created LIMIT 1`, username)

	return scanApplication(row)
}

func (r *SQLiteRepo) ListApplications(ctx context.Context) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY created`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		a, err := scanApplicationRow(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *a)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateApplicationByGrant(ctx context.Context, id int64, email string, updated int64, upd repository.ApplicationUpdate) (*models.Application, error) {
	res, err := r.conn.Exec(ctx,
		`UPDATE applications SET discord_username = ?, github_username = ?, homework_github_url = ?, homework_staging_url = ?, project_proposal = ?, updated = ?
		 WHERE id = ? AND email = ? AND updated = ?`,
		upd.DiscordUsername, upd.GithubUsername, upd.HomeworkGithubURL, upd.HomeworkStagingURL, upd.ProjectProposal, now(), id, email, updated)
	if err != nil {
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// stale or forged grant
		return nil, nil
	}

	return r.GetApplicationByID(ctx, id)
}

func (r *SQLiteRepo) UpdateApplicationStatus(ctx context.Context, id int64, status string) (*models.Application, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	// Bumping updated here rotates every previously issued access token for
	// the row, not just on applicant-driven edits.
	res, err := r.conn.Exec(ctx, `UPDATE applications SET status = ?, updated = ? WHERE id = ?`, status, now(), id)
	if err != nil {
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	return r.GetApplicationByID(ctx, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row *sql.Row) (*models.Application, error) {
	a, err := scanApplicationRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return a, err
}

func scanApplicationRow(s scanner) (*models.Application, error) {
	var a models.Application
	var commitment, education, employment, languages, location, timezone, proposal, discord, github, hwGithub, hwStaging sql.NullString
	if err := s.Scan(&a.ID, &a.Email, &commitment, &education, &employment, &a.CanUseGit, &languages, &location, &timezone, &proposal, &discord, &github, &hwGithub, &hwStaging, &a.Status, &a.Created, &a.Updated); err != nil {
		return nil, err
	}

	a.Commitment = commitment.String
	a.Education = education.String
	a.Employment = employment.String
	a.Languages = languages.String
	a.Location = location.String
	a.Timezone = timezone.String
	a.ProjectProposal = proposal.String
	a.DiscordUsername = discord.String
	a.GithubUsername = github.String
	a.HomeworkGithubURL = hwGithub.String
	a.HomeworkStagingURL = hwStaging.String

	return &a, nil
}
