package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hackercoop/coop/pkg/models"
	"github.com/hackercoop/coop/pkg/repository"
)

const memberColumns = `id, user_id, email, display_name, github_username, discord_username, bio, goals, linkedin_url, portfolio_url, twitter_url, project_demo_url, project_github_url, application_id, cohort_id, created, updated`

func (r *SQLiteRepo) CreateMember(ctx context.Context, m *models.Member) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("member is nil")
	}
	if m.UserID == "" {
		return 0, fmt.Errorf("member user_id is empty")
	}

	ts := now()
	m.Created = ts
	m.Updated = ts

	res, err := r.conn.Exec(ctx,
		`INSERT INTO members (user_id, email, display_name, github_username, discord_username, bio, goals, linkedin_url, portfolio_url, twitter_url, project_demo_url, project_github_url, application_id, cohort_id, created, updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, m.Email, m.DisplayName, m.GithubUsername, m.DiscordUsername, m.Bio, m.Goals, m.LinkedinURL, m.PortfolioURL, m.TwitterURL, m.ProjectDemoURL, m.ProjectGithubURL, m.ApplicationID, m.CohortID, m.Created, m.Updated)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetMemberByUserID(ctx context.Context, userID string) (*models.Member, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE user_id = ?`, userID)

	return scanMember(row)
}

func (r *SQLiteRepo) GetMemberByGithubUsername(ctx context.Context, username string) (*models.Member, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE github_username = ?`, username)

	return scanMember(row)
}

func (r *SQLiteRepo) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+memberColumns+` FROM members ORDER BY created`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Member
	for rows.Next() {
		m, err := scanMemberRow(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *m)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateMemberByUserID(ctx context.Context, userID string, upd repository.MemberUpdate) (*models.Member, error) {
	res, err := r.conn.Exec(ctx,
		`UPDATE members SET display_name = ?, discord_username = ?, bio = ?, goals = ?, linkedin_url = ?, portfolio_url = ?, twitter_url = ?, project_demo_url = ?, project_github_url = ?, updated = ?
		 WHERE user_id = ?`,
		upd.DisplayName, upd.DiscordUsername, upd.Bio, upd.Goals, upd.LinkedinURL, upd.PortfolioURL, upd.TwitterURL, upd.ProjectDemoURL, upd.ProjectGithubURL, now(), userID)
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

	return r.GetMemberByUserID(ctx, userID)
}

func scanMember(row *sql.Row) (*models.Member, error) {
	m, err := scanMemberRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return m, err
}

func scanMemberRow(s scanner) (*models.Member, error) {
	var m models.Member
	var email, display, github, discord, bio, goals, linkedin, portfolio, twitter, demo, projGithub sql.NullString
	var appID, cohortID sql.NullInt64
	if err := s.Scan(&m.ID, &m.UserID, &email, &display, &github, &discord, &bio, &goals, &linkedin, &portfolio, &twitter, &demo, &projGithub, &appID, &cohortID, &m.Created, &m.Updated); err != nil {
		return nil, err
	}

	m.Email = email.String
	m.DisplayName = display.String
	m.GithubUsername = github.String
	m.DiscordUsername = discord.String
	m.Bio = bio.String
	m.Goals = goals.String
	m.LinkedinURL = linkedin.String
	m.PortfolioURL = portfolio.String
	m.TwitterURL = twitter.String
	m.ProjectDemoURL = demo.String
	m.ProjectGithubURL = projGithub.String
	if appID.Valid {
		m.ApplicationID = &appID.Int64
	}
	if cohortID.Valid {
		m.CohortID = &cohortID.Int64
	}

	return &m, nil
}
