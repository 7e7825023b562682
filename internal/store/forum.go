// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL persistence layer. Each store wraps
// a *sql.DB (pgx stdlib driver) and implements the matching interface from
// internal/forum. Find methods return (nil, nil) when the row is absent.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"lexforum/internal/models"
)

// ForumStore manages forums in the database.
type ForumStore struct {
	db *sql.DB
}

// NewForumStore returns a new ForumStore.
func NewForumStore(db *sql.DB) *ForumStore {
	return &ForumStore{db: db}
}

const forumColumns = `id, name, description, type, organization_id, created_by_user_id, settings, created_at, updated_at`

// scanForum scans a row into a Forum struct, decoding the settings JSONB.
func scanForum(scanner interface{ Scan(...any) error }) (*models.Forum, error) {
	var f models.Forum
	var settings []byte
	err := scanner.Scan(
		&f.ID, &f.Name, &f.Description, &f.Type, &f.OrganizationID,
		&f.CreatedByUserID, &settings, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Settings = map[string]any{}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &f.Settings); err != nil {
			return nil, fmt.Errorf("decode forum settings: %w", err)
		}
	}
	return &f, nil
}

// Create inserts a new forum and returns it.
func (s *ForumStore) Create(ctx context.Context, f *models.Forum) (*models.Forum, error) {
	settings, err := json.Marshal(f.Settings)
	if err != nil {
		return nil, fmt.Errorf("encode forum settings: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO forums (name, description, type, organization_id, created_by_user_id, settings)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+forumColumns,
		f.Name, f.Description, f.Type, f.OrganizationID, f.CreatedByUserID, settings,
	)
	created, err := scanForum(row)
	if err != nil {
		return nil, fmt.Errorf("create forum: %w", err)
	}
	return created, nil
}

// FindByID retrieves a forum by ID with its creator summary. Returns nil if
// not found.
func (s *ForumStore) FindByID(ctx context.Context, id int64) (*models.Forum, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT f.id, f.name, f.description, f.type, f.organization_id,
		       f.created_by_user_id, f.settings, f.created_at, f.updated_at,
		       u.id, u.first_name, u.last_name, u.email
		FROM forums f
		LEFT JOIN users u ON u.id = f.created_by_user_id
		WHERE f.id = $1`, id)

	var f models.Forum
	var settings []byte
	var creator nullUser
	err := row.Scan(
		&f.ID, &f.Name, &f.Description, &f.Type, &f.OrganizationID,
		&f.CreatedByUserID, &settings, &f.CreatedAt, &f.UpdatedAt,
		&creator.id, &creator.firstName, &creator.lastName, &creator.email,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find forum by id: %w", err)
	}
	f.Settings = map[string]any{}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &f.Settings); err != nil {
			return nil, fmt.Errorf("decode forum settings: %w", err)
		}
	}
	f.Creator = creator.summary()
	return &f, nil
}

// List returns all forums, oldest first. Visibility filtering is the
// service's job; forum counts stay small enough for a full read.
func (s *ForumStore) List(ctx context.Context) ([]models.Forum, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+forumColumns+` FROM forums ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list forums: %w", err)
	}
	defer rows.Close()

	var items []models.Forum
	for rows.Next() {
		f, err := scanForum(rows)
		if err != nil {
			return nil, fmt.Errorf("scan forum: %w", err)
		}
		items = append(items, *f)
	}
	return items, rows.Err()
}

// Update applies a field-level patch so concurrent updates to distinct
// fields never overwrite each other. Returns nil if the forum is gone.
func (s *ForumStore) Update(ctx context.Context, id int64, patch models.ForumPatch) (*models.Forum, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Settings != nil {
		settings, err := json.Marshal(patch.Settings)
		if err != nil {
			return nil, fmt.Errorf("encode forum settings: %w", err)
		}
		add("settings", settings)
	}
	if len(sets) == 0 {
		return s.FindByID(ctx, id)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE forums SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(sets, ", "), len(args), forumColumns),
		args...,
	)
	updated, err := scanForum(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update forum: %w", err)
	}
	return updated, nil
}

// Delete removes a forum. Categories, threads, posts, and reactions go with
// it through ON DELETE CASCADE.
func (s *ForumStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM forums WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete forum: %w", err)
	}
	return nil
}

// Stats returns category and thread counts for one forum.
func (s *ForumStore) Stats(ctx context.Context, id int64) (*models.ForumStats, error) {
	stats := &models.ForumStats{ForumID: id}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM forum_categories WHERE forum_id = $1),
			(SELECT COUNT(*) FROM forum_threads WHERE forum_id = $1)`,
		id,
	).Scan(&stats.CategoryCount, &stats.ThreadCount)
	if err != nil {
		return nil, fmt.Errorf("forum stats: %w", err)
	}
	return stats, nil
}

// nullUser collects a LEFT JOINed users row. Absent rows (the identity
// system forgot the user, or the id never had a projection) degrade to a
// nil summary.
type nullUser struct {
	id        sql.NullInt64
	firstName sql.NullString
	lastName  sql.NullString
	email     sql.NullString
}

func (u nullUser) summary() *models.UserSummary {
	if !u.id.Valid {
		return nil
	}
	return &models.UserSummary{
		ID:        u.id.Int64,
		FirstName: u.firstName.String,
		LastName:  u.lastName.String,
		Email:     u.email.String,
	}
}
