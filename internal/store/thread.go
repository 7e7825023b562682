// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"lexforum/internal/models"
)

// ThreadStore manages forum threads in the database.
type ThreadStore struct {
	db *sql.DB
}

// NewThreadStore returns a new ThreadStore.
func NewThreadStore(db *sql.DB) *ThreadStore {
	return &ThreadStore{db: db}
}

const threadColumns = `id, forum_id, category_id, user_id, title, content, is_pinned, is_closed, view_count, created_at, updated_at`

// scanThread scans a bare thread row.
func scanThread(scanner interface{ Scan(...any) error }) (*models.Thread, error) {
	var t models.Thread
	err := scanner.Scan(
		&t.ID, &t.ForumID, &t.CategoryID, &t.UserID, &t.Title, &t.Content,
		&t.IsPinned, &t.IsClosed, &t.ViewCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new thread and returns it. The id is assigned by the
// caller (time-sortable UUIDv7).
func (s *ThreadStore) Create(ctx context.Context, t *models.Thread) (*models.Thread, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO forum_threads (id, forum_id, category_id, user_id, title, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+threadColumns,
		t.ID, t.ForumID, t.CategoryID, t.UserID, t.Title, t.Content,
	)
	created, err := scanThread(row)
	if err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	return created, nil
}

// FindByID retrieves a thread with its author, category, and forum display
// summaries joined in. Returns nil if not found.
func (s *ThreadStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Thread, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.forum_id, t.category_id, t.user_id, t.title, t.content,
		       t.is_pinned, t.is_closed, t.view_count, t.created_at, t.updated_at,
		       u.id, u.first_name, u.last_name, u.email,
		       c.id, c.forum_id, c.name, c.description, c.display_order, c.created_at, c.updated_at,
		       f.id, f.name, f.description, f.type, f.organization_id,
		       f.created_by_user_id, f.settings, f.created_at, f.updated_at
		FROM forum_threads t
		LEFT JOIN users u ON u.id = t.user_id
		LEFT JOIN forum_categories c ON c.id = t.category_id
		JOIN forums f ON f.id = t.forum_id
		WHERE t.id = $1`, id)

	var t models.Thread
	var author nullUser
	var cat struct {
		id           sql.NullInt64
		forumID      sql.NullInt64
		name         sql.NullString
		description  sql.NullString
		displayOrder sql.NullInt64
		createdAt    sql.NullTime
		updatedAt    sql.NullTime
	}
	var f models.Forum
	var settings []byte
	err := row.Scan(
		&t.ID, &t.ForumID, &t.CategoryID, &t.UserID, &t.Title, &t.Content,
		&t.IsPinned, &t.IsClosed, &t.ViewCount, &t.CreatedAt, &t.UpdatedAt,
		&author.id, &author.firstName, &author.lastName, &author.email,
		&cat.id, &cat.forumID, &cat.name, &cat.description, &cat.displayOrder, &cat.createdAt, &cat.updatedAt,
		&f.ID, &f.Name, &f.Description, &f.Type, &f.OrganizationID,
		&f.CreatedByUserID, &settings, &f.CreatedAt, &f.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find thread by id: %w", err)
	}

	t.User = author.summary()
	if cat.id.Valid {
		var desc *string
		if cat.description.Valid {
			d := cat.description.String
			desc = &d
		}
		t.Category = &models.Category{
			ID:           cat.id.Int64,
			ForumID:      cat.forumID.Int64,
			Name:         cat.name.String,
			Description:  desc,
			DisplayOrder: int(cat.displayOrder.Int64),
			CreatedAt:    cat.createdAt.Time,
			UpdatedAt:    cat.updatedAt.Time,
		}
	}
	f.Settings = map[string]any{}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &f.Settings); err != nil {
			return nil, fmt.Errorf("decode forum settings: %w", err)
		}
	}
	t.Forum = &f
	return &t, nil
}

// likeEscaper neutralizes LIKE metacharacters in search input so terms
// like "100%" match literally instead of acting as wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ListByForum returns one page of threads plus the total count for the same
// filter. Pinned threads sort first, then most recently created. Search
// matches the title case-insensitively as a substring.
func (s *ThreadStore) ListByForum(ctx context.Context, forumID int64, f models.ThreadFilters) ([]models.Thread, int, error) {
	where := []string{"t.forum_id = $1"}
	args := []any{forumID}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		where = append(where, fmt.Sprintf("t.category_id = $%d", len(args)))
	}
	if f.IsPinned != nil {
		args = append(args, *f.IsPinned)
		where = append(where, fmt.Sprintf("t.is_pinned = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, escapeLike(f.Search))
		where = append(where, fmt.Sprintf(`t.title ILIKE '%%' || $%d || '%%' ESCAPE '\'`, len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM forum_threads t WHERE `+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count threads: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT t.id, t.forum_id, t.category_id, t.user_id, t.title, t.content,
		       t.is_pinned, t.is_closed, t.view_count, t.created_at, t.updated_at,
		       u.id, u.first_name, u.last_name, u.email
		FROM forum_threads t
		LEFT JOIN users u ON u.id = t.user_id
		WHERE %s
		ORDER BY t.is_pinned DESC, t.created_at DESC
		LIMIT $%d OFFSET $%d`, cond, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list threads: %w", err)
	}
	defer rows.Close()

	items := []models.Thread{}
	for rows.Next() {
		var t models.Thread
		var author nullUser
		err := rows.Scan(
			&t.ID, &t.ForumID, &t.CategoryID, &t.UserID, &t.Title, &t.Content,
			&t.IsPinned, &t.IsClosed, &t.ViewCount, &t.CreatedAt, &t.UpdatedAt,
			&author.id, &author.firstName, &author.lastName, &author.email,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan thread: %w", err)
		}
		t.User = author.summary()
		items = append(items, t)
	}
	return items, total, rows.Err()
}

// Update applies a field-level patch. Returns nil if the thread is gone.
func (s *ThreadStore) Update(ctx context.Context, id uuid.UUID, patch models.ThreadPatch) (*models.Thread, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.IsPinned != nil {
		add("is_pinned", *patch.IsPinned)
	}
	if patch.IsClosed != nil {
		add("is_closed", *patch.IsClosed)
	}
	if len(sets) == 0 {
		return s.bareFind(ctx, id)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE forum_threads SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(sets, ", "), len(args), threadColumns),
		args...,
	)
	updated, err := scanThread(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update thread: %w", err)
	}
	return updated, nil
}

// bareFind retrieves a thread without display summaries.
func (s *ThreadStore) bareFind(ctx context.Context, id uuid.UUID) (*models.Thread, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+threadColumns+` FROM forum_threads WHERE id = $1`, id)
	t, err := scanThread(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find thread: %w", err)
	}
	return t, nil
}

// Delete removes a thread. Posts and their reactions cascade in the
// database.
func (s *ThreadStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM forum_threads WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	return nil
}

// IncrementViewCount bumps the view counter by one in a single atomic
// statement and returns the new value. The counter only ever grows.
func (s *ThreadStore) IncrementViewCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE forum_threads SET view_count = view_count + 1
		WHERE id = $1
		RETURNING view_count`, id,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("increment view count: %w", err)
	}
	return count, nil
}
