// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"lexforum/internal/models"
)

// PostStore manages thread posts in the database. The nested reply tree is
// stored as a flat adjacency list (parent_post_id); parent_post_id carries
// no foreign key on purpose so a deleted parent leaves replies with a
// dangling reference instead of blocking or cascading the delete.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postSelect joins the author, the parent-post snippet, and the reply
// count onto each post row.
const postSelect = `
	SELECT p.id, p.thread_id, p.user_id, p.content, p.parent_post_id,
	       p.created_at, p.updated_at,
	       u.id, u.first_name, u.last_name, u.email,
	       pp.id, pp.content, pp.user_id,
	       pu.id, pu.first_name, pu.last_name, pu.email,
	       (SELECT COUNT(*) FROM forum_posts r WHERE r.parent_post_id = p.id) AS reply_count
	FROM forum_posts p
	LEFT JOIN users u ON u.id = p.user_id
	LEFT JOIN forum_posts pp ON pp.id = p.parent_post_id
	LEFT JOIN users pu ON pu.id = pp.user_id`

// scanPost scans one joined post row.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var author nullUser
	var parentID uuid.NullUUID
	var parentContent sql.NullString
	var parentUserID sql.NullInt64
	var parentAuthor nullUser
	err := scanner.Scan(
		&p.ID, &p.ThreadID, &p.UserID, &p.Content, &p.ParentPostID,
		&p.CreatedAt, &p.UpdatedAt,
		&author.id, &author.firstName, &author.lastName, &author.email,
		&parentID, &parentContent, &parentUserID,
		&parentAuthor.id, &parentAuthor.firstName, &parentAuthor.lastName, &parentAuthor.email,
		&p.ReplyCount,
	)
	if err != nil {
		return nil, err
	}
	p.User = author.summary()
	// A deleted parent leaves ParentPostID set but no joined row: the ref
	// stays nil while the raw id survives (tombstone semantics).
	if parentID.Valid {
		p.ParentPost = &models.ParentPostRef{
			ID:      parentID.UUID,
			Content: parentContent.String,
			UserID:  parentUserID.Int64,
			User:    parentAuthor.summary(),
		}
	}
	return &p, nil
}

// Create inserts a new post and returns it. The id is assigned by the
// caller (time-sortable UUIDv7).
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO forum_posts (id, thread_id, user_id, content, parent_post_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, thread_id, user_id, content, parent_post_id, created_at, updated_at`,
		p.ID, p.ThreadID, p.UserID, p.Content, p.ParentPostID,
	)
	var created models.Post
	err := row.Scan(
		&created.ID, &created.ThreadID, &created.UserID, &created.Content,
		&created.ParentPostID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &created, nil
}

// FindByID retrieves a post with its display enrichments. Returns nil if
// not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// ListByThread returns one page of a thread's posts in creation order
// (oldest first) plus the thread's total post count.
func (s *PostStore) ListByThread(ctx context.Context, threadID uuid.UUID, f models.PostFilters) ([]models.Post, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM forum_posts WHERE thread_id = $1`, threadID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, postSelect+`
		WHERE p.thread_id = $1
		ORDER BY p.created_at, p.id
		LIMIT $2 OFFSET $3`,
		threadID, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	items := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

// Update replaces a post's content. Returns nil if the post is gone.
func (s *PostStore) Update(ctx context.Context, id uuid.UUID, content string) (*models.Post, error) {
	var updated uuid.NullUUID
	err := s.db.QueryRowContext(ctx, `
		UPDATE forum_posts SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id`, content, id,
	).Scan(&updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Delete removes a post. Reactions cascade; replies are left untouched with
// their parent_post_id dangling (tombstone policy, never re-parented).
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM forum_posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
