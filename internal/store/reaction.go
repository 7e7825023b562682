// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"lexforum/internal/models"
)

// ReactionStore manages post reaction triples. The UNIQUE(post_id, user_id,
// reaction_type) constraint is what makes Add idempotent under concurrent
// duplicate requests: whichever insert loses the race becomes a no-op.
type ReactionStore struct {
	db *sql.DB
}

// NewReactionStore returns a new ReactionStore.
func NewReactionStore(db *sql.DB) *ReactionStore {
	return &ReactionStore{db: db}
}

// Add inserts a reaction triple, reporting whether a new row was created.
// An existing triple is left untouched.
func (s *ReactionStore) Add(ctx context.Context, r *models.Reaction) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO forum_post_reactions (id, post_id, user_id, reaction_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (post_id, user_id, reaction_type) DO NOTHING`,
		r.ID, r.PostID, r.UserID, r.ReactionType,
	)
	if err != nil {
		return false, fmt.Errorf("add reaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add reaction rows: %w", err)
	}
	return n > 0, nil
}

// Remove deletes a reaction triple, reporting whether a row existed.
// Removing an absent triple is not an error.
func (s *ReactionStore) Remove(ctx context.Context, postID uuid.UUID, userID int64, t models.ReactionType) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM forum_post_reactions
		WHERE post_id = $1 AND user_id = $2 AND reaction_type = $3`,
		postID, userID, t,
	)
	if err != nil {
		return false, fmt.Errorf("remove reaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove reaction rows: %w", err)
	}
	return n > 0, nil
}

// ListByPost returns all reaction rows for a post, oldest first.
func (s *ReactionStore) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Reaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, post_id, user_id, reaction_type, created_at, updated_at
		FROM forum_post_reactions
		WHERE post_id = $1
		ORDER BY created_at, id`, postID)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	defer rows.Close()

	var items []models.Reaction
	for rows.Next() {
		var r models.Reaction
		err := rows.Scan(&r.ID, &r.PostID, &r.UserID, &r.ReactionType, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// CountsByPost scans the triples for one post and groups them by type.
// This is the slow path: the incremental counter in internal/cache serves
// normal reads and calls this only to rebuild.
func (s *ReactionStore) CountsByPost(ctx context.Context, postID uuid.UUID) (models.ReactionCounts, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reaction_type, COUNT(*)
		FROM forum_post_reactions
		WHERE post_id = $1
		GROUP BY reaction_type`, postID)
	if err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}
	defer rows.Close()

	counts := models.ReactionCounts{}
	for rows.Next() {
		var t models.ReactionType
		var n int64
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan reaction count: %w", err)
		}
		counts[t] = n
	}
	return counts, rows.Err()
}

// TypesForUserByPosts returns the reaction types one user holds on each of
// the given posts, in a single query per listing page.
func (s *ReactionStore) TypesForUserByPosts(ctx context.Context, postIDs []uuid.UUID, userID int64) (map[uuid.UUID][]models.ReactionType, error) {
	out := map[uuid.UUID][]models.ReactionType{}
	if len(postIDs) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(postIDs))
	args := make([]any, 0, len(postIDs)+1)
	args = append(args, userID)
	for i, id := range postIDs {
		args = append(args, id)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT post_id, reaction_type
		FROM forum_post_reactions
		WHERE user_id = $1 AND post_id IN (%s)
		ORDER BY reaction_type`, strings.Join(placeholders, ", ")),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("user reactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID uuid.UUID
		var t models.ReactionType
		if err := rows.Scan(&postID, &t); err != nil {
			return nil, fmt.Errorf("scan user reaction: %w", err)
		}
		out[postID] = append(out[postID], t)
	}
	return out, rows.Err()
}
