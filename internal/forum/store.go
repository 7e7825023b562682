// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum

import (
	"context"

	"github.com/google/uuid"

	"lexforum/internal/models"
)

// Store interfaces are the seams between the core and its persistence.
// The PostgreSQL implementations live in internal/store; tests inject the
// in-memory implementations from internal/forum/forumtest. Find methods
// return (nil, nil) when the entity does not exist — absence is not an
// error at the store level.

// ForumStore persists forums.
type ForumStore interface {
	Create(ctx context.Context, f *models.Forum) (*models.Forum, error)
	FindByID(ctx context.Context, id int64) (*models.Forum, error)
	List(ctx context.Context) ([]models.Forum, error)
	Update(ctx context.Context, id int64, patch models.ForumPatch) (*models.Forum, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, id int64) (*models.ForumStats, error)
}

// CategoryStore persists per-forum topic categories.
type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	ListByForum(ctx context.Context, forumID int64) ([]models.Category, error)
	Update(ctx context.Context, id int64, patch models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
	NextDisplayOrder(ctx context.Context, forumID int64) (int, error)
}

// ThreadStore persists threads. ListByForum returns one page plus the total
// match count for the same filter.
type ThreadStore interface {
	Create(ctx context.Context, t *models.Thread) (*models.Thread, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Thread, error)
	ListByForum(ctx context.Context, forumID int64, f models.ThreadFilters) ([]models.Thread, int, error)
	Update(ctx context.Context, id uuid.UUID, patch models.ThreadPatch) (*models.Thread, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementViewCount atomically bumps the counter and returns the new
	// value. The counter is monotonic; it never decreases.
	IncrementViewCount(ctx context.Context, id uuid.UUID) (int64, error)
}

// PostStore persists posts. List results carry author and parent-post
// display summaries plus reply counts; reaction data is layered on by the
// service from the ReactionStore and ReactionCounter.
type PostStore interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListByThread(ctx context.Context, threadID uuid.UUID, f models.PostFilters) ([]models.Post, int, error)
	Update(ctx context.Context, id uuid.UUID, content string) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReactionStore persists reaction triples. Add and Remove report whether a
// row actually changed, which is what keeps the aggregate counters honest
// under duplicate requests.
type ReactionStore interface {
	Add(ctx context.Context, r *models.Reaction) (bool, error)
	Remove(ctx context.Context, postID uuid.UUID, userID int64, t models.ReactionType) (bool, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Reaction, error)
	CountsByPost(ctx context.Context, postID uuid.UUID) (models.ReactionCounts, error)
	// TypesForUserByPosts returns, for one user, the reaction types held on
	// each of the given posts. One query per listing page.
	TypesForUserByPosts(ctx context.Context, postIDs []uuid.UUID, userID int64) (map[uuid.UUID][]models.ReactionType, error)
}

// ReactionCounter is the incrementally-maintained aggregate over reaction
// triples. Counts is O(1) amortized; the Valkey-backed implementation lives
// in internal/cache.
type ReactionCounter interface {
	Increment(ctx context.Context, postID uuid.UUID, t models.ReactionType) error
	Decrement(ctx context.Context, postID uuid.UUID, t models.ReactionType) error
	Counts(ctx context.Context, postID uuid.UUID) (models.ReactionCounts, error)
	// Invalidate drops the aggregate for one post. Best effort; a stale
	// aggregate also ages out via TTL.
	Invalidate(ctx context.Context, postID uuid.UUID)
}
