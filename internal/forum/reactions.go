// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"lexforum/internal/models"
)

// AddReaction upserts the (post, caller, type) triple. Adding a triple that
// already exists changes nothing; the counter is only bumped when the store
// reports a new row, so duplicate requests never double-count. Returns the
// post with fresh aggregate counts.
func (s *Service) AddReaction(ctx context.Context, caller Caller, forumID int64, threadID, postID uuid.UUID, t models.ReactionType) (*models.Post, error) {
	if !t.Valid() {
		return nil, validationf("unknown reaction type %q", t)
	}
	post, err := s.visiblePost(ctx, caller, forumID, threadID, postID)
	if err != nil {
		return nil, err
	}

	inserted, err := s.reactions.Add(ctx, &models.Reaction{
		ID:           newID(),
		PostID:       postID,
		UserID:       caller.UserID,
		ReactionType: t,
	})
	if err != nil {
		return nil, internalf("reaction.add", err)
	}
	if inserted {
		if err := s.counter.Increment(ctx, postID, t); err != nil {
			// The triple is durable; the counter rebuilds from the store
			// on its next read.
			slog.Warn("reaction counter increment failed", "post_id", postID, "type", t, "error", err)
		}
	}

	if err := s.enrichPosts(ctx, caller, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// RemoveReaction deletes the (post, caller, type) triple. Removing a triple
// that was never added changes nothing and is not an error.
func (s *Service) RemoveReaction(ctx context.Context, caller Caller, forumID int64, threadID, postID uuid.UUID, t models.ReactionType) error {
	if !t.Valid() {
		return validationf("unknown reaction type %q", t)
	}
	if _, err := s.visiblePost(ctx, caller, forumID, threadID, postID); err != nil {
		return err
	}

	deleted, err := s.reactions.Remove(ctx, postID, caller.UserID, t)
	if err != nil {
		return internalf("reaction.remove", err)
	}
	if deleted {
		if err := s.counter.Decrement(ctx, postID, t); err != nil {
			slog.Warn("reaction counter decrement failed", "post_id", postID, "type", t, "error", err)
		}
	}
	return nil
}

// ListReactions returns the raw reaction rows for one post.
func (s *Service) ListReactions(ctx context.Context, caller Caller, forumID int64, threadID, postID uuid.UUID) ([]models.Reaction, error) {
	if _, err := s.visiblePost(ctx, caller, forumID, threadID, postID); err != nil {
		return nil, err
	}
	items, err := s.reactions.ListByPost(ctx, postID)
	if err != nil {
		return nil, internalf("reaction.list", err)
	}
	return items, nil
}

// GetReactionCounts returns the zero-filled aggregate counts for one post.
func (s *Service) GetReactionCounts(ctx context.Context, caller Caller, forumID int64, threadID, postID uuid.UUID) (models.ReactionCounts, error) {
	if _, err := s.visiblePost(ctx, caller, forumID, threadID, postID); err != nil {
		return nil, err
	}
	return s.postCounts(ctx, postID)
}

// postCounts reads the aggregate counter, falling back to a direct store
// count when the counter backend is unavailable.
func (s *Service) postCounts(ctx context.Context, postID uuid.UUID) (models.ReactionCounts, error) {
	counts, err := s.counter.Counts(ctx, postID)
	if err != nil {
		slog.Warn("reaction counter unavailable, falling back to store", "post_id", postID, "error", err)
		counts, err = s.reactions.CountsByPost(ctx, postID)
		if err != nil {
			return nil, internalf("reaction.counts", err)
		}
	}
	return counts.ZeroFilled(), nil
}
