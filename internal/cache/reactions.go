// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// reactions.go provides the Valkey-backed incremental reaction counter.
// Each post gets one hash (reactions:<postID>) with a field per reaction
// type, bumped on every confirmed add/remove so aggregate reads never scan
// the reaction table.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"lexforum/internal/models"
)

const (
	// reactionKeyPrefix is the Valkey key prefix for per-post count hashes.
	reactionKeyPrefix = "reactions:"

	// DefaultReactionTTL bounds how long a counter hash outlives its last
	// touch, so hashes for deleted posts eventually disappear.
	DefaultReactionTTL = 24 * time.Hour
)

// CountSource is the slow path the counter rebuilds from (a full scan of
// the reaction rows for one post). internal/store.ReactionStore satisfies
// it.
type CountSource interface {
	CountsByPost(ctx context.Context, postID uuid.UUID) (models.ReactionCounts, error)
}

// Reactions maintains per-post reaction counts in Valkey. It implements
// forum.ReactionCounter.
type Reactions struct {
	client *redis.Client
	src    CountSource
	ttl    time.Duration
}

// NewReactions creates a reaction counter backed by the given Valkey client
// and rebuild source.
func NewReactions(client *redis.Client, src CountSource, ttl time.Duration) *Reactions {
	if ttl == 0 {
		ttl = DefaultReactionTTL
	}
	return &Reactions{client: client, src: src, ttl: ttl}
}

func reactionKey(postID uuid.UUID) string {
	return reactionKeyPrefix + postID.String()
}

// Increment bumps one type's count by one. On a cold key the hash is
// rebuilt from the source instead, which already includes the new row.
func (r *Reactions) Increment(ctx context.Context, postID uuid.UUID, t models.ReactionType) error {
	return r.apply(ctx, postID, t, 1)
}

// Decrement lowers one type's count by one. A result below zero means the
// idempotency handling upstream is broken: it is logged as an invariant
// violation and the hash is rebuilt from the source, never clamped
// silently.
func (r *Reactions) Decrement(ctx context.Context, postID uuid.UUID, t models.ReactionType) error {
	return r.apply(ctx, postID, t, -1)
}

func (r *Reactions) apply(ctx context.Context, postID uuid.UUID, t models.ReactionType, delta int64) error {
	key := reactionKey(postID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("reaction counter exists: %w", err)
	}
	if exists == 0 {
		// Cold key: a rebuild reads the store after the row change, so it
		// already reflects this mutation.
		_, err := r.rebuild(ctx, postID)
		return err
	}

	val, err := r.client.HIncrBy(ctx, key, string(t), delta).Result()
	if err != nil {
		return fmt.Errorf("reaction counter incr: %w", err)
	}
	if val < 0 {
		slog.Error("reaction count went negative, rebuilding from store",
			"post_id", postID, "type", t, "value", val,
		)
		_, err := r.rebuild(ctx, postID)
		return err
	}
	r.client.Expire(ctx, key, r.ttl)
	return nil
}

// Counts returns the post's counts, rebuilding the hash from the source on
// a miss.
func (r *Reactions) Counts(ctx context.Context, postID uuid.UUID) (models.ReactionCounts, error) {
	fields, err := r.client.HGetAll(ctx, reactionKey(postID)).Result()
	if err != nil {
		return nil, fmt.Errorf("reaction counter read: %w", err)
	}
	if len(fields) == 0 {
		return r.rebuild(ctx, postID)
	}

	counts := models.ReactionCounts{}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("reaction counter parse %q: %w", raw, err)
		}
		counts[models.ReactionType(field)] = n
	}
	return counts, nil
}

// Invalidate drops a post's counter hash. Called when a post is removed so
// the key does not linger until TTL.
func (r *Reactions) Invalidate(ctx context.Context, postID uuid.UUID) {
	if err := r.client.Del(ctx, reactionKey(postID)).Err(); err != nil {
		slog.Warn("reaction counter invalidate failed", "post_id", postID, "error", err)
	}
}

// rebuild replaces the hash with a fresh scan from the source. Every known
// type is written, including zeroes, so the key exists afterwards and
// subsequent increments take the fast path.
func (r *Reactions) rebuild(ctx context.Context, postID uuid.UUID) (models.ReactionCounts, error) {
	counts, err := r.src.CountsByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("reaction counter rebuild: %w", err)
	}

	key := reactionKey(postID)
	fields := make(map[string]any, len(models.ReactionTypes))
	for _, t := range models.ReactionTypes {
		fields[string(t)] = counts[t]
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("reaction counter write: %w", err)
	}
	return counts.ZeroFilled(), nil
}
