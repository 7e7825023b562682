// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"lexforum/internal/models"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, reactionKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	// Verify connection.
	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

// TestReactionsAgainstLiveValkey runs the counter against a real server.
// The unit tests in reactions_test.go cover the logic with miniredis; this
// one exercises the pipeline and TTL calls end to end.
func TestReactionsAgainstLiveValkey(t *testing.T) {
	client := testValkeyClient(t)

	src := &fakeSource{counts: map[uuid.UUID]models.ReactionCounts{}}
	rc := NewReactions(client, src, 1*time.Minute)

	ctx := context.Background()
	postID := uuid.Must(uuid.NewV7())
	src.counts[postID] = models.ReactionCounts{models.ReactionLike: 1}

	if err := rc.Increment(ctx, postID, models.ReactionLike); err != nil {
		t.Fatalf("Increment: %v", err)
	}

	counts, err := rc.Counts(ctx, postID)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts[models.ReactionLike] != 1 {
		t.Errorf("like count = %d, want 1 (rebuild reflects the store)", counts[models.ReactionLike])
	}

	rc.Invalidate(ctx, postID)
	if n, err := client.Exists(ctx, reactionKey(postID)).Result(); err != nil || n != 0 {
		t.Errorf("Exists after Invalidate = %d, %v; want 0, nil", n, err)
	}
}
