// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a reply within a thread. Replies nest through ParentPostID, a
// self-reference within the same thread. The flat adjacency list is the
// source of truth; any nested tree view is derived by the presentation
// layer. A post whose parent was deleted keeps the dangling parent id
// (tombstone semantics) and is never re-parented.
type Post struct {
	ID           uuid.UUID  `json:"id"`
	ThreadID     uuid.UUID  `json:"threadId"`
	UserID       int64      `json:"userId"`
	Content      string     `json:"content"`
	ParentPostID *uuid.UUID `json:"parentPostId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// Display enrichments, populated on list/read paths.
	User           *UserSummary    `json:"user,omitempty"`
	ParentPost     *ParentPostRef  `json:"parentPost,omitempty"`
	ReplyCount     int64           `json:"replyCount"`
	ReactionCounts ReactionCounts  `json:"reactionCounts,omitempty"`
	UserReactions  []ReactionType  `json:"userReactions,omitempty"`
}

// ParentPostRef is the denormalized reply-context snippet carried alongside
// a reply, enough for the UI to quote what is being answered. When the
// parent was deleted the ref is nil while the raw ParentPostID remains.
type ParentPostRef struct {
	ID      uuid.UUID    `json:"id"`
	Content string       `json:"content"`
	UserID  int64        `json:"userId"`
	User    *UserSummary `json:"user,omitempty"`
}

// PostFilters paginates a thread's post listing. Posts are always returned
// oldest first.
type PostFilters struct {
	Limit  int
	Offset int
}
