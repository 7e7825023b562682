// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ReactionType is a lightweight caller-scoped annotation on a post.
type ReactionType string

const (
	ReactionLike       ReactionType = "like"
	ReactionHelpful    ReactionType = "helpful"
	ReactionInsightful ReactionType = "insightful"
)

// ReactionTypes lists every known type, in display order.
var ReactionTypes = []ReactionType{ReactionLike, ReactionHelpful, ReactionInsightful}

// Valid reports whether t is one of the known reaction types.
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionHelpful || t == ReactionInsightful
}

// Reaction is one (post, user, type) triple. The database holds at most one
// row per triple; adding an existing triple or removing an absent one is a
// no-op.
type Reaction struct {
	ID           uuid.UUID    `json:"id"`
	PostID       uuid.UUID    `json:"postId"`
	UserID       int64        `json:"userId"`
	ReactionType ReactionType `json:"reactionType"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ReactionCounts maps reaction type to its per-post total.
type ReactionCounts map[ReactionType]int64

// ZeroFilled returns a copy of c carrying every known reaction type, with
// absent types at zero. Counts in API responses are always zero-filled.
func (c ReactionCounts) ZeroFilled() ReactionCounts {
	out := make(ReactionCounts, len(ReactionTypes))
	for _, t := range ReactionTypes {
		out[t] = c[t]
	}
	return out
}
