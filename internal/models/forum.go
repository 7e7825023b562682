// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"
)

// ForumType distinguishes the two forum kinds. The type is a closed union:
// organizational forums always carry an organization id, lawyer_advice
// forums never do. The database enforces the same rule with a CHECK
// constraint.
type ForumType string

const (
	ForumTypeOrganizational ForumType = "organizational"
	ForumTypeLawyerAdvice   ForumType = "lawyer_advice"
)

// Valid reports whether t is one of the two known forum types.
func (t ForumType) Valid() bool {
	return t == ForumTypeOrganizational || t == ForumTypeLawyerAdvice
}

// Forum is a top-level discussion space, either private to one organization
// or public to every authenticated user ("lawyer advice").
type Forum struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Description     *string        `json:"description,omitempty"`
	Type            ForumType      `json:"type"`
	OrganizationID  *int64         `json:"organizationId,omitempty"`
	CreatedByUserID int64          `json:"createdByUserId"`
	Settings        map[string]any `json:"settings"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`

	// Creator is a display summary, populated on single-forum reads.
	Creator *UserSummary `json:"creator,omitempty"`
}

// ForumPatch carries an optional-field update. Nil fields are left
// untouched so concurrent updates to distinct fields never clobber
// each other.
type ForumPatch struct {
	Name        *string
	Description *string
	Settings    map[string]any
}

// ForumStats aggregates per-forum entity counts for the forum index page.
type ForumStats struct {
	ForumID       int64 `json:"forumId"`
	CategoryCount int64 `json:"categoryCount"`
	ThreadCount   int64 `json:"threadCount"`
}
