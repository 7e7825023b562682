// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Thread is a single discussion topic within a forum. Thread ids are
// time-sortable UUIDv7 values since threads are created at high concurrency
// across tenants.
type Thread struct {
	ID         uuid.UUID  `json:"id"`
	ForumID    int64      `json:"forumId"`
	CategoryID *int64     `json:"categoryId,omitempty"`
	UserID     int64      `json:"userId"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	IsPinned   bool       `json:"isPinned"`
	IsClosed   bool       `json:"isClosed"`
	ViewCount  int64      `json:"viewCount"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// Display summaries, populated on single-thread reads.
	User     *UserSummary `json:"user,omitempty"`
	Category *Category    `json:"category,omitempty"`
	Forum    *Forum       `json:"forum,omitempty"`
}

// ThreadPatch carries an optional-field thread update. Title/content edits
// and the pin/close moderation toggles travel in the same patch but are
// authorized separately.
type ThreadPatch struct {
	Title    *string
	Content  *string
	IsPinned *bool
	IsClosed *bool
}

// HasContentEdit reports whether the patch touches author-owned fields.
func (p ThreadPatch) HasContentEdit() bool {
	return p.Title != nil || p.Content != nil
}

// HasModeration reports whether the patch touches moderator-owned flags.
func (p ThreadPatch) HasModeration() bool {
	return p.IsPinned != nil || p.IsClosed != nil
}

// Empty reports whether the patch changes nothing.
func (p ThreadPatch) Empty() bool {
	return !p.HasContentEdit() && !p.HasModeration()
}

// ThreadFilters narrows and paginates a forum's thread listing.
type ThreadFilters struct {
	CategoryID *int64
	Search     string
	IsPinned   *bool
	Limit      int
	Offset     int
}
