// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum

// Service composes the five entity stores and the reaction counter into the
// discussion core. Every operation takes the acting Caller; forum-level
// access is checked first, then entity-level ownership or moderation rules,
// and only then is store state mutated. No operation leaves a partial write
// behind: each mutation is a single store call.
type Service struct {
	forums     ForumStore
	categories CategoryStore
	threads    ThreadStore
	posts      PostStore
	reactions  ReactionStore
	counter    ReactionCounter
}

// NewService wires a Service from its stores and the reaction counter.
func NewService(forums ForumStore, categories CategoryStore, threads ThreadStore, posts PostStore, reactions ReactionStore, counter ReactionCounter) *Service {
	return &Service{
		forums:     forums,
		categories: categories,
		threads:    threads,
		posts:      posts,
		reactions:  reactions,
		counter:    counter,
	}
}

// Pagination defaults. Out-of-range requests are clamped, not rejected.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page describes one slice of a paginated listing.
type Page struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// clampPage normalizes limit/offset to their allowed ranges.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// pageFor builds the pagination envelope for one returned slice.
func pageFor(total, limit, offset, returned int) Page {
	return Page{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+returned < total,
	}
}
