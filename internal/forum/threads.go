// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"lexforum/internal/models"
)

// CreateThreadParams carries the fields for a new thread.
type CreateThreadParams struct {
	CategoryID *int64
	Title      string
	Content    string
}

// CreateThread opens a new thread in a forum the caller can view. Threads
// start open, unpinned, with a zero view count.
func (s *Service) CreateThread(ctx context.Context, caller Caller, forumID int64, p CreateThreadParams) (*models.Thread, error) {
	if _, err := s.visibleForum(ctx, caller, forumID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, validationf("thread title is required")
	}
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, validationf("thread content is required")
	}
	if p.CategoryID != nil {
		if _, err := s.findCategory(ctx, forumID, *p.CategoryID); err != nil {
			if IsKind(err, KindNotFound) {
				return nil, validationf("category %d does not belong to forum %d", *p.CategoryID, forumID)
			}
			return nil, err
		}
	}

	created, err := s.threads.Create(ctx, &models.Thread{
		ID:         newID(),
		ForumID:    forumID,
		CategoryID: p.CategoryID,
		UserID:     caller.UserID,
		Title:      title,
		Content:    content,
	})
	if err != nil {
		return nil, internalf("thread.create", err)
	}
	return created, nil
}

// GetThread returns one thread with its author/category/forum summaries and
// bumps the view counter. The increment is at-least-once: concurrent reads
// may each add one, the counter never decreases.
func (s *Service) GetThread(ctx context.Context, caller Caller, forumID int64, threadID uuid.UUID) (*models.Thread, error) {
	t, _, err := s.visibleThread(ctx, caller, forumID, threadID)
	if err != nil {
		return nil, err
	}

	count, err := s.threads.IncrementViewCount(ctx, threadID)
	if err != nil {
		// The read itself succeeded; losing one increment is within the
		// counter's contract. Log for operators and return the thread.
		slog.Warn("view count increment failed", "thread_id", threadID, "error", err)
	} else {
		t.ViewCount = count
	}
	return t, nil
}

// UpdateThread applies a field-level patch to a thread. Title/content edits
// are author-only; pin/close toggles require CanModerateThread. A closed
// thread still accepts moderation toggles and reads, only new posts are
// rejected.
func (s *Service) UpdateThread(ctx context.Context, caller Caller, forumID int64, threadID uuid.UUID, patch models.ThreadPatch) (*models.Thread, error) {
	if patch.Empty() {
		return nil, validationf("no fields to update")
	}
	t, f, err := s.findThread(ctx, forumID, threadID)
	if err != nil {
		return nil, err
	}
	if patch.HasContentEdit() && caller.UserID != t.UserID {
		return nil, authorizationf("only the thread author may edit title or content")
	}
	if patch.HasModeration() && !CanModerateThread(caller, f, t) {
		return nil, authorizationf("not allowed to moderate this thread")
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, validationf("thread title is required")
		}
		patch.Title = &trimmed
	}
	if patch.Content != nil {
		trimmed := strings.TrimSpace(*patch.Content)
		if trimmed == "" {
			return nil, validationf("thread content is required")
		}
		patch.Content = &trimmed
	}

	updated, err := s.threads.Update(ctx, threadID, patch)
	if err != nil {
		return nil, internalf("thread.update", err)
	}
	if updated == nil {
		return nil, notFoundf("thread %s not found", threadID)
	}
	return updated, nil
}

// DeleteThread removes a thread and cascades to its posts and their
// reactions. Allowed for the thread author or a thread moderator.
func (s *Service) DeleteThread(ctx context.Context, caller Caller, forumID int64, threadID uuid.UUID) error {
	t, f, err := s.findThread(ctx, forumID, threadID)
	if err != nil {
		return err
	}
	if caller.UserID != t.UserID && !CanModerateThread(caller, f, t) {
		return authorizationf("not allowed to delete this thread")
	}
	if err := s.threads.Delete(ctx, threadID); err != nil {
		return internalf("thread.delete", err)
	}
	return nil
}

// ListThreads returns one page of a visible forum's threads. Pinned threads
// sort first, then most recently created. Search matches the title
// case-insensitively as a substring.
func (s *Service) ListThreads(ctx context.Context, caller Caller, forumID int64, f models.ThreadFilters) ([]models.Thread, Page, error) {
	if _, err := s.visibleForum(ctx, caller, forumID); err != nil {
		return nil, Page{}, err
	}
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)

	items, total, err := s.threads.ListByForum(ctx, forumID, f)
	if err != nil {
		return nil, Page{}, internalf("thread.list", err)
	}
	return items, pageFor(total, f.Limit, f.Offset, len(items)), nil
}

// findThread fetches a thread under the given forum, plus the forum itself.
// A thread id that exists under a different forum is NotFound.
func (s *Service) findThread(ctx context.Context, forumID int64, threadID uuid.UUID) (*models.Thread, *models.Forum, error) {
	t, err := s.threads.FindByID(ctx, threadID)
	if err != nil {
		return nil, nil, internalf("thread.find", err)
	}
	if t == nil || t.ForumID != forumID {
		return nil, nil, notFoundf("thread %s not found", threadID)
	}
	f, err := s.findForum(ctx, forumID)
	if err != nil {
		return nil, nil, err
	}
	return t, f, nil
}

// visibleThread is findThread plus the audience check.
func (s *Service) visibleThread(ctx context.Context, caller Caller, forumID int64, threadID uuid.UUID) (*models.Thread, *models.Forum, error) {
	t, f, err := s.findThread(ctx, forumID, threadID)
	if err != nil {
		return nil, nil, err
	}
	if !CanView(caller, f) {
		return nil, nil, authorizationf("not a member of this forum")
	}
	return t, f, nil
}

// newID returns a time-sortable UUIDv7 for thread/post/reaction ids.
func newID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
