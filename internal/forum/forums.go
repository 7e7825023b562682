// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum

import (
	"context"
	"strings"

	"lexforum/internal/models"
)

// CreateForumParams carries the fields for a new forum. The organization of
// an organizational forum is always taken from the caller, never from the
// request.
type CreateForumParams struct {
	Name        string
	Description *string
	Type        models.ForumType
}

// CreateForum creates a forum owned by the caller. Organizational forums
// require the caller to belong to an organization.
func (s *Service) CreateForum(ctx context.Context, caller Caller, p CreateForumParams) (*models.Forum, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, validationf("forum name is required")
	}
	if !p.Type.Valid() {
		return nil, validationf("unknown forum type %q", p.Type)
	}

	f := &models.Forum{
		Name:            name,
		Description:     p.Description,
		Type:            p.Type,
		CreatedByUserID: caller.UserID,
		Settings:        map[string]any{},
	}
	if p.Type == models.ForumTypeOrganizational {
		if caller.OrganizationID == nil {
			return nil, validationf("caller has no organization; cannot create an organizational forum")
		}
		f.OrganizationID = caller.OrganizationID
	}

	created, err := s.forums.Create(ctx, f)
	if err != nil {
		return nil, internalf("forum.create", err)
	}
	return created, nil
}

// GetForum returns one forum visible to the caller.
func (s *Service) GetForum(ctx context.Context, caller Caller, forumID int64) (*models.Forum, error) {
	return s.visibleForum(ctx, caller, forumID)
}

// UpdateForum applies a field-level patch to forum name, description, or
// settings. Gated by CanManage.
func (s *Service) UpdateForum(ctx context.Context, caller Caller, forumID int64, patch models.ForumPatch) (*models.Forum, error) {
	f, err := s.findForum(ctx, forumID)
	if err != nil {
		return nil, err
	}
	if !CanManage(caller, f) {
		return nil, authorizationf("not allowed to manage this forum")
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, validationf("forum name is required")
		}
		patch.Name = &trimmed
	}

	updated, err := s.forums.Update(ctx, forumID, patch)
	if err != nil {
		return nil, internalf("forum.update", err)
	}
	if updated == nil {
		return nil, notFoundf("forum %d not found", forumID)
	}
	return updated, nil
}

// DeleteForum removes a forum together with its categories, threads, posts,
// and reactions (uniform hard-cascade policy). Gated by CanManage.
func (s *Service) DeleteForum(ctx context.Context, caller Caller, forumID int64) error {
	f, err := s.findForum(ctx, forumID)
	if err != nil {
		return err
	}
	if !CanManage(caller, f) {
		return authorizationf("not allowed to manage this forum")
	}
	if err := s.forums.Delete(ctx, forumID); err != nil {
		return internalf("forum.delete", err)
	}
	return nil
}

// ListForums returns every forum visible to the caller: all lawyer-advice
// forums plus the organizational forums of the caller's own organization.
func (s *Service) ListForums(ctx context.Context, caller Caller) ([]models.Forum, error) {
	all, err := s.forums.List(ctx)
	if err != nil {
		return nil, internalf("forum.list", err)
	}
	visible := make([]models.Forum, 0, len(all))
	for _, f := range all {
		if CanView(caller, &f) {
			visible = append(visible, f)
		}
	}
	return visible, nil
}

// ForumStats returns category and thread counts for one visible forum.
func (s *Service) ForumStats(ctx context.Context, caller Caller, forumID int64) (*models.ForumStats, error) {
	if _, err := s.visibleForum(ctx, caller, forumID); err != nil {
		return nil, err
	}
	stats, err := s.forums.Stats(ctx, forumID)
	if err != nil {
		return nil, internalf("forum.stats", err)
	}
	return stats, nil
}

// findForum fetches a forum or reports NotFound.
func (s *Service) findForum(ctx context.Context, forumID int64) (*models.Forum, error) {
	f, err := s.forums.FindByID(ctx, forumID)
	if err != nil {
		return nil, internalf("forum.find", err)
	}
	if f == nil {
		return nil, notFoundf("forum %d not found", forumID)
	}
	return f, nil
}

// visibleForum fetches a forum and checks the caller is in its audience.
func (s *Service) visibleForum(ctx context.Context, caller Caller, forumID int64) (*models.Forum, error) {
	f, err := s.findForum(ctx, forumID)
	if err != nil {
		return nil, err
	}
	if !CanView(caller, f) {
		return nil, authorizationf("not a member of this forum")
	}
	return f, nil
}
