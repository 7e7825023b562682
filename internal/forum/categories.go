// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum

import (
	"context"
	"strings"

	"lexforum/internal/models"
)

// CreateCategoryParams carries the fields for a new category. DisplayOrder
// defaults to append-at-end when absent.
type CreateCategoryParams struct {
	Name         string
	Description  *string
	DisplayOrder *int
}

// CreateCategory adds a category to a forum. Gated by CanManage.
func (s *Service) CreateCategory(ctx context.Context, caller Caller, forumID int64, p CreateCategoryParams) (*models.Category, error) {
	f, err := s.findForum(ctx, forumID)
	if err != nil {
		return nil, err
	}
	if !CanManage(caller, f) {
		return nil, authorizationf("not allowed to manage this forum")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, validationf("category name is required")
	}

	order := 0
	if p.DisplayOrder != nil {
		order = *p.DisplayOrder
	} else {
		next, err := s.categories.NextDisplayOrder(ctx, forumID)
		if err != nil {
			return nil, internalf("category.next_order", err)
		}
		order = next
	}

	created, err := s.categories.Create(ctx, &models.Category{
		ForumID:      forumID,
		Name:         name,
		Description:  p.Description,
		DisplayOrder: order,
	})
	if err != nil {
		return nil, internalf("category.create", err)
	}
	return created, nil
}

// GetCategory returns one category of a visible forum.
func (s *Service) GetCategory(ctx context.Context, caller Caller, forumID, categoryID int64) (*models.Category, error) {
	if _, err := s.visibleForum(ctx, caller, forumID); err != nil {
		return nil, err
	}
	return s.findCategory(ctx, forumID, categoryID)
}

// UpdateCategory applies a field-level patch. Gated by CanManage.
func (s *Service) UpdateCategory(ctx context.Context, caller Caller, forumID, categoryID int64, patch models.CategoryPatch) (*models.Category, error) {
	f, err := s.findForum(ctx, forumID)
	if err != nil {
		return nil, err
	}
	if !CanManage(caller, f) {
		return nil, authorizationf("not allowed to manage this forum")
	}
	if _, err := s.findCategory(ctx, forumID, categoryID); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, validationf("category name is required")
		}
		patch.Name = &trimmed
	}

	updated, err := s.categories.Update(ctx, categoryID, patch)
	if err != nil {
		return nil, internalf("category.update", err)
	}
	if updated == nil {
		return nil, notFoundf("category %d not found", categoryID)
	}
	return updated, nil
}

// DeleteCategory removes a category. Threads referencing it keep existing
// with their category unset; nothing cascades. Gated by CanManage.
func (s *Service) DeleteCategory(ctx context.Context, caller Caller, forumID, categoryID int64) error {
	f, err := s.findForum(ctx, forumID)
	if err != nil {
		return err
	}
	if !CanManage(caller, f) {
		return authorizationf("not allowed to manage this forum")
	}
	if _, err := s.findCategory(ctx, forumID, categoryID); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, categoryID); err != nil {
		return internalf("category.delete", err)
	}
	return nil
}

// ListCategories returns a visible forum's categories ordered by display
// order ascending, ties broken by creation time.
func (s *Service) ListCategories(ctx context.Context, caller Caller, forumID int64) ([]models.Category, error) {
	if _, err := s.visibleForum(ctx, caller, forumID); err != nil {
		return nil, err
	}
	items, err := s.categories.ListByForum(ctx, forumID)
	if err != nil {
		return nil, internalf("category.list", err)
	}
	return items, nil
}

// findCategory fetches a category and checks it belongs to the forum.
func (s *Service) findCategory(ctx context.Context, forumID, categoryID int64) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, internalf("category.find", err)
	}
	if c == nil || c.ForumID != forumID {
		return nil, notFoundf("category %d not found", categoryID)
	}
	return c, nil
}
