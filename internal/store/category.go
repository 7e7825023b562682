// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"lexforum/internal/models"
)

// CategoryStore manages forum categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, forum_id, name, description, display_order, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.ForumID, &c.Name, &c.Description,
		&c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO forum_categories (forum_id, name, description, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		c.ForumID, c.Name, c.Description, c.DisplayOrder,
	)
	created, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM forum_categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// ListByForum returns a forum's categories ordered by display_order
// ascending, ties broken by creation time.
func (s *CategoryStore) ListByForum(ctx context.Context, forumID int64) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM forum_categories
		WHERE forum_id = $1
		ORDER BY display_order, created_at`, forumID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Update applies a field-level patch. Returns nil if the category is gone.
func (s *CategoryStore) Update(ctx context.Context, id int64, patch models.CategoryPatch) (*models.Category, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.DisplayOrder != nil {
		add("display_order", *patch.DisplayOrder)
	}
	if len(sets) == 0 {
		return s.FindByID(ctx, id)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE forum_categories SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(sets, ", "), len(args), categoryColumns),
		args...,
	)
	updated, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

// Delete removes a category. Threads referencing it keep existing with
// their category unset (ON DELETE SET NULL).
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM forum_categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// NextDisplayOrder returns max existing display_order + 1 for the forum,
// or 0 for the first category.
func (s *CategoryStore) NextDisplayOrder(ctx context.Context, forumID int64) (int, error) {
	var maxOrder sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(display_order) FROM forum_categories WHERE forum_id = $1`, forumID,
	).Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("next display order: %w", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 0, nil
}
