// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"
)

// Category is an ordered topic grouping inside one forum. Deleting a
// category never deletes its threads; they just lose their category id.
type Category struct {
	ID           int64     `json:"id"`
	ForumID      int64     `json:"forumId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CategoryPatch carries an optional-field category update.
type CategoryPatch struct {
	Name         *string
	Description  *string
	DisplayOrder *int
}
