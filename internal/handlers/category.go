// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"lexforum/internal/forum"
	"lexforum/internal/models"
)

// --- Categories ---

type createCategoryRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder"`
}

type updateCategoryRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder"`
}

// CategoriesList returns a forum's categories in display order.
func (a *API) CategoriesList(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	items, err := a.svc.ListCategories(r.Context(), caller(r), forumID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

// CategoryCreate adds a category to a forum.
func (a *API) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	var req createCategoryRequest
	if err := decode(r, &req); err != nil {
		validationError(w, "Invalid request body.")
		return
	}
	if msg := validateName(req.Name); msg != "" {
		validationError(w, msg)
		return
	}
	if msg := validateDescription(req.Description); msg != "" {
		validationError(w, msg)
		return
	}

	created, err := a.svc.CreateCategory(r.Context(), caller(r), forumID, forum.CreateCategoryParams{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

// CategoryGet returns one category.
func (a *API) CategoryGet(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	categoryID, ok := int64Param(r, "categoryID")
	if !ok {
		validationError(w, "Invalid category id.")
		return
	}
	c, err := a.svc.GetCategory(r.Context(), caller(r), forumID, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

// CategoryUpdate patches category fields.
func (a *API) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	categoryID, ok := int64Param(r, "categoryID")
	if !ok {
		validationError(w, "Invalid category id.")
		return
	}
	var req updateCategoryRequest
	if err := decode(r, &req); err != nil {
		validationError(w, "Invalid request body.")
		return
	}
	if req.Name != nil {
		if msg := validateName(*req.Name); msg != "" {
			validationError(w, msg)
			return
		}
	}
	if msg := validateDescription(req.Description); msg != "" {
		validationError(w, msg)
		return
	}

	updated, err := a.svc.UpdateCategory(r.Context(), caller(r), forumID, categoryID, models.CategoryPatch{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

// CategoryDelete removes a category without touching its threads.
func (a *API) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	categoryID, ok := int64Param(r, "categoryID")
	if !ok {
		validationError(w, "Invalid category id.")
		return
	}
	if err := a.svc.DeleteCategory(r.Context(), caller(r), forumID, categoryID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Category deleted.")
}
