// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"lexforum/internal/forum"
	"lexforum/internal/models"
)

// --- Forums ---

type createForumRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Type        models.ForumType `json:"type"`
}

type updateForumRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Settings    map[string]any `json:"settings"`
}

// ForumsList returns every forum visible to the caller.
func (a *API) ForumsList(w http.ResponseWriter, r *http.Request) {
	forums, err := a.svc.ListForums(r.Context(), caller(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, forums)
}

// ForumCreate creates a forum owned by the caller.
func (a *API) ForumCreate(w http.ResponseWriter, r *http.Request) {
	var req createForumRequest
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

	created, err := a.svc.CreateForum(r.Context(), caller(r), forum.CreateForumParams{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

// ForumGet returns one forum.
func (a *API) ForumGet(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	f, err := a.svc.GetForum(r.Context(), caller(r), forumID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, f)
}

// ForumUpdate patches forum name, description, or settings.
func (a *API) ForumUpdate(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	var req updateForumRequest
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

	updated, err := a.svc.UpdateForum(r.Context(), caller(r), forumID, models.ForumPatch{
		Name:        req.Name,
		Description: req.Description,
		Settings:    req.Settings,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

// ForumDelete removes a forum and everything beneath it.
func (a *API) ForumDelete(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	if err := a.svc.DeleteForum(r.Context(), caller(r), forumID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Forum deleted.")
}

// ForumStats returns category and thread counts for one forum.
func (a *API) ForumStats(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	stats, err := a.svc.ForumStats(r.Context(), caller(r), forumID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}
