// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"lexforum/internal/forum"
	"lexforum/internal/models"
)

// --- Threads ---

type createThreadRequest struct {
	CategoryID *int64 `json:"categoryId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

type updateThreadRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsPinned *bool   `json:"isPinned"`
	IsClosed *bool   `json:"isClosed"`
}

// ThreadsList returns one page of a forum's threads. Query parameters:
// categoryId, search, isPinned, limit, offset.
func (a *API) ThreadsList(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}

	filters := models.ThreadFilters{
		Search: r.URL.Query().Get("search"),
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			validationError(w, "Invalid categoryId filter.")
			return
		}
		filters.CategoryID = &id
	}
	if raw := r.URL.Query().Get("isPinned"); raw != "" {
		pinned, err := strconv.ParseBool(raw)
		if err != nil {
			validationError(w, "Invalid isPinned filter.")
			return
		}
		filters.IsPinned = &pinned
	}

	items, page, err := a.svc.ListThreads(r.Context(), caller(r), forumID, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, page)
}

// ThreadCreate opens a new thread in a forum.
func (a *API) ThreadCreate(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	var req createThreadRequest
	if err := decode(r, &req); err != nil {
		validationError(w, "Invalid request body.")
		return
	}
	if msg := validateTitle(req.Title); msg != "" {
		validationError(w, msg)
		return
	}
	if msg := validateContent(req.Content); msg != "" {
		validationError(w, msg)
		return
	}

	created, err := a.svc.CreateThread(r.Context(), caller(r), forumID, forum.CreateThreadParams{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

// ThreadGet returns one thread and bumps its view counter.
func (a *API) ThreadGet(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	threadID, ok := uuidParam(r, "threadID")
	if !ok {
		validationError(w, "Invalid thread id.")
		return
	}
	t, err := a.svc.GetThread(r.Context(), caller(r), forumID, threadID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, t)
}

// ThreadUpdate patches thread fields: title/content for the author,
// pin/close for moderators.
func (a *API) ThreadUpdate(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	threadID, ok := uuidParam(r, "threadID")
	if !ok {
		validationError(w, "Invalid thread id.")
		return
	}
	var req updateThreadRequest
	if err := decode(r, &req); err != nil {
		validationError(w, "Invalid request body.")
		return
	}
	if req.Title != nil {
		if msg := validateTitle(*req.Title); msg != "" {
			validationError(w, msg)
			return
		}
	}
	if req.Content != nil {
		if msg := validateContent(*req.Content); msg != "" {
			validationError(w, msg)
			return
		}
	}

	updated, err := a.svc.UpdateThread(r.Context(), caller(r), forumID, threadID, models.ThreadPatch{
		Title:    req.Title,
		Content:  req.Content,
		IsPinned: req.IsPinned,
		IsClosed: req.IsClosed,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

// ThreadDelete removes a thread with its posts and reactions.
func (a *API) ThreadDelete(w http.ResponseWriter, r *http.Request) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return
	}
	threadID, ok := uuidParam(r, "threadID")
	if !ok {
		validationError(w, "Invalid thread id.")
		return
	}
	if err := a.svc.DeleteThread(r.Context(), caller(r), forumID, threadID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Thread deleted.")
}
