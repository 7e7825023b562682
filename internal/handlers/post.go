// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"lexforum/internal/forum"
	"lexforum/internal/models"
)

// --- Posts ---

type createPostRequest struct {
	Content      string     `json:"content"`
	ParentPostID *uuid.UUID `json:"parentPostId"`
}

type updatePostRequest struct {
	Content string `json:"content"`
}

// PostsList returns one page of a thread's posts, oldest first, each
// carrying its reply context, reply count, reaction counts, and the
// caller's own reactions.
func (a *API) PostsList(w http.ResponseWriter, r *http.Request) {
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

	filters := models.PostFilters{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}
	items, page, err := a.svc.ListPosts(r.Context(), caller(r), forumID, threadID, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, page)
}

// PostCreate adds a reply to a thread.
func (a *API) PostCreate(w http.ResponseWriter, r *http.Request) {
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
	var req createPostRequest
	if err := decode(r, &req); err != nil {
		validationError(w, "Invalid request body.")
		return
	}
	if msg := validateContent(req.Content); msg != "" {
		validationError(w, msg)
		return
	}

	created, err := a.svc.CreatePost(r.Context(), caller(r), forumID, threadID, forum.CreatePostParams{
		Content:      req.Content,
		ParentPostID: req.ParentPostID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

// PostGet returns one post with its reaction enrichments.
func (a *API) PostGet(w http.ResponseWriter, r *http.Request) {
	forumID, threadID, postID, ok := postPath(w, r)
	if !ok {
		return
	}
	p, err := a.svc.GetPost(r.Context(), caller(r), forumID, threadID, postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// PostUpdate replaces a post's content. Author-only.
func (a *API) PostUpdate(w http.ResponseWriter, r *http.Request) {
	forumID, threadID, postID, ok := postPath(w, r)
	if !ok {
		return
	}
	var req updatePostRequest
	if err := decode(r, &req); err != nil {
		validationError(w, "Invalid request body.")
		return
	}
	if msg := validateContent(req.Content); msg != "" {
		validationError(w, msg)
		return
	}

	updated, err := a.svc.UpdatePost(r.Context(), caller(r), forumID, threadID, postID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

// PostDelete removes a post, leaving replies in place (tombstone).
func (a *API) PostDelete(w http.ResponseWriter, r *http.Request) {
	forumID, threadID, postID, ok := postPath(w, r)
	if !ok {
		return
	}
	if err := a.svc.DeletePost(r.Context(), caller(r), forumID, threadID, postID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Post deleted.")
}

// postPath parses the {forumID}/{threadID}/{postID} route triple, writing
// the validation error itself on failure.
func postPath(w http.ResponseWriter, r *http.Request) (int64, uuid.UUID, uuid.UUID, bool) {
	forumID, ok := forumIDParam(r)
	if !ok {
		validationError(w, "Invalid forum id.")
		return 0, uuid.Nil, uuid.Nil, false
	}
	threadID, ok := uuidParam(r, "threadID")
	if !ok {
		validationError(w, "Invalid thread id.")
		return 0, uuid.Nil, uuid.Nil, false
	}
	postID, ok := uuidParam(r, "postID")
	if !ok {
		validationError(w, "Invalid post id.")
		return 0, uuid.Nil, uuid.Nil, false
	}
	return forumID, threadID, postID, true
}
