// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lexforum/internal/models"
)

type addReactionRequest struct {
	ReactionType string `json:"reactionType"`
}

// ReactionsList returns every reaction row on a post, oldest first.
func (a *API) ReactionsList(w http.ResponseWriter, r *http.Request) {
	forumID, threadID, postID, ok := postPath(w, r)
	if !ok {
		return
	}
	items, err := a.svc.ListReactions(r.Context(), caller(r), forumID, threadID, postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

// ReactionAdd records the caller's reaction on a post and returns the
// post with refreshed counts. Adding the same reaction twice is a no-op.
func (a *API) ReactionAdd(w http.ResponseWriter, r *http.Request) {
	forumID, threadID, postID, ok := postPath(w, r)
	if !ok {
		return
	}
	var req addReactionRequest
	if err := decode(r, &req); err != nil {
		validationError(w, "Invalid request body.")
		return
	}

	p, err := a.svc.AddReaction(r.Context(), caller(r), forumID, threadID, postID, models.ReactionType(req.ReactionType))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// ReactionRemove removes the caller's reaction of the given type.
// Removing a reaction that was never added is a no-op.
func (a *API) ReactionRemove(w http.ResponseWriter, r *http.Request) {
	forumID, threadID, postID, ok := postPath(w, r)
	if !ok {
		return
	}
	reactionType := models.ReactionType(chi.URLParam(r, "reactionType"))

	if err := a.svc.RemoveReaction(r.Context(), caller(r), forumID, threadID, postID, reactionType); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Reaction removed.")
}

// ReactionCounts returns the zero-filled per-type aggregate for a post.
func (a *API) ReactionCounts(w http.ResponseWriter, r *http.Request) {
	forumID, threadID, postID, ok := postPath(w, r)
	if !ok {
		return
	}
	counts, err := a.svc.GetReactionCounts(r.Context(), caller(r), forumID, threadID, postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, counts)
}
