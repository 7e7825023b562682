// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API handlers for the forum service.
// Handlers decode and bound-check input, pull the caller identity from the
// request context, delegate to the forum service, and translate domain
// errors into the response envelope. They hold no business rules.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lexforum/internal/forum"
	"lexforum/internal/middleware"
)

// API groups the forum HTTP handlers around the core service.
type API struct {
	svc *forum.Service
}

// NewAPI creates the handler group.
func NewAPI(svc *forum.Service) *API {
	return &API{svc: svc}
}

// envelope is the uniform response shape: {"success":..., "data":...} plus
// pagination on list endpoints and error details on failure.
type envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *forum.Page `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Kind    forum.Kind `json:"kind"`
	Message string     `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeData writes a success envelope around one payload.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeList writes a success envelope with a pagination block.
func writeList(w http.ResponseWriter, data any, page forum.Page) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: &page})
}

// writeMessage writes a success envelope with just a confirmation message.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message})
}

// kindStatus maps domain error kinds to HTTP status codes.
var kindStatus = map[forum.Kind]int{
	forum.KindValidation:    http.StatusBadRequest,
	forum.KindNotFound:      http.StatusNotFound,
	forum.KindAuthorization: http.StatusForbidden,
	forum.KindThreadClosed:  http.StatusConflict,
	forum.KindConflict:      http.StatusConflict,
	forum.KindInternal:      http.StatusInternalServerError,
}

// writeError translates a domain error into the response envelope. Internal
// causes are logged with their originating operation and never exposed.
func writeError(w http.ResponseWriter, err error) {
	kind := forum.KindOf(err)
	message := "internal error"

	var fe *forum.Error
	if errors.As(err, &fe) && kind != forum.KindInternal {
		message = fe.Message
	}
	if kind == forum.KindInternal {
		op := ""
		if fe != nil {
			op = fe.Op
		}
		slog.Error("request failed", "op", op, "error", err)
	}

	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, envelope{Success: false, Error: &apiError{Kind: kind, Message: message}})
}

// validationError writes a validation failure without a round-trip through
// the service.
func validationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Error:   &apiError{Kind: forum.KindValidation, Message: message},
	})
}

// caller returns the identity loaded by the middleware chain. RequireCaller
// runs before every handler, so absence means a routing misconfiguration.
func caller(r *http.Request) forum.Caller {
	c, _ := middleware.CallerFromCtx(r.Context())
	return c
}

// decode reads a JSON request body into dst.
func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// forumIDParam parses the {forumID} route parameter.
func forumIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "forumID"), 10, 64)
	return id, err == nil && id > 0
}

// int64Param parses a generic integer route parameter.
func int64Param(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// uuidParam parses a UUID route parameter.
func uuidParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

// queryInt parses an optional integer query parameter, with fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
