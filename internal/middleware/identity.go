// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"lexforum/internal/forum"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// CallerKey is the context key for the caller identity.
	CallerKey contextKey = "caller"

	headerUserID       = "X-User-ID"
	headerOrganization = "X-Organization-ID"
	headerRoles        = "X-Roles"
)

// LoadCaller parses the identity headers injected by the upstream API
// gateway (the external authentication collaborator) into a forum.Caller
// and stores it in the request context. This middleware does NOT enforce
// authentication — it just loads the identity if one is present.
func LoadCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
		if err != nil || userID <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		caller := forum.Caller{UserID: userID}
		if raw := r.Header.Get(headerOrganization); raw != "" {
			if orgID, err := strconv.ParseInt(raw, 10, 64); err == nil {
				caller.OrganizationID = &orgID
			}
		}
		if raw := r.Header.Get(headerRoles); raw != "" {
			for _, role := range strings.Split(raw, ",") {
				if role = strings.TrimSpace(role); role != "" {
					caller.Roles = append(caller.Roles, role)
				}
			}
		}

		ctx := context.WithValue(r.Context(), CallerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCaller rejects requests without a loaded identity. Must be applied
// after LoadCaller in the middleware chain.
func RequireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CallerFromCtx(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":{"kind":"authorization","message":"authentication required"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CallerFromCtx extracts the caller identity from the request context.
func CallerFromCtx(ctx context.Context) (forum.Caller, bool) {
	caller, ok := ctx.Value(CallerKey).(forum.Caller)
	return caller, ok
}
