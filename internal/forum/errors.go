// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum

import (
	"errors"
	"fmt"
)

// Kind is the stable machine-readable error class carried to API clients.
type Kind string

const (
	// KindValidation covers malformed input and cross-entity referential
	// violations. The caller can recover by correcting the request.
	KindValidation Kind = "validation"
	// KindNotFound covers references to entities that do not exist or were
	// hard-deleted.
	KindNotFound Kind = "not_found"
	// KindAuthorization covers missing role, ownership, or membership.
	KindAuthorization Kind = "authorization"
	// KindThreadClosed covers post creation on a closed thread.
	KindThreadClosed Kind = "thread_closed"
	// KindConflict covers concurrent-modification detection; the operation
	// is retriable after re-fetching current state.
	KindConflict Kind = "conflict"
	// KindInternal covers storage and infrastructure failures. The wrapped
	// cause is logged, never exposed verbatim to clients.
	KindInternal Kind = "internal"
)

// Error is the domain error type. Every failure leaving the core carries a
// Kind plus a human-readable message; internal causes stay wrapped for
// operator diagnosis.
type Error struct {
	Kind    Kind
	Message string
	Op      string // originating operation, for correlation on internal errors
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// KindOf extracts the error kind, defaulting to KindInternal for errors
// that did not originate in this package.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

func validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func authorizationf(format string, args ...any) error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func threadClosedf(format string, args ...any) error {
	return &Error{Kind: KindThreadClosed, Message: fmt.Sprintf(format, args...)}
}

// internalf wraps a storage failure. op names the failing operation so logs
// can be correlated without exposing driver errors to clients.
func internalf(op string, err error) error {
	return &Error{Kind: KindInternal, Message: "internal error", Op: op, err: err}
}
