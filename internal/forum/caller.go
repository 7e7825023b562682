// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forum implements the discussion core of the case-management
// product: forums, categories, threads, nested posts, and reactions. The
// package owns the permission model and all entity invariants; identity,
// sessions, and role assignment live in an external collaborator and reach
// this package only as a Caller value.
package forum

// RoleAdmin is the role claim that grants moderation rights inside
// organizational forums. Role names are assigned by the external identity
// system; the core only compares them.
const RoleAdmin = "admin"

// Caller is the identity context supplied with every request. It is opaque
// to the core: no lookups are performed against the identity system, the
// claims are trusted as given.
type Caller struct {
	UserID         int64
	OrganizationID *int64
	Roles          []string
}

// HasRole reports whether the caller carries the given role claim.
func (c Caller) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// InOrganization reports whether the caller belongs to the organization.
func (c Caller) InOrganization(orgID int64) bool {
	return c.OrganizationID != nil && *c.OrganizationID == orgID
}
