// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum

import (
	"lexforum/internal/models"
)

// Access predicates are pure functions over (caller, forum[, thread]).
// Each switches on the closed forum-type union exactly once; call sites
// never compare type strings themselves.

// CanView reports whether the caller belongs to the forum's audience.
// Lawyer-advice forums are open to any authenticated caller; organizational
// forums require membership in the owning organization.
func CanView(c Caller, f *models.Forum) bool {
	switch f.Type {
	case models.ForumTypeLawyerAdvice:
		return true
	case models.ForumTypeOrganizational:
		return f.OrganizationID != nil && c.InOrganization(*f.OrganizationID)
	}
	return false
}

// CanManage gates forum deletion, settings updates, and category
// administration. Organizational forums: org admins only. Lawyer-advice
// forums: the creator only. Thread/post moderation is gated separately by
// CanModerateThread.
func CanManage(c Caller, f *models.Forum) bool {
	switch f.Type {
	case models.ForumTypeOrganizational:
		return c.HasRole(RoleAdmin) && f.OrganizationID != nil && c.InOrganization(*f.OrganizationID)
	case models.ForumTypeLawyerAdvice:
		return c.UserID == f.CreatedByUserID
	}
	return false
}

// CanModerateThread gates pin/close toggles and non-author thread/post
// deletion. Organizational forums: org admins. Lawyer-advice forums: the
// thread author.
func CanModerateThread(c Caller, f *models.Forum, t *models.Thread) bool {
	switch f.Type {
	case models.ForumTypeOrganizational:
		return c.HasRole(RoleAdmin) && f.OrganizationID != nil && c.InOrganization(*f.OrganizationID)
	case models.ForumTypeLawyerAdvice:
		return c.UserID == t.UserID
	}
	return false
}
