// Package permissions implements the role- and ownership-based access rules
// as pure functions over plain request data. Handlers feed it the HTTP
// method, the authenticated user (if any) and, for object-level checks, the
// resource owner; no framework types leak in here.
package permissions

import (
	"net/http"

	"github.com/reviewhub/review-service/internal/models"
)

// Privilege is the effective access level derived from role plus the
// superuser flag. Superuser status is equivalent to admin.
type Privilege int

const (
	PrivilegeUser Privilege = iota
	PrivilegeModerator
	PrivilegeAdmin
)

// PrivilegeOf maps (role, superuser flag) to an effective privilege level.
func PrivilegeOf(role models.UserRole, superuser bool) Privilege {
	if superuser {
		return PrivilegeAdmin
	}
	switch role {
	case models.RoleAdmin:
		return PrivilegeAdmin
	case models.RoleModerator:
		return PrivilegeModerator
	default:
		return PrivilegeUser
	}
}

// IsSafeMethod reports whether the HTTP method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOnly permits only authenticated admins (or superusers).
func AdminOnly(user *models.User) bool {
	return user != nil && PrivilegeOf(user.Role, user.IsSuperuser) == PrivilegeAdmin
}

// AdminOrReadOnly permits safe methods for anyone and mutations for admins
// and superusers only.
func AdminOrReadOnly(method string, user *models.User) bool {
	return IsSafeMethod(method) || AdminOnly(user)
}

// CollectionCheck is the pre-fetch half of the admin/moderator/author policy:
// safe methods pass for anyone, mutations require authentication. Ownership
// is unknowable before the object is loaded, so an anonymous write is denied
// here without touching the store.
func CollectionCheck(method string, user *models.User) bool {
	return IsSafeMethod(method) || user != nil
}

// ObjectCheck is the post-fetch half: safe methods pass for anyone; mutations
// require admin or moderator privilege, or ownership of the resource.
func ObjectCheck(method string, user *models.User, ownerID uint) bool {
	if IsSafeMethod(method) {
		return true
	}
	if user == nil {
		return false
	}
	if PrivilegeOf(user.Role, user.IsSuperuser) >= PrivilegeModerator {
		return true
	}
	return user.ID == ownerID
}
