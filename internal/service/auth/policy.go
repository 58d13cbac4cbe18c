package auth

import (
	"slices"

	"articles-admin/internal/domain/entity"
)

// Actions guarded by the policy.
const (
	ActionArticlesList   = "articles:list"
	ActionArticlesCreate = "articles:create"
	ActionArticlesUpdate = "articles:update"
	ActionArticlesDelete = "articles:delete"
)

// Policy decides whether a user may perform an action.
type Policy interface {
	CanAccess(user *entity.User, action string) bool
}

// RolePolicy grants actions per role. A user may perform an action when any
// of its effective roles grants it.
type RolePolicy struct {
	Grants map[string][]string
}

// DefaultPolicy reserves every article action to ROLE_ADMIN.
// ROLE_USER holds no admin actions.
func DefaultPolicy() *RolePolicy {
	return &RolePolicy{Grants: map[string][]string{
		entity.RoleAdmin: {
			ActionArticlesList,
			ActionArticlesCreate,
			ActionArticlesUpdate,
			ActionArticlesDelete,
		},
		entity.RoleUser: {},
	}}
}

// CanAccess implements Policy. A nil user is always denied.
func (p *RolePolicy) CanAccess(user *entity.User, action string) bool {
	if user == nil || action == "" {
		return false
	}
	for _, role := range user.EffectiveRoles() {
		if slices.Contains(p.Grants[role], action) {
			return true
		}
	}
	return false
}
