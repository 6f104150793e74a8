package service

import "github.com/taskforge/todo-service/internal/core/domain"

// authorizeOwner is the single ownership rule applied after identity
// resolution and before any mutation of a user-owned record: the principal
// must be the record's owner. Permission failures are distinct from
// authentication failures and surface as 403, never 401.
func authorizeOwner(p domain.Principal, ownerID int64) error {
	if p.ID != ownerID {
		return domain.ErrNotEnoughPermissions
	}
	return nil
}
