package policy

import "todoapp/internal/models"

// Ownership rules for todos. Any authenticated user may create; only the
// owner may view, update or delete.

func CanCreate(userID int64) bool {
	return userID != 0
}

func CanView(userID int64, t *models.Todo) bool {
	return t != nil && t.UserID == userID
}

func CanUpdate(userID int64, t *models.Todo) bool {
	return t != nil && t.UserID == userID
}

func CanDelete(userID int64, t *models.Todo) bool {
	return t != nil && t.UserID == userID
}
