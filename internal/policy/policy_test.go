package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"todoapp/internal/models"
)

func TestOwnerAllowed(t *testing.T) {
	todo := &models.Todo{ID: 7, UserID: 1}

	assert.True(t, CanView(1, todo))
	assert.True(t, CanUpdate(1, todo))
	assert.True(t, CanDelete(1, todo))
}

func TestNonOwnerDenied(t *testing.T) {
	todo := &models.Todo{ID: 7, UserID: 1}

	assert.False(t, CanView(2, todo))
	assert.False(t, CanUpdate(2, todo))
	assert.False(t, CanDelete(2, todo))
}

func TestCreate(t *testing.T) {
	assert.True(t, CanCreate(1))
	assert.False(t, CanCreate(0))
}

func TestNilTodo(t *testing.T) {
	assert.False(t, CanView(1, nil))
	assert.False(t, CanUpdate(1, nil))
	assert.False(t, CanDelete(1, nil))
}
