package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDefaults(t *testing.T) {
	repo := &fakeTodoRepo{}
	svc := NewTodoService(repo)

	todo, err := svc.Create(context.Background(), 1, "Buy milk", false, nil)
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", todo.Title)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.ReminderAt)
	assert.Equal(t, int64(1), todo.UserID)
	assert.False(t, todo.CreatedAt.IsZero())

	// shows up in the owner's list
	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Buy milk", list[0].Title)
}

func TestPartialUpdateKeepsOtherFields(t *testing.T) {
	repo := &fakeTodoRepo{}
	svc := NewTodoService(repo)

	rem := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), 1, "Water plants", false, &rem)
	require.NoError(t, err)

	completed := true
	updated, err := svc.Update(context.Background(), 1, created.ID, &TodoUpdate{Completed: &completed})
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	assert.Equal(t, "Water plants", updated.Title)
	require.NotNil(t, updated.ReminderAt)
	assert.Equal(t, rem, *updated.ReminderAt)
}

func TestUpdateClearsReminderExplicitly(t *testing.T) {
	repo := &fakeTodoRepo{}
	svc := NewTodoService(repo)

	rem := time.Now().Add(time.Hour)
	created, err := svc.Create(context.Background(), 1, "Call dentist", false, &rem)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), 1, created.ID, &TodoUpdate{SetReminder: true, ReminderAt: nil})
	require.NoError(t, err)
	assert.Nil(t, updated.ReminderAt)
}

func TestForeignTodoLooksMissing(t *testing.T) {
	repo := &fakeTodoRepo{}
	svc := NewTodoService(repo)

	created, err := svc.Create(context.Background(), 1, "Private", false, nil)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, created.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)

	title := "hijacked"
	_, err = svc.Update(context.Background(), 2, created.ID, &TodoUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrTodoNotFound)

	err = svc.Delete(context.Background(), 2, created.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)

	// owner still sees it untouched
	got, err := svc.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestDeleteRemoves(t *testing.T) {
	repo := &fakeTodoRepo{}
	svc := NewTodoService(repo)

	created, err := svc.Create(context.Background(), 1, "Temp", false, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1, created.ID))

	_, err = svc.Get(context.Background(), 1, created.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestGetUnknownID(t *testing.T) {
	svc := NewTodoService(&fakeTodoRepo{})
	_, err := svc.Get(context.Background(), 1, 12345)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}
