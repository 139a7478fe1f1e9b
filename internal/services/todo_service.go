package services

import (
	"context"
	"errors"
	"time"

	"todoapp/internal/models"
	"todoapp/internal/policy"
	"todoapp/internal/repositories"
)

// ErrTodoNotFound covers both a missing todo and a todo owned by someone
// else. Collapsing the two keeps other users' todo ids unguessable.
var ErrTodoNotFound = errors.New("todo not found")

// TodoUpdate carries a partial update. Nil pointers mean "leave unchanged";
// SetReminder distinguishes clearing reminder_at from not touching it.
type TodoUpdate struct {
	Title       *string
	Completed   *bool
	ReminderAt  *time.Time
	SetReminder bool
}

// TodoService defines the owner-scoped business logic for todos.
type TodoService interface {
	List(ctx context.Context, actorID int64) ([]models.Todo, error)
	Create(ctx context.Context, actorID int64, title string, completed bool, reminderAt *time.Time) (*models.Todo, error)
	Get(ctx context.Context, actorID, id int64) (*models.Todo, error)
	Update(ctx context.Context, actorID, id int64, upd *TodoUpdate) (*models.Todo, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type todoService struct {
	repo repositories.TodoRepository
}

func NewTodoService(repo repositories.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func (s *todoService) List(ctx context.Context, actorID int64) ([]models.Todo, error) {
	return s.repo.FindByOwner(ctx, actorID)
}

func (s *todoService) Create(ctx context.Context, actorID int64, title string, completed bool, reminderAt *time.Time) (*models.Todo, error) {
	now := time.Now()
	todo := &models.Todo{
		UserID:     actorID,
		Title:      title,
		Completed:  completed,
		ReminderAt: reminderAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Store(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Get(ctx context.Context, actorID, id int64) (*models.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(actorID, todo) {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, actorID, id int64, upd *TodoUpdate) (*models.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanUpdate(actorID, todo) {
		return nil, ErrTodoNotFound
	}

	if upd.Title != nil {
		todo.Title = *upd.Title
	}
	if upd.Completed != nil {
		todo.Completed = *upd.Completed
	}
	if upd.SetReminder {
		todo.ReminderAt = upd.ReminderAt
	}
	todo.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, actorID, id int64) error {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDelete(actorID, todo) {
		return ErrTodoNotFound
	}
	return s.repo.Delete(ctx, todo.ID)
}
