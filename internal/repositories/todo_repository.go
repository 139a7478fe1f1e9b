package repositories

import (
	"context"
	"database/sql"
	"time"

	"todoapp/internal/models"
)

type TodoRepository interface {
	Store(ctx context.Context, todo *models.Todo) error
	FindByID(ctx context.Context, id int64) (*models.Todo, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, id int64) error

	// ListPendingReminders returns todos whose reminder_at falls inside
	// [from, until], not completed and not yet reminded, oldest reminder first.
	ListPendingReminders(ctx context.Context, from, until time.Time) ([]models.Todo, error)
	// MarkReminded sets reminded_at once; a second call is a no-op.
	MarkReminded(ctx context.Context, id int64, at time.Time) error
}

type todoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Store(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO todos (user_id, title, completed, reminder_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		todo.UserID, todo.Title, todo.Completed, todo.ReminderAt,
		todo.CreatedAt, todo.UpdatedAt,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
}

func (r *todoRepository) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	query := `SELECT id, user_id, title, completed, reminder_at, reminded_at, created_at, updated_at
		FROM todos WHERE id = $1`
	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&todo.ID, &todo.UserID, &todo.Title, &todo.Completed,
		&todo.ReminderAt, &todo.RemindedAt, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return todo, nil
}

func (r *todoRepository) FindByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	query := `SELECT id, user_id, title, completed, reminder_at, reminded_at, created_at, updated_at
		FROM todos WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Completed,
			&t.ReminderAt, &t.RemindedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *todoRepository) Update(ctx context.Context, todo *models.Todo) error {
	query := `
		UPDATE todos SET title=$1, completed=$2, reminder_at=$3, updated_at=$4
		WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Completed, todo.ReminderAt, todo.UpdatedAt, todo.ID,
	)
	return err
}

func (r *todoRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	return err
}

func (r *todoRepository) ListPendingReminders(ctx context.Context, from, until time.Time) ([]models.Todo, error) {
	q := `
SELECT id, user_id, title, completed, reminder_at, reminded_at, created_at, updated_at
FROM todos
WHERE reminder_at IS NOT NULL
  AND reminder_at >= $1
  AND reminder_at <= $2
  AND completed = FALSE
  AND reminded_at IS NULL
ORDER BY reminder_at ASC`
	rows, err := r.db.QueryContext(ctx, q, from, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Completed,
			&t.ReminderAt, &t.RemindedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *todoRepository) MarkReminded(ctx context.Context, id int64, at time.Time) error {
	// reminded_at is set once and never overwritten
	_, err := r.db.ExecContext(ctx,
		`UPDATE todos SET reminded_at=$1, updated_at=NOW() WHERE id=$2 AND reminded_at IS NULL`, at, id)
	return err
}
