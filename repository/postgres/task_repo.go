package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT id, user_id, name, created_date, completion_date, is_completed, created_at, updated_at
	FROM tasks
	WHERE id = $1
	`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	const query = `
	SELECT id, user_id, name, created_date, completion_date, is_completed, created_at, updated_at
	FROM tasks
	WHERE user_id = $1
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, name, created_date, completion_date, is_completed)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Name,
		task.CreatedDate,
		nullDate(task.CompletionDate),
		task.IsCompleted,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

// Update overwrites name, created_date and completion_date only; the
// completion flag and ownership are never touched by this statement.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET name = $2,
		created_date = $3,
		completion_date = $4,
		updated_at = NOW()
	WHERE id = $1
	RETURNING is_completed, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Name,
		task.CreatedDate,
		nullDate(task.CompletionDate),
	).Scan(&task.IsCompleted, &task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Complete flips the task to completed and stamps the completion date in a
// single atomic statement, discarding any previously stored date.
func (r *taskRepository) Complete(ctx context.Context, id string, completedAt time.Time) (*domain.Task, error) {
	const query = `
	UPDATE tasks
	SET is_completed = TRUE,
		completion_date = $2,
		updated_at = NOW()
	WHERE id = $1
	RETURNING id, user_id, name, created_date, completion_date, is_completed, created_at, updated_at
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, completedAt))
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var completion *time.Time

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Name,
		&task.CreatedDate,
		&completion,
		&task.IsCompleted,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.CompletionDate = completion
	return &task, nil
}

func nullDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
