package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abefas/taskapi/models"
)

// TaskStore keeps tasks in the tasks table.
type TaskStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewTaskStore is a constructor for the TaskStore struct.
func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Task{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

// Create inserts a new task, assigning its id and timestamps.
func (s *TaskStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	task.ID = uuid.NewString()
	task.CreatedAt = models.Timestamp(s.now())
	task.UpdatedAt = task.CreatedAt

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks("+taskColumns+") VALUES($1, $2, $3, $4, $5, $6, $7)",
		task.ID, task.Title, task.Description, task.Priority, task.Status, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

// Find lists the tasks matching filter, oldest first.
func (s *TaskStore) Find(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	query, args := buildTaskQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return tasks, nil
}

// FindByID returns models.ErrTaskNotFound when no row has id.
func (s *TaskStore) FindByID(ctx context.Context, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, models.ErrTaskNotFound
	} else if err != nil {
		return models.Task{}, fmt.Errorf("select task: %w", err)
	}
	return t, nil
}

// Save writes every mutable column of task and refreshes updated_at.
func (s *TaskStore) Save(ctx context.Context, task models.Task) (models.Task, error) {
	task.Touch(s.now())

	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET title=$1, description=$2, priority=$3, status=$4, updated_at=$5 WHERE id=$6",
		task.Title, task.Description, task.Priority, task.Status, task.UpdatedAt, task.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	if err := requireRow(res); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// Remove deletes the task with id.
func (s *TaskStore) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}
