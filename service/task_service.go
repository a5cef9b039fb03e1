package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abefas/taskapi/models"
)

type TaskStore interface {
	Create(ctx context.Context, task models.Task) (models.Task, error)
	Find(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	FindByID(ctx context.Context, id string) (models.Task, error)
	Save(ctx context.Context, task models.Task) (models.Task, error)
	Remove(ctx context.Context, id string) error
}

type TaskService struct {
	store TaskStore
}

func New(store TaskStore) (*TaskService, error) {
	if store == nil {
		return nil, ErrStoreNil
	}

	return &TaskService{store: store}, nil
}

// Create persists a new task. Status is always pending, whatever the caller sent.
func (s *TaskService) Create(ctx context.Context, in models.NewTask) (models.Task, error) {
	task := models.Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      models.StatusPending,
	}

	created, err := s.store.Create(ctx, task)
	if err != nil {
		return models.Task{}, &StorageError{Op: "create task", Err: err}
	}
	return created, nil
}

// FindAll lists tasks, applying each filter only when it is given.
// The priority filter arrives as raw query text and is coerced to an integer.
func (s *TaskService) FindAll(ctx context.Context, status, priority *string) ([]models.Task, error) {
	var filter models.TaskFilter
	if status != nil && *status != "" {
		filter.Status = status
	}
	if priority != nil && *priority != "" {
		p, err := strconv.Atoi(strings.TrimSpace(*priority))
		if err != nil {
			return nil, fmt.Errorf("%w: priority %q is not an integer", ErrInvalidFilter, *priority)
		}
		filter.Priority = &p
	}

	tasks, err := s.store.Find(ctx, filter)
	if err != nil {
		return nil, &StorageError{Op: "find tasks", Err: err}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// FindByID returns the task or a *NotFoundError.
func (s *TaskService) FindByID(ctx context.Context, id string) (models.Task, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Task{}, s.storeErr("find task", id, err)
	}
	return task, nil
}

// Update merges the fields present in patch onto the stored task.
func (s *TaskService) Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	task, err := s.FindByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	patch.Apply(&task)

	saved, err := s.store.Save(ctx, task)
	if err != nil {
		return models.Task{}, s.storeErr("save task", id, err)
	}
	return saved, nil
}

// Delete removes the task, failing with *NotFoundError when it is absent.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return s.storeErr("remove task", id, err)
	}
	return nil
}

func (s *TaskService) storeErr(op, id string, err error) error {
	if errors.Is(err, models.ErrTaskNotFound) {
		return &NotFoundError{ID: id}
	}
	return &StorageError{Op: op, Err: err}
}
