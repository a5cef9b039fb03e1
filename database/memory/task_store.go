package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abefas/taskapi/models"
)

type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
	order []string
	now   func() time.Time
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]models.Task),
		now:   time.Now,
	}
}

func (s *TaskStore) Create(_ context.Context, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = uuid.NewString()
	task.CreatedAt = models.Timestamp(s.now())
	task.UpdatedAt = task.CreatedAt

	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)

	return task, nil
}

// Find returns matching tasks in insertion order.
func (s *TaskStore) Find(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		if t := s.tasks[id]; filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TaskStore) FindByID(_ context.Context, id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, models.ErrTaskNotFound
	}
	return t, nil
}

func (s *TaskStore) Save(_ context.Context, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[task.ID]
	if !ok {
		return models.Task{}, models.ErrTaskNotFound
	}

	task.CreatedAt = current.CreatedAt
	task.UpdatedAt = current.UpdatedAt
	task.Touch(s.now())
	s.tasks[task.ID] = task

	return task, nil
}

func (s *TaskStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return models.ErrTaskNotFound
	}
	delete(s.tasks, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
