package models

import (
	"errors"
	"time"
)

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in progress"
	StatusCompleted  = "completed"
)

// Statuses lists every status a task may hold.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// Priorities lists every priority a task may hold.
var Priorities = []int{0, 1, 2, 3, 4}

// ErrTaskNotFound is returned by task stores when no row matches an id.
var ErrTaskNotFound = errors.New("task does not exist")

// Task represents our task model, mapping to the tasks table.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTask carries a validated create payload.
// Status is whatever the caller sent; the service overrides it.
type NewTask struct {
	Title       string
	Description string
	Priority    int
	Status      string
}

// TaskPatch carries a validated update payload. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *int
	Status      *string
}

// Apply merges the fields present in p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// TaskFilter restricts a listing. Nil fields are not applied.
type TaskFilter struct {
	Status   *string
	Priority *int
}

// Matches reports whether t satisfies every filter that is set.
func (f TaskFilter) Matches(t Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	return true
}

// Timestamp returns now in the precision the stores persist.
func Timestamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Microsecond)
}

// Touch refreshes UpdatedAt, keeping it strictly after its previous value.
func (t *Task) Touch(now time.Time) {
	now = Timestamp(now)
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Microsecond)
	}
	t.UpdatedAt = now
}

