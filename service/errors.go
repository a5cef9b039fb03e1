package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("task not found")
	ErrStoreNil      = errors.New("task store is nil")
	ErrInvalidFilter = errors.New("invalid filter")
)

// NotFoundError reports a task id absent from the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task with ID %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError wraps a failing store call. Its message never carries the
// driver's text; use Unwrap to get at the cause.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage unavailable"
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Cause describes the failed operation for logs.
func (e *StorageError) Cause() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}
