package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/abefas/taskapi/models"
)

// --- fakes ---

type fakeStore struct {
	createFn   func(models.Task) (models.Task, error)
	findFn     func(models.TaskFilter) ([]models.Task, error)
	findByIDFn func(string) (models.Task, error)
	saveFn     func(models.Task) (models.Task, error)
	removeFn   func(string) error
}

func (s *fakeStore) Create(_ context.Context, t models.Task) (models.Task, error) {
	return s.createFn(t)
}
func (s *fakeStore) Find(_ context.Context, f models.TaskFilter) ([]models.Task, error) {
	return s.findFn(f)
}
func (s *fakeStore) FindByID(_ context.Context, id string) (models.Task, error) {
	return s.findByIDFn(id)
}
func (s *fakeStore) Save(_ context.Context, t models.Task) (models.Task, error) {
	return s.saveFn(t)
}
func (s *fakeStore) Remove(_ context.Context, id string) error {
	return s.removeFn(id)
}

// absentStore fails every lookup and every write.
func absentStore(t *testing.T) *fakeStore {
	return &fakeStore{
		createFn: func(models.Task) (models.Task, error) { return models.Task{}, nil },
		findFn:   func(models.TaskFilter) ([]models.Task, error) { return nil, nil },
		findByIDFn: func(string) (models.Task, error) {
			return models.Task{}, models.ErrTaskNotFound
		},
		saveFn: func(models.Task) (models.Task, error) {
			t.Fatalf("Save() should not be called for a missing task")
			return models.Task{}, nil
		},
		removeFn: func(string) error {
			t.Fatalf("Remove() should not be called for a missing task")
			return nil
		},
	}
}

func newService(t *testing.T, store TaskStore) *TaskService {
	t.Helper()

	svc, err := New(store)
	if err != nil {
		t.Fatalf("New() err=%v, want nil", err)
	}
	return svc
}

var ts = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// --- tests ---

func TestNew_NilStore(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrStoreNil) {
		t.Fatalf("New() err=%v, want %v", err, ErrStoreNil)
	}
}

func TestCreate_ForcesPending(t *testing.T) {
	for _, status := range []string{"", models.StatusCompleted, models.StatusInProgress, "bogus"} {
		var stored models.Task
		svc := newService(t, &fakeStore{
			createFn: func(task models.Task) (models.Task, error) {
				stored = task
				task.ID = "id-1"
				task.CreatedAt, task.UpdatedAt = ts, ts
				return task, nil
			},
		})

		out, err := svc.Create(context.Background(), models.NewTask{
			Title: "New Task", Description: "Description", Priority: 1, Status: status,
		})
		if err != nil {
			t.Fatalf("Create() err=%v, want nil", err)
		}
		if stored.Status != models.StatusPending {
			t.Fatalf("stored.Status=%q, want %q", stored.Status, models.StatusPending)
		}

		want := models.Task{
			ID: "id-1", Title: "New Task", Description: "Description", Priority: 1,
			Status: models.StatusPending, CreatedAt: ts, UpdatedAt: ts,
		}
		if diff := cmp.Diff(want, out); diff != "" {
			t.Fatalf("Create() mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCreate_StoreFailure(t *testing.T) {
	cause := errors.New("connection refused")
	svc := newService(t, &fakeStore{
		createFn: func(models.Task) (models.Task, error) { return models.Task{}, cause },
	})

	_, err := svc.Create(context.Background(), models.NewTask{Title: "t"})

	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("Create() err=%v, want *StorageError", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("Create() err does not wrap cause")
	}
	if err.Error() != "storage unavailable" {
		t.Fatalf("Error()=%q, want %q", err.Error(), "storage unavailable")
	}
}

func TestFindAll_Filters(t *testing.T) {
	str := func(s string) *string { return &s }
	intp := func(i int) *int { return &i }

	tests := []struct {
		name     string
		status   *string
		priority *string
		want     models.TaskFilter
	}{
		{"none", nil, nil, models.TaskFilter{}},
		{"empty strings", str(""), str(""), models.TaskFilter{}},
		{"status", str("pending"), nil, models.TaskFilter{Status: str("pending")}},
		{"priority", nil, str("2"), models.TaskFilter{Priority: intp(2)}},
		{"both", str("completed"), str(" 4 "), models.TaskFilter{Status: str("completed"), Priority: intp(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.TaskFilter
			svc := newService(t, &fakeStore{
				findFn: func(f models.TaskFilter) ([]models.Task, error) {
					got = f
					return nil, nil
				},
			})

			tasks, err := svc.FindAll(context.Background(), tt.status, tt.priority)
			if err != nil {
				t.Fatalf("FindAll() err=%v", err)
			}
			if tasks == nil {
				t.Fatalf("FindAll() returned nil slice, want empty")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindAll_InvalidPriority(t *testing.T) {
	svc := newService(t, &fakeStore{
		findFn: func(models.TaskFilter) ([]models.Task, error) {
			t.Fatalf("Find() should not be called on an invalid filter")
			return nil, nil
		},
	})

	bad := "high"
	_, err := svc.FindAll(context.Background(), nil, &bad)
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("FindAll() err=%v, want %v", err, ErrInvalidFilter)
	}
}

func TestMissingTask_NotFoundEverywhere(t *testing.T) {
	svc := newService(t, absentStore(t))
	ctx := context.Background()
	title := "T"

	_, err := svc.FindByID(ctx, "100")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindByID() err=%v, want %v", err, ErrNotFound)
	}
	_, err = svc.Update(ctx, "100", models.TaskPatch{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update() err=%v, want %v", err, ErrNotFound)
	}
	err = svc.Delete(ctx, "100")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete() err=%v, want %v", err, ErrNotFound)
	}
	if err.Error() != "Task with ID 100 not found" {
		t.Fatalf("Error()=%q", err.Error())
	}
}

func TestFindByID_StoreFailure(t *testing.T) {
	svc := newService(t, &fakeStore{
		findByIDFn: func(string) (models.Task, error) { return models.Task{}, errors.New("boom") },
	})

	_, err := svc.FindByID(context.Background(), "x")
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("FindByID() err=%v, want *StorageError", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("storage failure must not look like not found")
	}
}

func TestUpdate_MergesPresentFields(t *testing.T) {
	existing := models.Task{
		ID: "id-1", Title: "old", Description: "desc", Priority: 3,
		Status: models.StatusInProgress, CreatedAt: ts, UpdatedAt: ts,
	}
	var saved models.Task
	svc := newService(t, &fakeStore{
		findByIDFn: func(id string) (models.Task, error) {
			if id != "id-1" {
				t.Fatalf("FindByID(id)=%q, want id-1", id)
			}
			return existing, nil
		},
		saveFn: func(task models.Task) (models.Task, error) {
			saved = task
			task.Touch(ts)
			return task, nil
		},
	})

	title := "new"
	out, err := svc.Update(context.Background(), "id-1", models.TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update() err=%v", err)
	}

	want := existing
	want.Title = "new"
	if diff := cmp.Diff(want, saved); diff != "" {
		t.Fatalf("saved mismatch (-want +got):\n%s", diff)
	}
	if !out.UpdatedAt.After(existing.UpdatedAt) {
		t.Fatalf("UpdatedAt=%v, want after %v", out.UpdatedAt, existing.UpdatedAt)
	}
}

func TestUpdate_RowVanishedBeforeSave(t *testing.T) {
	svc := newService(t, &fakeStore{
		findByIDFn: func(id string) (models.Task, error) { return models.Task{ID: id}, nil },
		saveFn: func(models.Task) (models.Task, error) {
			return models.Task{}, models.ErrTaskNotFound
		},
	})

	_, err := svc.Update(context.Background(), "gone", models.TaskPatch{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update() err=%v, want %v", err, ErrNotFound)
	}
}

func TestDelete_RemovesExisting(t *testing.T) {
	var removed string
	svc := newService(t, &fakeStore{
		findByIDFn: func(id string) (models.Task, error) { return models.Task{ID: id}, nil },
		removeFn: func(id string) error {
			removed = id
			return nil
		},
	})

	if err := svc.Delete(context.Background(), "id-9"); err != nil {
		t.Fatalf("Delete() err=%v", err)
	}
	if removed != "id-9" {
		t.Fatalf("Remove(id)=%q, want id-9", removed)
	}
}
