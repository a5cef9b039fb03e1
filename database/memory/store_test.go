package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/abefas/taskapi/models"
)

func TestTaskStore_CreateAssignsIDAndTimestamps(t *testing.T) {
	s := NewTaskStore()
	ctx := context.Background()

	a, _ := s.Create(ctx, models.Task{Title: "a", Status: models.StatusPending})
	b, _ := s.Create(ctx, models.Task{Title: "b", Status: models.StatusPending})

	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("ids=%q,%q, want unique non-empty", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() || !a.CreatedAt.Equal(a.UpdatedAt) {
		t.Fatalf("timestamps=%v/%v", a.CreatedAt, a.UpdatedAt)
	}

	got, err := s.FindByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("FindByID() err=%v", err)
	}
	if diff := cmp.Diff(a, got); diff != "" {
		t.Fatalf("FindByID() mismatch (-want +got):\n%s", diff)
	}
}

func TestTaskStore_FindKeepsInsertionOrder(t *testing.T) {
	s := NewTaskStore()
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		s.Create(ctx, models.Task{Title: title, Status: models.StatusPending, Priority: 1})
	}
	s.Create(ctx, models.Task{Title: "d", Status: models.StatusCompleted, Priority: 1})

	pending := models.StatusPending
	tasks, err := s.Find(ctx, models.TaskFilter{Status: &pending})
	if err != nil {
		t.Fatalf("Find() err=%v", err)
	}
	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, titles); diff != "" {
		t.Fatalf("Find() mismatch (-want +got):\n%s", diff)
	}
}

func TestTaskStore_SaveKeepsCreatedAt(t *testing.T) {
	s := NewTaskStore()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	created, _ := s.Create(ctx, models.Task{Title: "a", Status: models.StatusPending})

	changed := created
	changed.Title = "b"
	changed.CreatedAt = time.Time{}
	saved, err := s.Save(ctx, changed)
	if err != nil {
		t.Fatalf("Save() err=%v", err)
	}
	if !saved.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt=%v, want %v", saved.CreatedAt, created.CreatedAt)
	}
	if !saved.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("UpdatedAt=%v, want after %v", saved.UpdatedAt, created.UpdatedAt)
	}
}

func TestTaskStore_RemoveAndMissing(t *testing.T) {
	s := NewTaskStore()
	ctx := context.Background()

	a, _ := s.Create(ctx, models.Task{Title: "a"})
	if err := s.Remove(ctx, a.ID); err != nil {
		t.Fatalf("Remove() err=%v", err)
	}

	if _, err := s.FindByID(ctx, a.ID); !errors.Is(err, models.ErrTaskNotFound) {
		t.Fatalf("FindByID() err=%v, want %v", err, models.ErrTaskNotFound)
	}
	if err := s.Remove(ctx, a.ID); !errors.Is(err, models.ErrTaskNotFound) {
		t.Fatalf("Remove() err=%v, want %v", err, models.ErrTaskNotFound)
	}
	if _, err := s.Save(ctx, a); !errors.Is(err, models.ErrTaskNotFound) {
		t.Fatalf("Save() err=%v, want %v", err, models.ErrTaskNotFound)
	}

	tasks, _ := s.Find(ctx, models.TaskFilter{})
	if len(tasks) != 0 {
		t.Fatalf("len(tasks)=%d, want 0", len(tasks))
	}
}

func TestTaskStore_ConcurrentCreate(t *testing.T) {
	s := NewTaskStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Create(ctx, models.Task{Title: "t", Status: models.StatusPending})
		}()
	}
	wg.Wait()

	tasks, _ := s.Find(ctx, models.TaskFilter{})
	if len(tasks) != 50 {
		t.Fatalf("len(tasks)=%d, want 50", len(tasks))
	}
}

func TestUserStore(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()

	u, err := s.Create(ctx, "ann", "hash")
	if err != nil {
		t.Fatalf("Create() err=%v", err)
	}
	if _, err := s.Create(ctx, "ann", "x"); !errors.Is(err, models.ErrUsernameTaken) {
		t.Fatalf("Create() err=%v, want %v", err, models.ErrUsernameTaken)
	}

	got, err := s.FindByUsername(ctx, "ann")
	if err != nil || got.ID != u.ID {
		t.Fatalf("FindByUsername()=%+v, %v", got, err)
	}
	if _, err := s.FindByUsername(ctx, "bob"); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("FindByUsername() err=%v, want %v", err, models.ErrUserNotFound)
	}
}
