package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/abefas/taskapi/models"
)

// TaskService is what the task routes need from the service layer.
type TaskService interface {
	Create(ctx context.Context, in models.NewTask) (models.Task, error)
	FindAll(ctx context.Context, status, priority *string) ([]models.Task, error)
	FindByID(ctx context.Context, id string) (models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, id string) error
}

// UserStore is what the auth routes need from the user table.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// Handlers struct holds the collaborators shared by every route.
type Handlers struct {
	Tasks  TaskService
	Users  UserStore
	JWTKey []byte
}

// NewHandlers is a constructor for the Handlers struct. Users and jwtKey
// may be nil when authentication is disabled.
func NewHandlers(tasks TaskService, users UserStore, jwtKey []byte) *Handlers {
	return &Handlers{Tasks: tasks, Users: users, JWTKey: jwtKey}
}

// AuthEnabled reports whether the auth routes and middleware are in use.
func (h *Handlers) AuthEnabled() bool {
	return h.Users != nil && len(h.JWTKey) > 0
}

// respondWithJSON is a helper function to format and send JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Health reports that the server is up.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
