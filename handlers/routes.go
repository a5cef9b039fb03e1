package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abefas/taskapi/middleware"
)

// NewRouter defines the API routes and links them to the handler functions.
// Task routes sit behind the JWT middleware when auth is enabled.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Logging)

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	tasks := router.PathPrefix("/tasks").Subrouter()
	if h.AuthEnabled() {
		router.HandleFunc("/auth/register", h.RegisterUser).Methods(http.MethodPost)
		router.HandleFunc("/auth/login", h.LoginUser).Methods(http.MethodPost)
		tasks.Use(middleware.Auth(h.JWTKey))
	}

	tasks.HandleFunc("", h.GetTasks).Methods(http.MethodGet)
	tasks.HandleFunc("", h.CreateTask).Methods(http.MethodPost)
	tasks.HandleFunc("/{id}", h.GetTask).Methods(http.MethodGet)
	tasks.HandleFunc("/{id}", h.UpdateTask).Methods(http.MethodPut)
	tasks.HandleFunc("/{id}", h.DeleteTask).Methods(http.MethodDelete)

	return router
}
