package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abefas/taskapi/apierror"
	"github.com/abefas/taskapi/middleware"
	"github.com/abefas/taskapi/validation"
)

// GetTasks lists tasks. The status and priority query parameters are
// handed to the service as given.
func (h *Handlers) GetTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var status, priority *string
	if query.Has("status") {
		s := query.Get("status")
		status = &s
	}
	if query.Has("priority") {
		p := query.Get("priority")
		priority = &p
	}

	tasks, err := h.Tasks.FindAll(r.Context(), status, priority)
	if err != nil {
		apierror.Write(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tasks)
}

// GetTask retrieves a single task by its ID.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.Tasks.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		apierror.Write(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

// CreateTask validates the body and creates a pending task.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	payload, err := validation.Decode(r.Body)
	if err != nil {
		apierror.Write(w, err)
		return
	}
	in, err := validation.ValidateCreate(payload)
	if err != nil {
		apierror.Write(w, err)
		return
	}

	task, err := h.Tasks.Create(r.Context(), in)
	if err != nil {
		apierror.Write(w, err)
		return
	}

	if userID, ok := middleware.UserID(r.Context()); ok {
		log.Printf("Task %s created by user %s", task.ID, userID)
	}

	respondWithJSON(w, http.StatusCreated, task)
}

// UpdateTask validates the body and merges it onto an existing task.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	payload, err := validation.Decode(r.Body)
	if err != nil {
		apierror.Write(w, err)
		return
	}
	patch, err := validation.ValidateUpdate(payload)
	if err != nil {
		apierror.Write(w, err)
		return
	}

	task, err := h.Tasks.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		apierror.Write(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task by its ID.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		apierror.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
