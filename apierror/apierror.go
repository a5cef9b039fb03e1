// Package apierror turns any error reaching the HTTP boundary into a
// uniform {status, message} JSON body.
package apierror

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/abefas/taskapi/service"
	"github.com/abefas/taskapi/validation"
)

const defaultMessage = "Internal Server Error"

// Body is the error payload. Message is a string or a list of strings.
type Body struct {
	Status  int `json:"status"`
	Message any `json:"message"`
}

// HTTPError is raised deliberately with a status and message.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// New returns an *HTTPError.
func New(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// From maps err to a status code and body.
func From(err error) (int, Body) {
	var (
		herr *HTTPError
		verr *validation.Error
		serr *service.StorageError
	)

	switch {
	case errors.As(err, &herr):
		return body(herr.Status, herr.Message)
	case errors.As(err, &verr):
		return body(http.StatusBadRequest, verr.Messages())
	case errors.Is(err, service.ErrInvalidFilter):
		return body(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return body(http.StatusNotFound, err.Error())
	case errors.As(err, &serr):
		return body(http.StatusInternalServerError, serr.Error())
	}

	message := defaultMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return body(http.StatusInternalServerError, message)
}

// Write sends the mapped body for err. Server errors are logged with their cause.
func Write(w http.ResponseWriter, err error) {
	status, b := From(err)
	if status >= http.StatusInternalServerError {
		var serr *service.StorageError
		if errors.As(err, &serr) {
			log.Printf("storage error: %s", serr.Cause())
		} else {
			log.Printf("internal error: %v", err)
		}
	}

	response, _ := json.Marshal(b)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func body(status int, message any) (int, Body) {
	return status, Body{Status: status, Message: message}
}
