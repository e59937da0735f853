package api

import (
	"encoding/json"
	"errors"
	"net/http"

	vitrerr "github.com/amady/vitrine/internal/errors"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error response, mapping domain errors to HTTP status codes.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var notFound *vitrerr.NotFoundError
	var validation *vitrerr.ValidationError

	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case vitrerr.IsUnavailable(err):
		status = http.StatusServiceUnavailable
	case vitrerr.IsUpload(err):
		status = http.StatusBadGateway
	case vitrerr.IsWriteFailed(err):
		// A write against a missing document reads better as 404
		if isWriteNotFound(err) {
			status = http.StatusNotFound
		}
	}

	JSON(w, status, map[string]string{"error": message})
}

// isWriteNotFound checks whether a write failure was caused by a missing
// document. StoreWriteError unwraps to its sentinel, so the cause has to be
// inspected directly.
func isWriteNotFound(err error) bool {
	var write *vitrerr.StoreWriteError
	if !errors.As(err, &write) {
		return false
	}
	return vitrerr.IsNotFound(write.Cause)
}

// BadRequest writes a 400 error with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

// NotFound writes a 404 error for a named resource.
func NotFound(w http.ResponseWriter, resource, id string) {
	JSON(w, http.StatusNotFound, map[string]string{"error": resource + " not found: " + id})
}
