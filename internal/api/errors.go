package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/erazemk/fundbuero/internal/media"
	"github.com/erazemk/fundbuero/internal/store"
)

// requestError is a failure with a client-facing status and message.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%d: %s", e.status, e.message)
}

func badRequest(msg string) error   { return &requestError{http.StatusBadRequest, msg} }
func unauthorized(msg string) error { return &requestError{http.StatusUnauthorized, msg} }
func forbidden(msg string) error    { return &requestError{http.StatusForbidden, msg} }
func notFound(msg string) error     { return &requestError{http.StatusNotFound, msg} }

// writeError maps err onto the error taxonomy and writes it. Unexpected
// errors are logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var re *requestError
	switch {
	case errors.As(err, &re):
		jsonError(w, re.status, re.message)
	case errors.Is(err, store.ErrConflict):
		jsonError(w, http.StatusConflict, "conflicts with existing data")
	case errors.Is(err, media.ErrTooLarge):
		jsonError(w, http.StatusBadRequest, "file size must be at most 5 MiB")
	case errors.Is(err, media.ErrNotImage):
		jsonError(w, http.StatusBadRequest, "file must be an image")
	case errors.Is(err, media.ErrNotFound), errors.Is(err, media.ErrInvalidKey):
		jsonError(w, http.StatusNotFound, "file not found")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
	}
}

// bodyError turns a JSON decoding failure into a 400 naming the offending
// attribute when the decoder knows it.
func bodyError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return badRequest("invalid attributes (" + typeErr.Field + ")")
	}
	return badRequest("invalid request body")
}
