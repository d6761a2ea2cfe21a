package api

import (
	"fmt"
	"net/http"

	"github.com/phoenix-letters/phoenix-go/internal/common"
)

// Error is a non-2xx response from the Phoenix API. It unwraps to the
// matching sentinel in the common package, so callers can use errors.Is.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrAlreadyExists
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return common.ErrValidation
	default:
		return nil
	}
}
