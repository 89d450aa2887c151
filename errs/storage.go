package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Storage Specific Errors
var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrStorageQuery      = errors.New("storage operation failed")
	ErrStorageConnection = errors.New("storage connection failed")
)

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewStorageError creates a new storage error with details about the operation.
// NotFound sentinels pass through as 404s; everything else is the generic 500 the
// API surfaces for storage failures.
func NewStorageError(operation, entity string, cause error) *ApiErr {
	if errors.Is(cause, ErrNotFound) {
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s %w", entity, ErrNotFound),
			Cause:      cause,
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageQuery,
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsStorageQueryError(err error) bool {
	return errors.Is(err, ErrStorageQuery)
}
