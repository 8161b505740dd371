package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable matches every failed call: transport errors, non-2xx
	// responses and undecodable bodies.
	ErrUnavailable     = errors.New("streamflix backend unavailable")
	ErrSlugRequired    = errors.New("slug is required")
	ErrKeywordRequired = errors.New("search keyword is required")
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets errors.Is(err, ErrUnavailable) hold for status failures.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnavailable
}
