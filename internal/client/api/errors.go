package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tinylink/tinylink-cli/internal/common"
)

var (
	// ErrUnavailable wraps transport-level failures (connection refused,
	// timeout, DNS). Match with errors.Is.
	ErrUnavailable = errors.New("server unavailable")

	// ErrInvalidResponse marks a success payload that is malformed for the
	// operation, e.g. a login response missing the token or the user.
	ErrInvalidResponse = errors.New("invalid response from server")
)

// RequestError is returned for any non-success HTTP status. The fields
// exist for user-visible reporting; a couple of well-known statuses also
// unwrap to sentinels so upper layers can match with errors.Is without
// reading status codes themselves.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %d - %s", e.Status, e.Body)
}

func (e *RequestError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	}
	return nil
}
