// Package apperr holds the error kinds shared by every domain package and the
// single place where they are turned into HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/EmpoweredVote/roster-backend/internal/logutil"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("already exists")
	ErrNotFound     = errors.New("not found")
	// ErrRejected is returned for any failed login. Unknown user and wrong
	// password are indistinguishable.
	ErrRejected = errors.New("invalid username or password")
)

// kinded carries a client-facing message for one of the sentinels above.
type kinded struct {
	kind error
	msg  string
}

func (e *kinded) Error() string { return e.msg }
func (e *kinded) Unwrap() error { return e.kind }

func Validation(format string, args ...any) error {
	return &kinded{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return &kinded{kind: ErrUnauthorized, msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &kinded{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &kinded{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrRejected):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write sends err as a plain text response. Errors outside the taxonomy are
// logged and answered with a generic body.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("request failed")
		http.Error(w, "Server error", status)
		return
	}
	http.Error(w, message(err), status)
}

func message(err error) string {
	var k *kinded
	if errors.As(err, &k) {
		return k.msg
	}
	switch {
	case errors.Is(err, ErrRejected):
		return "Invalid username or password"
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrConflict):
		return "Already exists"
	default:
		return "Bad request"
	}
}
