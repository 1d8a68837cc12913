package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden access")
	ErrBadRequest         = errors.New("bad request")
	ErrConflict           = errors.New("resource conflict") // e.g., username already exists
	ErrInternalServer     = errors.New("internal server error")
	ErrValidation         = errors.New("validation failed")
	ErrServiceUnavailable = errors.New("service unavailable") // e.g. avatar storage not configured
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
// Conflicts are reported as 400, which is what existing clients expect.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrServiceUnavailable) {
		return http.StatusServiceUnavailable
	}
	if IsUniqueViolation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return true
	}
	return false
}

// PublicMessage returns the text shown to API callers. Internal failures are
// not echoed back.
func PublicMessage(err error) string {
	if HTTPStatusFromError(err) == http.StatusInternalServerError {
		return ErrInternalServer.Error()
	}
	return err.Error()
}

// DomainError carries a caller-facing message while still matching its
// sentinel kind with errors.Is.
type DomainError struct {
	Kind error
	Msg  string
}

func (e *DomainError) Error() string { return e.Msg }
func (e *DomainError) Unwrap() error { return e.Kind }

func NewError(kind error, msg string) error {
	return &DomainError{Kind: kind, Msg: msg}
}
