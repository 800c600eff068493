package users

import (
	"errors"

	"github.com/lib/pq"
)

var ErrNotFound = errors.New("user not found")

// StorageError is a persistence failure with a message that is safe to
// show to clients. The underlying error stays server-side.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// sanitize converts a raw store error into a *StorageError.
func sanitize(err error) *StorageError {
	msg := "unexpected database error"

	if errors.Is(err, ErrEmailTaken) {
		return &StorageError{Message: "email is already registered", Err: err}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			msg = "email is already registered"
		case "not_null_violation":
			msg = "a required field is missing"
		case "string_data_right_truncation":
			msg = "a field value is too long"
		case "check_violation":
			msg = "a field value is out of range"
		}
	}

	return &StorageError{Message: msg, Err: err}
}
