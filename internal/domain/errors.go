package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique constraint rejected the write.
	ErrAlreadyExists = errors.New("already exists")

	// ErrValidation marks malformed or missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail is returned when another client already owns the email.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrInvalidCredentials is returned when email/password do not match.
	// Unknown email and wrong password produce the same error.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrClientNotFound     = errors.New("client not found")
	ErrOrderNotFound      = errors.New("order not found")
	// ErrStoreUnavailable matches any StoreError.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// StoreError reports a persistence failure that is not a domain outcome.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err as a store failure for operation op.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return "store unavailable: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStoreUnavailable) match regardless of the cause.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}
