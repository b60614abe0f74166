package domain

import "errors"

// Core failure taxonomy. The data layer wraps driver errors with one of
// these sentinels so callers can branch with errors.Is without knowing
// which store backs the repositories.
var (
	// ErrStorageUnavailable means the durable store could not complete an
	// operation. The core never retries; retry policy belongs to the caller.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidReference means a foreign-key style reference did not
	// resolve to an existing record.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidArgument means a malformed command argument, e.g. a
	// non-numeric /last count.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAlreadyExists means an insert hit a uniqueness constraint. The
	// directory usecase treats it as "created concurrently" and retries
	// the lookup once.
	ErrAlreadyExists = errors.New("record already exists")
)
