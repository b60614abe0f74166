package repo

import (
	"context"

	"tg-chatlog/internal/biz/domain"
)

// UserRepo is the user directory repository interface
// Responsible for user persistence (SQLite)
type UserRepo interface {
	// GetByExternalID returns the user known for a platform account id, or
	// nil when the id has never been seen.
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)

	// GetByID resolves a locally assigned user id, or nil when unknown.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Create inserts a new user record. The store enforces external id
	// uniqueness; a concurrent insert of the same id yields ErrAlreadyExists.
	Create(ctx context.Context, externalID, displayName string) (*domain.User, error)
}
