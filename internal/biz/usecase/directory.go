package usecase

import (
	"context"
	"errors"
	"fmt"

	"tg-chatlog/internal/biz/domain"
	"tg-chatlog/internal/biz/repo"
)

// DirectoryUsecase handles the user directory logic
type DirectoryUsecase struct {
	users repo.UserRepo
}

// NewDirectoryUsecase creates a new directory usecase
func NewDirectoryUsecase(users repo.UserRepo) *DirectoryUsecase {
	return &DirectoryUsecase{users: users}
}

// GetOrCreate returns the user known for externalID, creating it with
// defaultDisplayName on first observation. The display name is
// first-write-wins: a differing name on a later call never updates the
// stored record. The bool result reports whether a new record was created.
func (uc *DirectoryUsecase) GetOrCreate(ctx context.Context, externalID, defaultDisplayName string) (*domain.User, bool, error) {
	if externalID == "" {
		return nil, false, fmt.Errorf("external id must not be empty: %w", domain.ErrInvalidArgument)
	}

	user, err := uc.users.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}
	if user != nil {
		return user, false, nil
	}

	user, err = uc.users.Create(ctx, externalID, defaultDisplayName)
	if err == nil {
		return user, true, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	// Lost the creation race: another worker inserted this external id
	// between our lookup and insert. The unique index guarantees the row
	// exists now, so one more lookup settles it.
	user, err = uc.users.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, false, fmt.Errorf("lookup after create race: %w", err)
	}
	if user == nil {
		return nil, false, fmt.Errorf("user %q missing after unique violation: %w", externalID, domain.ErrStorageUnavailable)
	}
	return user, false, nil
}

// Resolve looks up a user by its locally assigned id, never creating one.
// An unknown id is a data integrity violation and surfaces as
// ErrInvalidReference.
func (uc *DirectoryUsecase) Resolve(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup user %d: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrInvalidReference)
	}
	return user, nil
}
