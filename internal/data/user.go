package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tg-chatlog/internal/biz/domain"
	"tg-chatlog/internal/biz/repo"
)

// userRepo implements the User repository
type userRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new User repository
func NewUserRepo(db *sql.DB) repo.UserRepo {
	return &userRepo{db: db}
}

// GetByExternalID gets a user by platform account id
func (r *userRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, external_id, display_name, created_at
		FROM users
		WHERE external_id = ?
	`, externalID)
	return scanUser(row)
}

// GetByID gets a user by its locally assigned id
func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, external_id, display_name, created_at
		FROM users
		WHERE id = ?
	`, id)
	return scanUser(row)
}

// Create inserts a new user record. The UNIQUE index on external_id is the
// authority on duplicates; a violation surfaces as ErrAlreadyExists so the
// caller can treat it as a lost creation race.
func (r *userRepo) Create(ctx context.Context, externalID, displayName string) (*domain.User, error) {
	now := time.Now()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (external_id, display_name, created_at)
		VALUES (?, ?, ?)
	`, externalID, displayName, now.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", externalID, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to insert user: %w: %v", domain.ErrStorageUnavailable, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted user id: %w: %v", domain.ErrStorageUnavailable, err)
	}

	return &domain.User{
		ID:          id,
		ExternalID:  externalID,
		DisplayName: displayName,
		CreatedAt:   time.Unix(now.Unix(), 0),
	}, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var createdAt int64
	err := row.Scan(&user.ID, &user.ExternalID, &user.DisplayName, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w: %v", domain.ErrStorageUnavailable, err)
	}
	user.CreatedAt = time.Unix(createdAt, 0)
	return &user, nil
}
