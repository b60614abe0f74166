package repo

import (
	"context"

	"tg-chatlog/internal/biz/domain"
)

// MessageRepo is the message log repository interface
// Responsible for message persistence (SQLite). The log is append-only:
// no update or delete is exposed.
type MessageRepo interface {
	// Append persists a new message and returns it with the store-assigned
	// id. The id strictly increases with commit order across the whole log.
	// An author id that does not resolve to a user yields ErrInvalidReference.
	Append(ctx context.Context, externalMessageID, chatID, text string, authorUserID int64) (*domain.Message, error)

	// Recent returns at most limit messages for chatID, newest first
	// (descending id). An empty chat yields an empty slice, not an error.
	Recent(ctx context.Context, chatID string, limit int) ([]domain.Message, error)
}
