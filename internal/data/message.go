package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tg-chatlog/internal/biz/domain"
	"tg-chatlog/internal/biz/repo"
)

// messageRepo implements the Message log repository
type messageRepo struct {
	db *sql.DB
}

// NewMessageRepo creates a new Message log repository
func NewMessageRepo(db *sql.DB) repo.MessageRepo {
	return &messageRepo{db: db}
}

// Append persists a new message. AUTOINCREMENT assigns ids in commit order,
// which is the ordering Recent relies on.
func (r *messageRepo) Append(ctx context.Context, externalMessageID, chatID, text string, authorUserID int64) (*domain.Message, error) {
	now := time.Now()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (external_message_id, chat_id, text, user_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, externalMessageID, chatID, text, authorUserID, now.Unix())
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("author %d: %w", authorUserID, domain.ErrInvalidReference)
		}
		return nil, fmt.Errorf("failed to insert message: %w: %v", domain.ErrStorageUnavailable, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted message id: %w: %v", domain.ErrStorageUnavailable, err)
	}

	return &domain.Message{
		ID:                id,
		ExternalMessageID: externalMessageID,
		ChatID:            chatID,
		Text:              text,
		AuthorUserID:      authorUserID,
		CreatedAt:         time.Unix(now.Unix(), 0),
	}, nil
}

// Recent returns at most limit messages for chatID, newest first
func (r *messageRepo) Recent(ctx context.Context, chatID string, limit int) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, external_message_id, chat_id, text, user_id, created_at
		FROM messages
		WHERE chat_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w: %v", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var createdAt int64
		if err := rows.Scan(&msg.ID, &msg.ExternalMessageID, &msg.ChatID, &msg.Text, &msg.AuthorUserID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w: %v", domain.ErrStorageUnavailable, err)
		}
		msg.CreatedAt = time.Unix(createdAt, 0)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w: %v", domain.ErrStorageUnavailable, err)
	}

	return messages, nil
}
