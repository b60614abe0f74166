package usecase

import (
	"context"
	"fmt"

	"tg-chatlog/internal/biz/domain"
	"tg-chatlog/internal/biz/repo"
)

// ChatLogUsecase handles the append-only message log
type ChatLogUsecase struct {
	messages repo.MessageRepo
}

// NewChatLogUsecase creates a new chat log usecase
func NewChatLogUsecase(messages repo.MessageRepo) *ChatLogUsecase {
	return &ChatLogUsecase{messages: messages}
}

// Append logs one inbound event under the resolved author id.
func (uc *ChatLogUsecase) Append(ctx context.Context, ev *domain.Event, authorUserID int64) (*domain.Message, error) {
	msg, err := uc.messages.Append(ctx, ev.ExternalMessageID, ev.ChatID, ev.Text, authorUserID)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return msg, nil
}

// Recent returns at most limit messages for chatID, newest first. The limit
// must be positive; default handling for absent counts belongs to the
// command handler, not here.
func (uc *ChatLogUsecase) Recent(ctx context.Context, chatID string, limit int) ([]domain.Message, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit %d must be positive: %w", limit, domain.ErrInvalidArgument)
	}
	msgs, err := uc.messages.Recent(ctx, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	return msgs, nil
}
