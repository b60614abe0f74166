package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"tg-chatlog/internal/biz/domain"
)

// HistoryUsecase renders recent chat history for the /last command
type HistoryUsecase struct {
	chatLog   *ChatLogUsecase
	directory *DirectoryUsecase
}

// NewHistoryUsecase creates a new history usecase
func NewHistoryUsecase(chatLog *ChatLogUsecase, directory *DirectoryUsecase) *HistoryUsecase {
	return &HistoryUsecase{chatLog: chatLog, directory: directory}
}

// FormatRecent returns up to limit lines of the form "<name> wrote <text>",
// newest first. A message whose author cannot be resolved surfaces
// ErrInvalidReference instead of being dropped: the log guarantees authors
// exist, so a miss is an integrity violation worth seeing.
func (uc *HistoryUsecase) FormatRecent(ctx context.Context, chatID string, limit int) ([]string, error) {
	msgs, err := uc.chatLog.Recent(ctx, chatID, limit)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(msgs))
	for _, msg := range msgs {
		if _, ok := names[msg.AuthorUserID]; ok {
			continue
		}
		user, err := uc.directory.Resolve(ctx, msg.AuthorUserID)
		if err != nil {
			return nil, fmt.Errorf("author of message %d: %w", msg.ID, err)
		}
		names[msg.AuthorUserID] = user.DisplayName
	}

	return lo.Map(msgs, func(msg domain.Message, _ int) string {
		return fmt.Sprintf("%s wrote %s", names[msg.AuthorUserID], msg.Text)
	}), nil
}
