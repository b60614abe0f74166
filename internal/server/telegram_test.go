package server

import (
	"context"
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg-chatlog/internal/biz/usecase"
	"tg-chatlog/internal/data"
	"tg-chatlog/internal/service"
)

type fakeSender struct{ sent []string }

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, msg.Text)
	return tgbotapi.Message{}, nil
}

func newTestServer(t *testing.T) (*TelegramServer, *fakeSender) {
	t.Helper()
	repos, err := data.NewRepositories(filepath.Join(t.TempDir(), "chatlog.db"))
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	t.Cleanup(func() { repos.Close() })

	directory := usecase.NewDirectoryUsecase(repos.User)
	chatLog := usecase.NewChatLogUsecase(repos.Message)
	history := usecase.NewHistoryUsecase(chatLog, directory)

	fs := &fakeSender{}
	return &TelegramServer{
		s:     fs,
		relay: service.NewRelayService(directory, chatLog, history),
	}, fs
}

func update(text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 7,
			Text:      text,
			Chat:      &tgbotapi.Chat{ID: 100},
			From:      &tgbotapi.User{ID: 42, FirstName: "John", LastName: "Doe"},
		},
	}
}

func TestHandleUpdate_CommandReplies(t *testing.T) {
	srv, fs := newTestServer(t)

	srv.handleUpdate(context.Background(), update("/start"))
	if len(fs.sent) != 1 || fs.sent[0] != "Hi!" {
		t.Fatalf("Unexpected replies: %+v", fs.sent)
	}
}

func TestHandleUpdate_PlainTextSavesSilently(t *testing.T) {
	srv, fs := newTestServer(t)
	ctx := context.Background()

	srv.handleUpdate(ctx, update("hello world"))
	if len(fs.sent) != 0 {
		t.Fatalf("Expected no reply for plain text, got %+v", fs.sent)
	}

	srv.handleUpdate(ctx, update("/last 1"))
	if len(fs.sent) != 1 || fs.sent[0] != "John Doe wrote hello world" {
		t.Fatalf("Unexpected replies: %+v", fs.sent)
	}
}

func TestHandleUpdate_IgnoresNonMessageUpdates(t *testing.T) {
	srv, fs := newTestServer(t)

	srv.handleUpdate(context.Background(), tgbotapi.Update{UpdateID: 2})
	if len(fs.sent) != 0 {
		t.Fatalf("Expected no replies, got %+v", fs.sent)
	}
}

func TestEventFromMessage(t *testing.T) {
	u := update("/last 3")
	ev := eventFromMessage(u.Message)

	if ev.ChatID != "100" {
		t.Errorf("Unexpected chat id: %q", ev.ChatID)
	}
	if ev.ExternalMessageID != "7" {
		t.Errorf("Unexpected external message id: %q", ev.ExternalMessageID)
	}
	if ev.SenderExternalID != "42" {
		t.Errorf("Unexpected sender external id: %q", ev.SenderExternalID)
	}
	if ev.SenderName != "John Doe" {
		t.Errorf("Unexpected sender name: %q", ev.SenderName)
	}
	if ev.Text != "/last 3" {
		t.Errorf("Unexpected text: %q", ev.Text)
	}
}

func TestFullName_Fallbacks(t *testing.T) {
	if got := fullName(&tgbotapi.User{FirstName: "John"}); got != "John" {
		t.Errorf("Expected John, got %q", got)
	}
	if got := fullName(&tgbotapi.User{UserName: "jdoe"}); got != "jdoe" {
		t.Errorf("Expected jdoe, got %q", got)
	}
}
