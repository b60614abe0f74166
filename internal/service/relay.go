package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tg-chatlog/internal/biz/domain"
	"tg-chatlog/internal/biz/usecase"
)

const (
	startReply = "Hi!"
	helpReply  = "Help!"

	// defaultLastLimit is used when /last is invoked without a count.
	defaultLastLimit = 10
)

// Handler processes one classified event and returns the reply text, empty
// when no reply should be sent.
type Handler func(ctx context.Context, ev *domain.Event, args []string) (string, error)

// RelayService routes inbound events to their handlers. The routing table
// is static: classification picks exactly one handler per event, and events
// outside the table (unknown slash commands) are dropped without error.
type RelayService struct {
	directory *usecase.DirectoryUsecase
	chatLog   *usecase.ChatLogUsecase
	history   *usecase.HistoryUsecase

	handlers map[domain.Command]Handler
}

// NewRelayService creates a new relay service
func NewRelayService(
	directory *usecase.DirectoryUsecase,
	chatLog *usecase.ChatLogUsecase,
	history *usecase.HistoryUsecase,
) *RelayService {
	s := &RelayService{
		directory: directory,
		chatLog:   chatLog,
		history:   history,
	}
	s.handlers = map[domain.Command]Handler{
		domain.CmdStart:     s.handleStart,
		domain.CmdHelp:      s.handleHelp,
		domain.CmdLast:      s.handleLast,
		domain.CmdPlainText: s.handleSave,
	}
	return s
}

// HandleEvent classifies and dispatches one inbound event. The returned
// text is the reply to deliver back over the transport; empty means nothing
// to send. Failures propagate to the transport layer, which owns logging
// and any retry policy.
func (s *RelayService) HandleEvent(ctx context.Context, ev *domain.Event) (string, error) {
	cmd, args := domain.Classify(ev.Text)
	handler, ok := s.handlers[cmd]
	if !ok {
		return "", nil
	}
	return handler(ctx, ev, args)
}

func (s *RelayService) handleStart(context.Context, *domain.Event, []string) (string, error) {
	return startReply, nil
}

func (s *RelayService) handleHelp(context.Context, *domain.Event, []string) (string, error) {
	return helpReply, nil
}

// handleLast replies with the chat's recent history. An absent count means
// defaultLastLimit; a count that is not a positive integer is rejected with
// ErrInvalidArgument rather than silently falling back to the default.
func (s *RelayService) handleLast(ctx context.Context, ev *domain.Event, args []string) (string, error) {
	limit := defaultLastLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return "", fmt.Errorf("last count %q: %w", args[0], domain.ErrInvalidArgument)
		}
		limit = n
	}

	lines, err := s.history.FormatRecent(ctx, ev.ChatID, limit)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// handleSave persists a plain-text message: upsert the sender into the
// directory, then append to the log under the sender's local id. No reply.
func (s *RelayService) handleSave(ctx context.Context, ev *domain.Event, _ []string) (string, error) {
	user, _, err := s.directory.GetOrCreate(ctx, ev.SenderExternalID, ev.SenderName)
	if err != nil {
		return "", err
	}
	if _, err := s.chatLog.Append(ctx, ev, user.ID); err != nil {
		return "", err
	}
	return "", nil
}
