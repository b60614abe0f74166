package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg-chatlog/internal/biz/domain"
	"tg-chatlog/internal/conf"
	"tg-chatlog/internal/service"
)

const pollTimeoutSeconds = 60

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramServer drives the Telegram transport: it receives updates by long
// polling or webhook, hands text messages to the relay service, and
// delivers replies. All core failures end here, in the log.
type TelegramServer struct {
	api   *tgbotapi.BotAPI
	s     sender
	relay *service.RelayService
	cfg   *conf.Config
}

// NewTelegramServer creates a new Telegram server
func NewTelegramServer(cfg *conf.Config, relay *service.RelayService) (*TelegramServer, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram api: %w", err)
	}
	api.Debug = cfg.Debug
	log.Printf("Authorized on account %s", api.Self.UserName)

	return &TelegramServer{
		api:   api,
		s:     api,
		relay: relay,
		cfg:   cfg,
	}, nil
}

// Start receives updates until ctx is cancelled.
func (s *TelegramServer) Start(ctx context.Context) error {
	if s.cfg.WebhookEnabled() {
		return s.serveWebhook(ctx)
	}
	return s.pollUpdates(ctx)
}

func (s *TelegramServer) pollUpdates(ctx context.Context) error {
	// A webhook left over from a previous run blocks getUpdates.
	if _, err := s.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Printf("delete webhook: %v", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := s.api.GetUpdatesChan(u)

	log.Println("Long polling for updates")
	for {
		select {
		case <-ctx.Done():
			s.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			s.handleUpdate(ctx, update)
		}
	}
}

func (s *TelegramServer) serveWebhook(ctx context.Context) error {
	// The token in the path is what authenticates Telegram's calls.
	hookPath := "/" + s.api.Token
	wh, err := tgbotapi.NewWebhook(strings.TrimRight(s.cfg.PublicURL, "/") + hookPath)
	if err != nil {
		return fmt.Errorf("webhook config: %w", err)
	}
	if _, err := s.api.Request(wh); err != nil {
		return fmt.Errorf("register webhook: %w", err)
	}

	r := chi.NewRouter()
	r.Post(hookPath, func(w http.ResponseWriter, req *http.Request) {
		update, err := s.api.HandleUpdate(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.handleUpdate(req.Context(), *update)
	})

	srv := &http.Server{Addr: s.cfg.ListenAddr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening for webhook updates on %s%s", s.cfg.ListenAddr, hookPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webhook server: %w", err)
	}
	return nil
}

// handleUpdate processes one update. Non-message updates are ignored;
// handler failures are logged and produce no reply, matching the contract
// that the transport owns error reporting.
func (s *TelegramServer) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	reply, err := s.relay.HandleEvent(ctx, eventFromMessage(msg))
	if err != nil {
		log.Printf("update %d caused error: %v", update.UpdateID, err)
		return
	}
	if reply == "" {
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	if _, err := s.s.Send(out); err != nil {
		log.Printf("send reply to chat %d: %v", msg.Chat.ID, err)
	}
}

// eventFromMessage converts a Telegram message into the transport-neutral
// event the core consumes.
func eventFromMessage(msg *tgbotapi.Message) *domain.Event {
	return &domain.Event{
		ChatID:            strconv.FormatInt(msg.Chat.ID, 10),
		ExternalMessageID: strconv.Itoa(msg.MessageID),
		Text:              msg.Text,
		SenderExternalID:  strconv.FormatInt(msg.From.ID, 10),
		SenderName:        fullName(msg.From),
	}
}

// fullName mirrors the platform's display name: first plus last when
// present, falling back to the username.
func fullName(u *tgbotapi.User) string {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	if name == "" {
		name = u.UserName
	}
	return name
}
