package domain

import "time"

// Message is one logged text message. The log is append-only: messages are
// immutable once written and never deleted.
type Message struct {
	ID                int64  // store-assigned, strictly increasing with arrival order
	ExternalMessageID string // platform message id, informational only
	ChatID            string // scoping key; the unit of history isolation
	Text              string // may be empty
	AuthorUserID      int64  // non-owning reference to User
	CreatedAt         time.Time
}

// Event is an inbound message as delivered by the transport, stripped of
// any platform-specific shape.
type Event struct {
	ChatID            string
	ExternalMessageID string
	Text              string
	SenderExternalID  string
	SenderName        string
}
