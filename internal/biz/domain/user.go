package domain

import "time"

// User is a locally-known chat participant, created lazily on the first
// message seen from a platform account. Records are never deleted and the
// display name is first-write-wins.
type User struct {
	ID          int64  // locally assigned, stable
	ExternalID  string // platform account identifier, unique
	DisplayName string
	CreatedAt   time.Time
}
