package data

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tg-chatlog/internal/biz/repo"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Repositories contains all repositories backed by the chat log database
type Repositories struct {
	User    repo.UserRepo
	Message repo.MessageRepo

	db *sql.DB
}

// NewRepositories opens (creating if needed) the chat log database and
// creates all repositories. User and message repositories share one
// connection pool so the foreign key from messages to users is enforced
// inside a single database.
func NewRepositories(dbPath string) (*Repositories, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		User:    NewUserRepo(db),
		Message: NewMessageRepo(db),
		db:      db,
	}, nil
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.db.Close()
}

func openDB(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	// foreign_keys is off by default in SQLite; the message log relies on
	// it to reject appends with an unknown author.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			external_id TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			external_message_id TEXT NOT NULL,
			chat_id TEXT NOT NULL,
			text TEXT NOT NULL,
			user_id INTEGER NOT NULL REFERENCES users(id),
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create messages table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_messages_chat_id ON messages(chat_id, id)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return db, nil
}

// sqliteCode extracts the extended result code from a driver error, 0 when
// the error did not come from SQLite.
func sqliteCode(err error) int {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}

func isUniqueViolation(err error) bool {
	return sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func isForeignKeyViolation(err error) bool {
	return sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}
