package data

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tg-chatlog/internal/biz/domain"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(filepath.Join(t.TempDir(), "chatlog.db"))
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	t.Cleanup(func() { repos.Close() })
	return repos
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	created, err := repos.User.Create(ctx, "42", "John Doe")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("Expected a non-zero assigned id")
	}

	got, err := repos.User.GetByExternalID(ctx, "42")
	if err != nil {
		t.Fatalf("GetByExternalID failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected user, got nil")
	}
	if got.ID != created.ID || got.DisplayName != "John Doe" {
		t.Errorf("Unexpected user: %+v", got)
	}

	byID, err := repos.User.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID == nil || byID.ExternalID != "42" {
		t.Errorf("Unexpected user by id: %+v", byID)
	}
}

func TestUserRepo_GetUnknownReturnsNil(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	got, err := repos.User.GetByExternalID(ctx, "nope")
	if err != nil {
		t.Fatalf("GetByExternalID failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for unknown external id, got %+v", got)
	}

	got, err = repos.User.GetByID(ctx, 12345)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for unknown id, got %+v", got)
	}
}

func TestUserRepo_DuplicateExternalID(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	if _, err := repos.User.Create(ctx, "42", "First"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := repos.User.Create(ctx, "42", "Second")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}

	// The unique index keeps the first record untouched.
	got, err := repos.User.GetByExternalID(ctx, "42")
	if err != nil {
		t.Fatalf("GetByExternalID failed: %v", err)
	}
	if got.DisplayName != "First" {
		t.Errorf("Expected first display name to win, got %q", got.DisplayName)
	}
}
