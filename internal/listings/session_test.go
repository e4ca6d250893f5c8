package listings

import (
	"context"
	"errors"
	"testing"
)

func newTestSession(t *testing.T, email string) *Session {
	t.Helper()
	store := NewMemoryStore(sampleData().Listings, sampleData().Users)
	s, err := NewSession(store, email)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNewSessionUnknownUser(t *testing.T) {
	store := NewMemoryStore(nil, nil)
	if _, err := NewSession(store, "ghost@example.com"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestActAs(t *testing.T) {
	admin := newTestSession(t, "dana@example.com")
	if !admin.CanActAs() {
		t.Fatal("admin should be able to act as others")
	}
	if err := admin.ActAs("dana@example.com"); !errors.Is(err, ErrSelf) {
		t.Fatalf("expected ErrSelf, got %v", err)
	}
	if err := admin.ActAs("nobody@example.com"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if err := admin.ActAs("SAM@example.com"); err != nil {
		t.Fatalf("act as: %v", err)
	}
	if admin.Effective().Email != "sam@example.com" {
		t.Fatalf("expected effective user sam, got %q", admin.Effective().Email)
	}
	if admin.User().Email != "dana@example.com" {
		t.Fatal("signed-in user should not change while acting")
	}

	admin.StopActing()
	if _, acting := admin.Acting(); acting {
		t.Fatal("expected acting to stop")
	}
	if admin.Effective().Email != "dana@example.com" {
		t.Fatal("effective user should revert")
	}

	regular := newTestSession(t, "lee@example.com")
	if regular.CanActAs() {
		t.Fatal("non-admin should not be able to act as others")
	}
	if err := regular.ActAs("sam@example.com"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestLogOut(t *testing.T) {
	s := newTestSession(t, "dana@example.com")
	if err := s.ActAs("lee@example.com"); err != nil {
		t.Fatalf("act as: %v", err)
	}
	if err := s.LogOut(context.Background()); err != nil {
		t.Fatalf("log out: %v", err)
	}
	if s.LoggedIn() {
		t.Fatal("expected logged out session")
	}
	if _, acting := s.Acting(); acting {
		t.Fatal("logging out should stop acting")
	}
	if err := s.ActAs("lee@example.com"); !errors.Is(err, ErrLoggedOut) {
		t.Fatalf("expected ErrLoggedOut, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	other := newTestSession(t, "lee@example.com")
	if err := other.LogOut(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !other.LoggedIn() {
		t.Fatal("cancelled log out should leave the session signed in")
	}
}
