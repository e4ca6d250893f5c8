package listings

import (
	"context"
	"fmt"
)

// Session tracks who is signed in and whom they are acting as.
type Session struct {
	store    *Store
	user     User
	acting   *User
	loggedIn bool
}

// NewSession signs email in against store.
func NewSession(store *Store, email string) (*Session, error) {
	user, ok := store.User(email)
	if !ok {
		return nil, fmt.Errorf("sign in %q: %w", email, ErrUnknownUser)
	}
	return &Session{store: store, user: user, loggedIn: true}, nil
}

// User returns the signed-in user.
func (s *Session) User() User {
	return s.user
}

// Effective returns the user whose listings are shown: the impersonated
// user while acting, otherwise the signed-in user.
func (s *Session) Effective() User {
	if s.acting != nil {
		return *s.acting
	}
	return s.user
}

// Acting returns the impersonated user, if any.
func (s *Session) Acting() (User, bool) {
	if s.acting == nil {
		return User{}, false
	}
	return *s.acting, true
}

// CanActAs reports whether the signed-in user may impersonate others.
func (s *Session) CanActAs() bool {
	return s.loggedIn && s.user.Admin
}

// LoggedIn reports whether LogOut has not been called yet.
func (s *Session) LoggedIn() bool {
	return s.loggedIn
}

// ActAs starts impersonating email. Only admins may do it, and never as
// themselves.
func (s *Session) ActAs(email string) error {
	if !s.loggedIn {
		return ErrLoggedOut
	}
	if !s.user.Admin {
		return ErrNotAdmin
	}
	target, ok := s.store.User(email)
	if !ok {
		return fmt.Errorf("act as %q: %w", email, ErrUnknownUser)
	}
	if target.Email == s.user.Email {
		return ErrSelf
	}
	s.acting = &target
	log.Info("acting as user", "admin", s.user.Email, "user", target.Email)
	return nil
}

// StopActing returns to the signed-in user. It is a no-op when not acting.
func (s *Session) StopActing() {
	if s.acting == nil {
		return
	}
	log.Info("stopped acting", "admin", s.user.Email, "user", s.acting.Email)
	s.acting = nil
}

// LogOut ends the session. It honors ctx cancellation so a caller running
// it in the background can abandon it.
func (s *Session) LogOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.loggedIn {
		return nil
	}
	s.acting = nil
	s.loggedIn = false
	log.Info("logged out", "user", s.user.Email)
	return nil
}
