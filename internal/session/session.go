package session

import (
	"sync"

	"github.com/saferide/saferide/pkg/errors"
)

// User is the authenticated account attached to a session
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// Session holds the bearer token and user for the lifetime of a sign-in.
// It replaces implicit global storage: every consumer receives it
// explicitly and goes through Init/Clear.
type Session struct {
	mu    sync.RWMutex
	token string
	user  User
}

// New returns an empty, signed-out session.
func New() *Session {
	return &Session{}
}

// Init installs the token and user after a successful login or signup.
func (s *Session) Init(token string, user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// Clear signs the session out.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = User{}
}

// Active reports whether a token is present.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the bearer token, or ErrNoSession when signed out.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", errors.ErrNoSession
	}
	return s.token, nil
}

// User returns a copy of the signed-in user.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}
