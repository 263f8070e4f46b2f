package memstore

import (
	"sync"

	"github.com/go-faster/errors"

	"github.com/Katharina-R/online-bookstore/internal/domain/user"
)

// ErrUserExists is returned when registering an email that already has an
// account. The message is surfaced to the shopper verbatim.
var ErrUserExists = errors.New("An account with this email already exists")

// Users maps normalized email to the registered account. Returned *user.User
// values are the live accounts; callers mutate them directly (order history,
// profile updates).
type Users struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

// NewUsers returns an empty user store.
func NewUsers() *Users {
	return &Users{users: make(map[string]*user.User)}
}

// Register creates and stores a new account.
func (s *Users) Register(email, password, name, address string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return nil, ErrUserExists
	}
	u, err := user.New(email, password, name, address)
	if err != nil {
		return nil, err
	}
	s.users[email] = u
	return u, nil
}

// Authenticate returns the account for email when the password matches.
func (s *Users) Authenticate(email, password string) (*user.User, bool) {
	s.mu.RLock()
	u, ok := s.users[email]
	s.mu.RUnlock()
	if !ok || !u.CheckPassword(password) {
		return nil, false
	}
	return u, true
}

// Get returns the account for email.
func (s *Users) Get(email string) (*user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	return u, ok
}

// Reset empties the store. Tests only.
func (s *Users) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*user.User)
}
