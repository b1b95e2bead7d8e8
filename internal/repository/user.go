package repository

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrUserExists is returned by Register when the username is already taken.
var ErrUserExists = errors.New("user already exists")

// UserStore maps usernames to salted password hashes. Credentials are created
// by Register and never updated or removed. Registration holds the lock
// across the duplicate check and the insert, so two concurrent registrations
// of the same username cannot both succeed.
type UserStore struct {
	mu    sync.Mutex
	users map[string]string
}

// NewUserStore creates an empty credential store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]string)}
}

// Register stores a one-way hash of the password under the username.
func (s *UserStore) Register(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return ErrUserExists
	}
	s.users[username] = string(hash)
	return nil
}

// Verify reports whether the password matches the stored hash for username.
// Unknown usernames verify as false.
func (s *UserStore) Verify(username, password string) bool {
	s.mu.Lock()
	hash, ok := s.users[username]
	s.mu.Unlock()

	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
