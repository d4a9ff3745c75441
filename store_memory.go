package authflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryCredentialStore keeps the user set in process memory. It owns its
// data outright; there is no process-wide shared state. A single mutex
// serializes all writes, so concurrent signups cannot interleave.
type MemoryCredentialStore struct {
	mu      sync.Mutex
	byEmail map[string]*User
	records []*User
}

var _ CredentialStore = (*MemoryCredentialStore)(nil)

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		byEmail: map[string]*User{},
	}
}

func (s *MemoryCredentialStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	return user, nil
}

func (s *MemoryCredentialStore) Insert(ctx context.Context, email, passwordHash string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}

	now := time.Now()
	user := &User{
		EmailAddr:    email,
		PasswordHash: passwordHash,
		UserID:       uuid.New(),
		CreatedAt:    &now,
	}

	s.byEmail[email] = user
	s.records = append(s.records, user)

	return user, nil
}

func (s *MemoryCredentialStore) Persist(ctx context.Context) error {
	return nil
}

// Len reports the number of stored users.
func (s *MemoryCredentialStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
