package authflow

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// FileCredentialStore is the JSON-file-backed user store. Records load once
// at open; Insert mutates the in-memory set immediately and Persist flushes
// the whole ordered set atomically (temp file + rename). The mutex covers
// both mutation and flush, so two concurrent signups can never interleave
// their writes and drop a record.
type FileCredentialStore struct {
	mu      sync.Mutex
	path    string
	byEmail map[string]*User
	records []*User
	logger  Logger
}

var _ CredentialStore = (*FileCredentialStore)(nil)

// NewFileCredentialStore opens the store at path, loading any existing
// records. A missing file is an empty store.
func NewFileCredentialStore(path string) (*FileCredentialStore, error) {
	s := &FileCredentialStore{
		path:    path,
		byEmail: map[string]*User{},
		logger:  defLogger{},
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *FileCredentialStore) WithLogger(logger Logger) *FileCredentialStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *FileCredentialStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read credential store")
	}

	var records []*User
	if err := json.Unmarshal(data, &records); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode credential store")
	}

	for _, user := range records {
		if _, exists := s.byEmail[user.EmailAddr]; exists {
			// Legacy stores written without a uniqueness check may carry
			// duplicates; first record wins.
			s.logger.Warn("dropping duplicate record for %s", user.EmailAddr)
			continue
		}
		s.byEmail[user.EmailAddr] = user
		s.records = append(s.records, user)
	}

	return nil
}

func (s *FileCredentialStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	return user, nil
}

func (s *FileCredentialStore) Insert(ctx context.Context, email, passwordHash string) (*User, error) {
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

func (s *FileCredentialStore) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

// flush rewrites the full ordered record set. Callers hold s.mu.
func (s *FileCredentialStore) flush() error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return goerrors.Wrap(err, ErrPersistence.Category, ErrPersistence.Message).
			WithTextCode(ErrPersistence.TextCode)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return goerrors.Wrap(err, ErrPersistence.Category, ErrPersistence.Message).
			WithTextCode(ErrPersistence.TextCode)
	}

	return nil
}

// Len reports the number of stored users.
func (s *FileCredentialStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
