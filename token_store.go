package authflow

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// authScheme is the prefix the file store persists in front of the raw token,
// mirroring an Authorization header value.
const authScheme = "Bearer"

// MemoryTokenStore is the in-memory single-slot token store used in tests and
// ephemeral demo runs.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

var _ TokenStore = (*MemoryTokenStore)(nil)

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Read(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Write(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	return s.Write(ctx, "")
}

// FileTokenStore persists the current token to a JSON file shaped like a
// captured Authorization header, simulating client-side storage for the demo
// client. Writes are last-writer-wins.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

var _ TokenStore = (*FileTokenStore)(nil)

type tokenFile struct {
	Authorization string `json:"Authorization"`
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Read(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read token store")
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode token store")
	}

	token := strings.TrimSpace(strings.TrimPrefix(tf.Authorization, authScheme))
	return token, nil
}

func (s *FileTokenStore) Write(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tf := tokenFile{}
	if token != "" {
		tf.Authorization = authScheme + " " + token
	}

	data, err := json.Marshal(tf)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode token store")
	}

	return writeFileAtomic(s.path, data)
}

func (s *FileTokenStore) Clear(ctx context.Context) error {
	return s.Write(ctx, "")
}

// writeFileAtomic writes via a temp file and rename so a crashed write never
// leaves a torn file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create temp file")
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write temp file")
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to close temp file")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to replace file")
	}

	return nil
}
