package authflow

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// BunCredentialStore backs the credential contract with a SQL database. The
// unique email column enforces the one-record-per-email invariant at the
// storage layer; the store mutex serializes writes per instance on top.
type BunCredentialStore struct {
	mu     sync.Mutex
	db     *bun.DB
	logger Logger
}

var _ CredentialStore = (*BunCredentialStore)(nil)

// OpenSQLite opens a sqlite-backed bun.DB for the given DSN.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open sqlite database")
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func NewBunCredentialStore(db *bun.DB) *BunCredentialStore {
	return &BunCredentialStore{
		db:     db,
		logger: defLogger{},
	}
}

func (s *BunCredentialStore) WithLogger(logger Logger) *BunCredentialStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Init creates the users table if it does not exist.
func (s *BunCredentialStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create users table")
	}
	return nil
}

func (s *BunCredentialStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().
		Model(user).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by email")
	}

	return user, nil
}

func (s *BunCredentialStore) Insert(ctx context.Context, email, passwordHash string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	user := &User{
		EmailAddr:    email,
		PasswordHash: passwordHash,
		UserID:       uuid.New(),
		CreatedAt:    &now,
	}

	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert user")
	}

	return user, nil
}

// Persist is a no-op: inserts are durable the moment they commit.
func (s *BunCredentialStore) Persist(ctx context.Context) error {
	return nil
}

// Count reports the number of stored users.
func (s *BunCredentialStore) Count(ctx context.Context) (int, error) {
	return s.db.NewSelect().Model((*User)(nil)).Count(ctx)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: users.email") ||
		strings.Contains(msg, "duplicate key value")
}
