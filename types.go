package authflow

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated principal. Both stored
// users and claims recovered from a token satisfy it.
type Identity interface {
	ID() string
	Email() string
}

// CredentialStore is the durable email -> user mapping. Implementations must
// serialize writes per instance: two inserts or persists never interleave.
type CredentialStore interface {
	// FindByEmail returns the user for the given email, or ErrIdentityNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Insert adds a new user, failing with ErrDuplicateEmail if the email is
	// taken. The in-memory set is updated immediately; durability requires
	// Persist.
	Insert(ctx context.Context, email, passwordHash string) (*User, error)
	// Persist flushes the current set to durable storage.
	Persist(ctx context.Context) error
}

// TokenStore holds the single current token for the demo client. An empty
// string means no token. Last writer wins.
type TokenStore interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// TokenValidator verifies a raw token string and recovers its claims.
type TokenValidator interface {
	Validate(tokenString string) (*JWTClaims, error)
}

// TokenService signs identities into tokens and validates them back.
type TokenService interface {
	TokenValidator
	Generate(identity Identity) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
}

// Strategy is a pluggable verification procedure. Every strategy shares the
// same contract: inspect the request, produce exactly one Outcome.
type Strategy interface {
	Name() string
	Authenticate(ctx context.Context, req *Request) Outcome
}

// Request carries the inputs a strategy may consume. Credential strategies
// read Credentials, the token strategy reads Token.
type Request struct {
	Credentials Credentials
	Token       string
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetContextKey() string
	GetIssuer() string
	GetAudience() []string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
