package authflow

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes surfaced to API clients alongside structured errors.
const (
	TextCodeInvalidCreds     = "INVALID_CREDENTIALS"
	TextCodeUserExists       = "USER_EXISTS"
	TextCodeEmptyPassword    = "EMPTY_PASSWORD"
	TextCodeTokenMalformed   = "TOKEN_MALFORMED"
	TextCodeTokenExpired     = "TOKEN_EXPIRED"
	TextCodePersistence      = "PERSISTENCE_FAILURE"
	TextCodeIdentityNotFound = "IDENTITY_NOT_FOUND"
)

// ErrIdentityNotFound is returned when a lookup finds no matching user.
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeIdentityNotFound)

// ErrDuplicateEmail is returned when an insert collides with an existing email.
var ErrDuplicateEmail = goerrors.New("user already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeUserExists).
	WithCode(goerrors.CodeConflict)

// ErrMismatchedHashAndPassword is the uniform invalid-credentials error.
var ErrMismatchedHashAndPassword = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString rejects empty plaintext before it reaches bcrypt.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrTokenMalformed covers bad signatures and unparseable token structure.
var ErrTokenMalformed = goerrors.New("invalid token", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned for tokens past their expiry claim.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrPersistence wraps store flush failures; callers must surface it, never
// swallow it into a rejection message.
var ErrPersistence = goerrors.New("failed to persist credential store", goerrors.CategoryInternal).
	WithTextCode(TextCodePersistence)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == TextCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
