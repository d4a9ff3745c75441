package authflow

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUser is the identity payload embedded in a token. It never carries the
// password hash.
type TokenUser struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// JWTClaims is the full claims set: the nested user payload plus the standard
// registered claims. The wire format is `{"user": {"_id": ..., "email": ...}}`
// alongside iss/aud/iat/exp.
type JWTClaims struct {
	jwt.RegisteredClaims
	User TokenUser `json:"user"`
}

var _ Identity = (*JWTClaims)(nil)

// NewClaims derives the token payload from an identity at issuance time.
func NewClaims(identity Identity) *JWTClaims {
	return &JWTClaims{
		User: TokenUser{
			ID:    identity.ID(),
			Email: identity.Email(),
		},
	}
}

func (c *JWTClaims) ID() string {
	return c.User.ID
}

func (c *JWTClaims) Email() string {
	return c.User.Email
}

// IssuedTime returns the issued-at time, zero when the claim is absent.
func (c *JWTClaims) IssuedTime() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ExpiryTime returns the expiration time, zero when the token does not expire.
func (c *JWTClaims) ExpiryTime() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}
