package authflow

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MinPasswordLength is the smallest accepted password. Anything shorter is a
// validation rejection, enforced before the hasher ever sees the plaintext.
const MinPasswordLength = 5

// User is the stored user record. It is created once at signup and never
// mutated afterwards.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	EmailAddr     string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"password"`
	UserID        uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

var _ Identity = (*User)(nil)

func (u *User) ID() string {
	return u.UserID.String()
}

func (u *User) Email() string {
	return u.EmailAddr
}

// Credentials is the transient signup/login input. Never persisted.
type Credentials struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate enforces the credential policy: email present, password longer
// than four characters.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Password, validation.Required, validation.Length(MinPasswordLength, 0)),
	)
}
