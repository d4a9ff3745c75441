package authflow

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// SignupStrategy verifies registration credentials and creates the user
// record. Validation failures and duplicate emails are rejections;
// hashing and persistence failures are faults.
type SignupStrategy struct {
	store  CredentialStore
	logger Logger
}

var _ Strategy = (*SignupStrategy)(nil)

func NewSignupStrategy(store CredentialStore) *SignupStrategy {
	return &SignupStrategy{
		store:  store,
		logger: defLogger{},
	}
}

func (s *SignupStrategy) WithLogger(logger Logger) *SignupStrategy {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *SignupStrategy) Name() string { return "signup" }

func (s *SignupStrategy) Authenticate(ctx context.Context, req *Request) Outcome {
	creds := req.Credentials

	if err := creds.Validate(); err != nil {
		s.logger.Debug("signup rejected credentials: %v", err)
		return Rejected(ReasonBadCredentials)
	}

	hash, err := HashPassword(creds.Password)
	if err != nil {
		return Errored(goerrors.Wrap(err, goerrors.CategoryInternal, "signup failed to hash password"))
	}

	user, err := s.store.Insert(ctx, creds.Email, hash)
	if err != nil {
		if goerrors.Is(err, ErrDuplicateEmail) {
			return Rejected(ReasonUserExists)
		}
		return Errored(goerrors.Wrap(err, goerrors.CategoryInternal, "signup failed to insert user"))
	}

	// Durability before we report success to the client.
	if err := s.store.Persist(ctx); err != nil {
		s.logger.Error("signup persist failed for %s: %v", creds.Email, err)
		return Errored(err)
	}

	return Success(user)
}
