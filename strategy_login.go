package authflow

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// LoginStrategy verifies an email/password pair against the credential
// store. An unknown email and a bad password produce distinct rejections;
// store or hasher faults surface as errors, never as rejection messages.
type LoginStrategy struct {
	store      CredentialStore
	faultProbe func(Credentials) error
	logger     Logger
}

var _ Strategy = (*LoginStrategy)(nil)

func NewLoginStrategy(store CredentialStore) *LoginStrategy {
	return &LoginStrategy{
		store:  store,
		logger: defLogger{},
	}
}

func (s *LoginStrategy) WithLogger(logger Logger) *LoginStrategy {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithFaultProbe installs a test-only hook that forces an application fault
// for matching credentials. Leave unset in production.
func (s *LoginStrategy) WithFaultProbe(probe func(Credentials) error) *LoginStrategy {
	s.faultProbe = probe
	return s
}

func (s *LoginStrategy) Name() string { return "login" }

func (s *LoginStrategy) Authenticate(ctx context.Context, req *Request) Outcome {
	creds := req.Credentials

	if s.faultProbe != nil {
		if err := s.faultProbe(creds); err != nil {
			return Errored(err)
		}
	}

	user, err := s.store.FindByEmail(ctx, creds.Email)
	if err != nil {
		if goerrors.Is(err, ErrIdentityNotFound) {
			return Rejected(ReasonUserNotFound)
		}
		return Errored(goerrors.Wrap(err, goerrors.CategoryInternal, "login failed to look up user"))
	}

	if err := ComparePasswordAndHash(creds.Password, user.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return Rejected(ReasonInvalidCredentials)
		}
		return Errored(goerrors.Wrap(err, goerrors.CategoryInternal, "login failed to compare password"))
	}

	return Success(user)
}
