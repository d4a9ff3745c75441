package authflow

import (
	"context"
)

// TokenStrategy verifies a presented token string and recovers the identity
// it carries. Probes replace the magic sentinel emails the pipeline grew up
// with: they inject faults or drop the decoded user without colliding with
// real addresses.
type TokenStrategy struct {
	validator  TokenValidator
	faultProbe func(*JWTClaims) error
	dropProbe  func(*JWTClaims) bool
	logger     Logger
}

var _ Strategy = (*TokenStrategy)(nil)

func NewTokenStrategy(validator TokenValidator) *TokenStrategy {
	return &TokenStrategy{
		validator: validator,
		logger:    defLogger{},
	}
}

func (s *TokenStrategy) WithLogger(logger Logger) *TokenStrategy {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithFaultProbe installs a test-only hook that forces an application fault
// after a token decodes successfully.
func (s *TokenStrategy) WithFaultProbe(probe func(*JWTClaims) error) *TokenStrategy {
	s.faultProbe = probe
	return s
}

// WithDropProbe installs a test-only hook that discards the decoded user,
// producing a rejection as if the token resolved to nobody.
func (s *TokenStrategy) WithDropProbe(probe func(*JWTClaims) bool) *TokenStrategy {
	s.dropProbe = probe
	return s
}

func (s *TokenStrategy) Name() string { return "token" }

func (s *TokenStrategy) Authenticate(ctx context.Context, req *Request) Outcome {
	if req.Token == "" {
		return Rejected(ReasonNoAuthToken)
	}

	claims, err := s.validator.Validate(req.Token)
	if err != nil {
		s.logger.Debug("token validation failed: %v", err)
		return Rejected(ReasonInvalidToken)
	}

	if s.faultProbe != nil {
		if err := s.faultProbe(claims); err != nil {
			return Errored(err)
		}
	}

	if s.dropProbe != nil && s.dropProbe(claims) {
		return Rejected(ReasonNoUser)
	}

	return Success(claims)
}
