package authflow_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	authflow "github.com/rgillies/go-authflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuedToken(t *testing.T, service authflow.TokenService, email string) string {
	t.Helper()

	user := &authflow.User{EmailAddr: email}
	user.UserID = mustUUID(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	token, err := service.Generate(user)
	require.NoError(t, err)
	return token
}

func TestTokenStrategy(t *testing.T) {
	ctx := context.Background()
	service := authflow.NewTokenService([]byte("test-signing-key"), 0, "", nil, nil)
	strategy := authflow.NewTokenStrategy(service)

	t.Run("empty token is rejected without decoding", func(t *testing.T) {
		outcome := strategy.Authenticate(ctx, &authflow.Request{Token: ""})

		assert.Equal(t, authflow.OutcomeRejected, outcome.Kind())
		assert.Equal(t, "no auth token", outcome.Reason())
	})

	t.Run("undecodable token is rejected", func(t *testing.T) {
		outcome := strategy.Authenticate(ctx, &authflow.Request{Token: "garbage"})

		assert.Equal(t, authflow.OutcomeRejected, outcome.Kind())
		assert.Equal(t, "invalid token", outcome.Reason())
	})

	t.Run("token signed elsewhere is rejected", func(t *testing.T) {
		other := authflow.NewTokenService([]byte("other-key"), 0, "", nil, nil)
		outcome := strategy.Authenticate(ctx, &authflow.Request{Token: issuedToken(t, other, "a@x.com")})

		assert.Equal(t, authflow.OutcomeRejected, outcome.Kind())
		assert.Equal(t, "invalid token", outcome.Reason())
	})

	t.Run("valid token succeeds with the embedded identity", func(t *testing.T) {
		outcome := strategy.Authenticate(ctx, &authflow.Request{Token: issuedToken(t, service, "a@x.com")})

		require.Equal(t, authflow.OutcomeSuccess, outcome.Kind())
		assert.Equal(t, "a@x.com", outcome.Identity().Email())
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", outcome.Identity().ID())
	})
}

func TestTokenStrategyFaultProbe(t *testing.T) {
	ctx := context.Background()
	service := authflow.NewTokenService([]byte("test-signing-key"), 0, "", nil, nil)

	boom := goerrors.New("injected token fault", goerrors.CategoryInternal)
	strategy := authflow.NewTokenStrategy(service).WithFaultProbe(func(claims *authflow.JWTClaims) error {
		if claims.Email() == "a@x.com" {
			return boom
		}
		return nil
	})

	outcome := strategy.Authenticate(ctx, &authflow.Request{Token: issuedToken(t, service, "a@x.com")})

	assert.Equal(t, authflow.OutcomeError, outcome.Kind())
	assert.True(t, goerrors.Is(outcome.Cause(), boom))
	assert.Nil(t, outcome.Identity())
}

func TestTokenStrategyDropProbe(t *testing.T) {
	ctx := context.Background()
	service := authflow.NewTokenService([]byte("test-signing-key"), 0, "", nil, nil)

	strategy := authflow.NewTokenStrategy(service).WithDropProbe(func(claims *authflow.JWTClaims) bool {
		return claims.Email() == "a@x.com"
	})

	t.Run("dropped identity is rejected", func(t *testing.T) {
		outcome := strategy.Authenticate(ctx, &authflow.Request{Token: issuedToken(t, service, "a@x.com")})

		assert.Equal(t, authflow.OutcomeRejected, outcome.Kind())
		assert.Equal(t, "no user", outcome.Reason())
	})

	t.Run("other identities pass through", func(t *testing.T) {
		outcome := strategy.Authenticate(ctx, &authflow.Request{Token: issuedToken(t, service, "b@x.com")})

		assert.Equal(t, authflow.OutcomeSuccess, outcome.Kind())
	})
}
