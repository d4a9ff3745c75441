package authflow_test

import (
	"context"
	"testing"

	authflow "github.com/rgillies/go-authflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityContextRoundTrip(t *testing.T) {
	user := &authflow.User{EmailAddr: "a@x.com"}

	ctx := authflow.WithIdentity(context.Background(), user)

	identity, ok := authflow.IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", identity.Email())
}

func TestIdentityFromContextMissing(t *testing.T) {
	identity, ok := authflow.IdentityFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, identity)
}

func TestSimpleConfigDefaults(t *testing.T) {
	cfg := &authflow.SimpleConfig{SigningKey: "secret"}

	assert.Equal(t, "secret", cfg.GetSigningKey())
	assert.Equal(t, "user", cfg.GetContextKey(), "context key defaults when unset")
	assert.Zero(t, cfg.GetTokenExpiration())

	cfg.ContextKey = "principal"
	assert.Equal(t, "principal", cfg.GetContextKey())
}
