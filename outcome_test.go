package authflow_test

import (
	"errors"
	"testing"

	authflow "github.com/rgillies/go-authflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeVariants(t *testing.T) {
	t.Run("success carries only an identity", func(t *testing.T) {
		user := &authflow.User{EmailAddr: "a@x.com"}
		outcome := authflow.Success(user)

		assert.Equal(t, authflow.OutcomeSuccess, outcome.Kind())
		assert.True(t, outcome.Succeeded())
		require.NotNil(t, outcome.Identity())
		assert.Equal(t, "a@x.com", outcome.Identity().Email())
		assert.Empty(t, outcome.Reason())
		assert.NoError(t, outcome.Cause())
	})

	t.Run("rejected carries only a reason", func(t *testing.T) {
		outcome := authflow.Rejected(authflow.ReasonInvalidCredentials)

		assert.Equal(t, authflow.OutcomeRejected, outcome.Kind())
		assert.False(t, outcome.Succeeded())
		assert.Nil(t, outcome.Identity())
		assert.Equal(t, "invalid credentials", outcome.Reason())
		assert.NoError(t, outcome.Cause())
	})

	t.Run("errored carries only a cause", func(t *testing.T) {
		cause := errors.New("boom")
		outcome := authflow.Errored(cause)

		assert.Equal(t, authflow.OutcomeError, outcome.Kind())
		assert.False(t, outcome.Succeeded())
		assert.Nil(t, outcome.Identity())
		assert.Empty(t, outcome.Reason())
		assert.Equal(t, cause, outcome.Cause())
	})
}

func TestOutcomeString(t *testing.T) {
	user := &authflow.User{EmailAddr: "a@x.com"}

	assert.Equal(t, "success(a@x.com)", authflow.Success(user).String())
	assert.Equal(t, "rejected(no auth token)", authflow.Rejected(authflow.ReasonNoAuthToken).String())
	assert.Equal(t, "error(boom)", authflow.Errored(errors.New("boom")).String())
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "success", authflow.OutcomeSuccess.String())
	assert.Equal(t, "rejected", authflow.OutcomeRejected.String())
	assert.Equal(t, "error", authflow.OutcomeError.String())
}
