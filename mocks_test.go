package authflow_test

import (
	"context"

	authflow "github.com/rgillies/go-authflow"
	"github.com/stretchr/testify/mock"
)

// MockCredentialStore implements authflow.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByEmail(ctx context.Context, email string) (*authflow.User, error) {
	args := m.Called(ctx, email)
	var user *authflow.User
	if v := args.Get(0); v != nil {
		user = v.(*authflow.User)
	}
	return user, args.Error(1)
}

func (m *MockCredentialStore) Insert(ctx context.Context, email, passwordHash string) (*authflow.User, error) {
	args := m.Called(ctx, email, passwordHash)
	var user *authflow.User
	if v := args.Get(0); v != nil {
		user = v.(*authflow.User)
	}
	return user, args.Error(1)
}

func (m *MockCredentialStore) Persist(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockValidator implements authflow.TokenValidator
type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(tokenString string) (*authflow.JWTClaims, error) {
	args := m.Called(tokenString)
	var claims *authflow.JWTClaims
	if v := args.Get(0); v != nil {
		claims = v.(*authflow.JWTClaims)
	}
	return claims, args.Error(1)
}

// MockTokenStore implements authflow.TokenStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Read(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) Write(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
