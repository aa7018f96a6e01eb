package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cartify/cartify/auth"
)

// MockPrincipalStore mocks the principal lookup contract.
type MockPrincipalStore struct {
	mock.Mock
}

func (m *MockPrincipalStore) FindByEmail(ctx context.Context, email string) (*auth.Principal, error) {
	args := m.Called(ctx, email)
	if p := args.Get(0); p != nil {
		return p.(*auth.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockLogger swallows log output so tests stay quiet.
type mockLogger struct{}

func (mockLogger) Debug(msg string, args ...any) {}
func (mockLogger) Info(msg string, args ...any)  {}
func (mockLogger) Warn(msg string, args ...any)  {}
func (mockLogger) Error(msg string, args ...any) {}
