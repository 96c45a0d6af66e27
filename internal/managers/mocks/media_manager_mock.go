package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMediaManager is a testify mock of managers.MediaMgr.
type MockMediaManager struct {
	mock.Mock
}

func (m *MockMediaManager) Upload(ctx context.Context, payload, folder string) (string, string, error) {
	args := m.Called(ctx, payload, folder)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockMediaManager) Destroy(ctx context.Context, publicId string) error {
	args := m.Called(ctx, publicId)
	return args.Error(0)
}
