package mocks

import (
	"github.com/stretchr/testify/mock"

	"commerce-core/internal/interfaces"
)

// MockDatabaseManager is a testify mock of managers.DatabaseMgr. Tests wire
// it to a pgxmock pool.
type MockDatabaseManager struct {
	mock.Mock
}

func (m *MockDatabaseManager) GetPool() interfaces.PgxPoolIface {
	args := m.Called()
	return args.Get(0).(interfaces.PgxPoolIface)
}
