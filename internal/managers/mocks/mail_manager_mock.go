package mocks

import "github.com/stretchr/testify/mock"

// MockMailManager is a testify mock of managers.MailMgr.
type MockMailManager struct {
	mock.Mock
}

func (m *MockMailManager) SendActivationMail(email, username, code string) error {
	args := m.Called(email, username, code)
	return args.Error(0)
}

func (m *MockMailManager) SendResetMail(email, link string) error {
	args := m.Called(email, link)
	return args.Error(0)
}
