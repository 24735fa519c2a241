// Package mocks provides testify mocks of the service interfaces for
// handler tests.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/pageza/tomato/backend/internal/model"
)

// MockMenuService is a mock implementation of the menu catalog
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) Items() []model.MenuItem {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.MenuItem)
}

func (m *MockMenuService) Item(id int) (model.MenuItem, bool) {
	args := m.Called(id)
	return args.Get(0).(model.MenuItem), args.Bool(1)
}
