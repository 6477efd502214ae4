package wallpaper

import "github.com/stretchr/testify/mock"

// MockOS is a mock implementation of the OS interface.
type MockOS struct {
	mock.Mock
}

func (m *MockOS) setWallpaper(path string, target Target) error {
	args := m.Called(path, target)
	return args.Error(0)
}

func (m *MockOS) name() string {
	return "mock"
}
