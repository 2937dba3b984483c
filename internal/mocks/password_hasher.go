package mocks

import "github.com/hyeonm/finmart-api/internal/service/auth"

// MockPasswordHasher implements auth.PasswordHasher for testing.
type MockPasswordHasher struct {
	// HashFn overrides Hash when set.
	HashFn func(password string) (string, error)

	// Hashed and Err are returned when HashFn is nil.
	Hashed string
	Err    error

	// HashCallCount tracks how many times Hash was called.
	HashCallCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.HashCallCount++

	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return m.Hashed, m.Err
}
