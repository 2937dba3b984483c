// Package mocks holds hand-written test doubles for the store and auth
// interfaces, shared by the service and API test suites instead of each
// package defining its own.
//
// The store mocks (MemberStore, ProductStore, CartItemStore,
// SearchHistoryStore) build on testify/mock, so tests script them with
// On/Return and verify calls with AssertExpectations. The auth doubles
// (MockJWTService, MockPasswordVerifier, MockPasswordHasher) use exported
// function fields instead; a zero value behaves sensibly and individual
// methods can be overridden per test:
//
//	jwtSvc := &mocks.MockJWTService{
//		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//			return nil, auth.ErrExpiredToken
//		},
//	}
//
// New mocks go in a file named after the interface they stand in for.
package mocks
