// Package mocks provides shared test doubles for the store and auth
// interfaces.
//
// Store mocks use testify/mock so tests can set expectations and assert
// calls:
//
//	users := new(mocks.UserStore)
//	users.On("GetByID", mock.Anything, id).Return(user, nil)
//	defer users.AssertExpectations(t)
//
// MockJWTService uses function fields instead, since most callers only need
// a canned token or claims.
package mocks
