// Package common defines small helpers and sentinel errors shared across the
// client packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input validation.
	ErrEmptyToken = errors.New("token must not be empty")

	// Session state.
	ErrNotLoggedIn = errors.New("not logged in")
	ErrSessionKey  = errors.New("key is owned by the session, use logout or reset")
)
