package domain

import "errors"

var (
	// ErrLoginTimeout means the identity service did not answer the
	// credential exchange within its bounded wait.
	ErrLoginTimeout = errors.New("login timed out")
	// ErrLoginFailed means the identity service answered but rejected
	// the credentials.
	ErrLoginFailed = errors.New("login failed")
	// ErrProfileTimeout means the staff directory did not answer the
	// profile fetch within its bounded wait.
	ErrProfileTimeout = errors.New("profile fetch timed out")
	// ErrProfileFailed means the staff directory answered with an error.
	ErrProfileFailed = errors.New("profile fetch failed")

	ErrNoSession      = errors.New("no active session")
	ErrNotInitialized = errors.New("session state not initialized")
)
