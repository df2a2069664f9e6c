package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// auth errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username exists")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrTokenExpired       = errors.New("session token expired")

	// storage errors
	ErrStorageQuota = errors.New("storage quota exceeded")
	ErrPersist      = errors.New("could not persist data")

	// workspace errors
	ErrWorkspaceLoading     = errors.New("workspace is still loading")
	ErrVisualIdentityLocked = errors.New("visual identity is locked")
	ErrUnknownStatus        = errors.New("unknown post status")
	ErrCardPushed           = errors.New("strategy card already pushed")
)
