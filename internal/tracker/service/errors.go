package service

import (
	"errors"
)

var (
	// ErrSymbolEmpty rejects an add whose symbol is empty after trimming.
	ErrSymbolEmpty = errors.New("stock symbol must not be empty")

	// ErrSymbolTracked rejects an add whose symbol is already in the
	// collection under case-insensitive comparison.
	ErrSymbolTracked = errors.New("stock is already in the collection")

	// ErrNewsFetch covers a failed or unusable news fetch.
	ErrNewsFetch = errors.New("failed to fetch stock news")

	// ErrPersistence covers a failed collection store write or delete.
	ErrPersistence = errors.New("failed to persist collection change")

	// ErrInvalidCredentials covers every authentication failure; wrong
	// credentials and transport errors are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotVerified rejects a login for an account that has not
	// completed email verification.
	ErrEmailNotVerified = errors.New("email address is not verified")
)
