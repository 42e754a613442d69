package domain

import "errors"

var (
	ErrInvalidTeam       = errors.New("invalid vote")
	ErrMissingCredential = errors.New("missing authorization header")
	ErrInvalidCredential = errors.New("invalid token")
)
