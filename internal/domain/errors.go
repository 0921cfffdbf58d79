package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound           = errors.New("domain: not found")
	ErrConflict           = errors.New("domain: conflict")
	ErrEmailTaken         = errors.New("domain: email already registered")
	ErrSlugTaken          = errors.New("domain: slug already taken")
	ErrInvalidCredentials = errors.New("domain: invalid credentials")
)
