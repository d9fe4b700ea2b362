package services

import "errors"

// Sentinel errors the handlers map to HTTP status codes. Anything else
// propagating out of a service is a store failure.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
