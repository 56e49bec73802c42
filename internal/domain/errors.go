package domain

import "errors"

// Error taxonomy surfaced by services. Handlers map these onto HTTP status
// codes; anything not in this list is reported as a store failure.
var (
	ErrValidation         = errors.New("validation error")
	ErrReferenceNotFound  = errors.New("reference not found")
	ErrDuplicateIdentity  = errors.New("identity already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorizedRole   = errors.New("unauthorized role")
	ErrNotFound           = errors.New("record not found")
	ErrStore              = errors.New("store error")
)
