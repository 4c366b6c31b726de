package auth

import "errors"

// Outcomes of the auth core. Credential and token failures are deliberately
// coarse: callers must not be able to learn which check failed.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateMembership = errors.New("user already exists in organisation")
	ErrForbidden           = errors.New("forbidden")
	ErrNotMember           = errors.New("user does not belong to organisation")
)

// Validation errors.
var (
	ErrPasswordRequired         = errors.New("password is required")
	ErrPasswordTooLong          = errors.New("password exceeds maximum length of 72 bytes")
	ErrEmailRequired            = errors.New("email is required")
	ErrOrganisationNameRequired = errors.New("organisation name is required")
)
