package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrSessionExpired     = fmt.Errorf("session expired")
	ErrNoAdmin            = fmt.Errorf("no admin user")
	ErrPasswordMismatch   = fmt.Errorf("passwords do not match")

	// Storage errors
	ErrNotFound = fmt.Errorf("record not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
	ErrCancelled       = fmt.Errorf("cancelled")
)
