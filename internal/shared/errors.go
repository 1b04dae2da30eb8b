package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication and session errors
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrSessionExpired     = fmt.Errorf("session expired")
	ErrNotAdmin           = fmt.Errorf("admin privileges required")
	ErrSessionRestoring   = fmt.Errorf("session restoration in progress")

	// API and transport errors
	ErrNetwork            = fmt.Errorf("network request failed")
	ErrServer             = fmt.Errorf("server error")
	ErrNotFound           = fmt.Errorf("resource not found")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Engine errors
	ErrOperationInFlight = fmt.Errorf("operation already in flight")
	ErrNotLoaded         = fmt.Errorf("list not loaded")

	// Input validation errors
	ErrInvalidURL      = fmt.Errorf("invalid YouTube URL")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
