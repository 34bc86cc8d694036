package domain

// The services return one of the typed errors below for every expected
// failure. Anything else reaching the transport layer is treated as an
// internal error and surfaced generically.

// ValidationError reports malformed client input. No side effects occurred.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports an attempt to register an email that is already
// taken.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthenticationError reports bad credentials or an invalid, expired or
// consumed token. Credential failures carry a deliberately generic message
// so callers cannot tell an unknown email from a wrong password.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// GroupError reports a violated group business rule.
type GroupError struct {
	Message string
}

func (e *GroupError) Error() string { return e.Message }
