package domain

import (
	"errors"
	"fmt"
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionInvalid  = errors.New("session invalid or expired")
	ErrLoginInFlight   = errors.New("login already in progress")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownRole        = errors.New("unknown role")
)

// Cookie errors
var (
	ErrCookieInvalid   = errors.New("invalid session cookie")
	ErrCookieMalformed = errors.New("malformed session cookie")
)

// Upstream errors
var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamDecode      = errors.New("upstream response not decodable")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
	ErrNotVerified      = errors.New("employee not verified")
)

// UpstreamError carries a failure reported by the backend with a JSON
// body. Its message is safe to surface to the user verbatim.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream rejected request (%d): %s", e.Status, e.Message)
}

// UserMessage extracts the text that should be shown for err. Upstream
// JSON messages are surfaced verbatim; everything else collapses to a
// generic message so raw transport or HTML error bodies never leak.
func UserMessage(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, ErrSessionInvalid):
		return "Session expired. Please login again."
	case errors.Is(err, ErrUpstreamDecode):
		return "Server error"
	default:
		return "Something went wrong"
	}
}
