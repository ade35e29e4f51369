// Package telemetry adapts external timing/telemetry sources to the read-only
// event, session and lap views consumed by the analysis engine.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/rainline/internal/models"
)

// Provider defines the interface for fetching schedule and session data
type Provider interface {
	// EventSchedule returns the season's events in calendar order.
	// Testing events are dropped unless includeTesting is set.
	EventSchedule(ctx context.Context, year int, includeTesting bool) ([]models.Event, error)

	// LoadSession loads laps, weather and driver metadata for one session
	LoadSession(ctx context.Context, year int, eventName string, sessionType models.SessionType) (*models.Session, error)

	// Name returns the name of the provider
	Name() string
}

// ProviderError represents errors from provider operations
type ProviderError struct {
	Source  string // Provider name
	Code    string // Error code (e.g. "not_found")
	Message string // Error message
	Err     error  // Underlying error
}

func (e ProviderError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap exposes both the underlying cause and the sentinel for the code
func (e ProviderError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if sentinel, ok := codeSentinels[e.Code]; ok {
		errs = append(errs, sentinel)
	}
	return errs
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

var codeSentinels = map[string]error{
	ErrCodeRateLimitExceeded:    ErrRateLimitExceeded,
	ErrCodeAuthenticationFailed: ErrAuthenticationFailed,
	ErrCodeNotFound:             ErrNotFound,
	ErrCodeInvalidData:          ErrInvalidData,
	ErrCodeNetworkError:         ErrNetworkError,
	ErrCodeServerError:          ErrServerError,
}

// NewProviderError creates a new provider error
func NewProviderError(source, code, message string, err error) ProviderError {
	return ProviderError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// LoadError records a session that could not be loaded. It carries enough
// context to diagnose the failure without aborting a season run.
type LoadError struct {
	Year    int
	Event   string
	Session models.SessionType
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %d %s %s: %v", e.Year, e.Event, e.Session, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SessionResult is the outcome of a session load: either a loaded session
// or the reason it failed.
type SessionResult struct {
	Session *models.Session
	Err     *LoadError
}

// Loaded reports whether the session is available
func (r SessionResult) Loaded() bool {
	return r.Err == nil && r.Session != nil
}

// Load fetches a session and folds any failure into the result
func Load(ctx context.Context, p Provider, year int, eventName string, sessionType models.SessionType) SessionResult {
	session, err := p.LoadSession(ctx, year, eventName, sessionType)
	if err == nil && session == nil {
		err = NewProviderError(p.Name(), ErrCodeNotFound, "provider returned no session", nil)
	}
	if err != nil {
		return SessionResult{Err: &LoadError{Year: year, Event: eventName, Session: sessionType, Err: err}}
	}
	return SessionResult{Session: session}
}
