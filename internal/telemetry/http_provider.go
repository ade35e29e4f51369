package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/rainline/internal/models"
)

const (
	httpProviderName        = "http"
	errUnexpectedStatusBody = "unexpected status %d: %s"
)

// HTTPProvider implements Provider against a telemetry backend that exposes
// the schedule and session payloads as JSON.
type HTTPProvider struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Logger
}

// NewHTTPProvider creates a new HTTP telemetry provider
func NewHTTPProvider(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *HTTPProvider {
	if logger == nil {
		logger = logrus.New()
	}
	return &HTTPProvider{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Name returns the provider name
func (p *HTTPProvider) Name() string {
	return httpProviderName
}

// EventSchedule retrieves the season schedule
func (p *HTTPProvider) EventSchedule(ctx context.Context, year int, includeTesting bool) ([]models.Event, error) {
	endpoint := fmt.Sprintf("%s/schedule/%d", p.baseURL, year)

	var resp scheduleResponse
	if err := p.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if err := validatePayload(&resp); err != nil {
		return nil, NewProviderError(p.Name(), ErrCodeInvalidData, "invalid schedule payload", err)
	}

	events := convertEvents(&resp, includeTesting)
	p.logger.WithFields(logrus.Fields{"year": year, "events": len(events)}).Debug("Fetched event schedule")
	return events, nil
}

// LoadSession retrieves one session's laps, weather and drivers
func (p *HTTPProvider) LoadSession(ctx context.Context, year int, eventName string, sessionType models.SessionType) (*models.Session, error) {
	endpoint := fmt.Sprintf("%s/session/%d/%s/%s", p.baseURL, year, url.PathEscape(eventName), url.PathEscape(string(sessionType)))

	var resp sessionResponse
	if err := p.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if err := validatePayload(&resp); err != nil {
		return nil, NewProviderError(p.Name(), ErrCodeInvalidData, "invalid session payload", err)
	}

	session := convertSession(year, &resp)
	if session.Type != sessionType {
		p.logger.WithFields(logrus.Fields{
			"requested": sessionType,
			"returned":  session.Type,
			"event":     eventName,
		}).Warn("Provider returned a different session type than requested")
		session.Type = sessionType
	}
	return session, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NewProviderError(p.Name(), ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(ctx, req)
	if err != nil {
		return NewProviderError(p.Name(), ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return NewProviderError(p.Name(), ErrCodeNotFound, "resource not found", nil)
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewProviderError(p.Name(), ErrCodeAuthenticationFailed, "invalid API key", nil)
	case http.StatusTooManyRequests:
		return NewProviderError(p.Name(), ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NewProviderError(p.Name(), ErrCodeServerError, fmt.Sprintf(errUnexpectedStatusBody, resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewProviderError(p.Name(), ErrCodeInvalidData, "failed to parse response", err)
	}
	return nil
}
