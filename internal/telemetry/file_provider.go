package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/rainline/internal/models"
)

const fileProviderName = "file"

// FileProvider serves telemetry exported to disk in the same JSON shape the
// HTTP backend returns:
//
//	<root>/<year>/schedule.json
//	<root>/<year>/<event_slug>/<session>.json
type FileProvider struct {
	root   string
	logger *logrus.Logger
}

// NewFileProvider creates a provider reading from an export directory
func NewFileProvider(root string, logger *logrus.Logger) *FileProvider {
	if logger == nil {
		logger = logrus.New()
	}
	return &FileProvider{root: root, logger: logger}
}

// Name returns the provider name
func (p *FileProvider) Name() string {
	return fileProviderName
}

// EventSchedule reads the season schedule from disk
func (p *FileProvider) EventSchedule(ctx context.Context, year int, includeTesting bool) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var resp scheduleResponse
	path := filepath.Join(p.root, strconv.Itoa(year), "schedule.json")
	if err := p.readJSON(path, &resp); err != nil {
		return nil, err
	}
	if err := validatePayload(&resp); err != nil {
		return nil, NewProviderError(p.Name(), ErrCodeInvalidData, "invalid schedule file", err)
	}
	return convertEvents(&resp, includeTesting), nil
}

// LoadSession reads one session export from disk
func (p *FileProvider) LoadSession(ctx context.Context, year int, eventName string, sessionType models.SessionType) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var resp sessionResponse
	path := filepath.Join(p.root, strconv.Itoa(year), EventSlug(eventName), string(sessionType)+".json")
	if err := p.readJSON(path, &resp); err != nil {
		return nil, err
	}
	if err := validatePayload(&resp); err != nil {
		return nil, NewProviderError(p.Name(), ErrCodeInvalidData, "invalid session file", err)
	}

	session := convertSession(year, &resp)
	session.Type = sessionType
	return session, nil
}

func (p *FileProvider) readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewProviderError(p.Name(), ErrCodeNotFound, fmt.Sprintf("%s not found", path), nil)
		}
		return NewProviderError(p.Name(), ErrCodeUnknown, "failed to read export", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return NewProviderError(p.Name(), ErrCodeInvalidData, fmt.Sprintf("failed to parse %s", path), err)
	}
	return nil
}

// EventSlug turns an event name into a directory name
func EventSlug(eventName string) string {
	slug := strings.ToLower(strings.TrimSpace(eventName))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		}
		return -1
	}, slug)
	return slug
}
