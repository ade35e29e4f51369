package models

import (
	"strings"
	"time"
)

// EventFormat describes how a race weekend is structured
type EventFormat string

const (
	EventFormatConventional     EventFormat = "conventional"
	EventFormatSprint           EventFormat = "sprint"
	EventFormatSprintShootout   EventFormat = "sprint_shootout"
	EventFormatSprintQualifying EventFormat = "sprint_qualifying"
	EventFormatTesting          EventFormat = "testing"
)

// SessionType identifies a timed activity within an event
type SessionType string

const (
	SessionPractice1        SessionType = "FP1"
	SessionPractice2        SessionType = "FP2"
	SessionPractice3        SessionType = "FP3"
	SessionSprintQualifying SessionType = "SQ"
	SessionSprint           SessionType = "S"
	SessionQualifying       SessionType = "Q"
	SessionRace             SessionType = "R"
)

// PracticeSessions lists practice sessions in the order they run
var PracticeSessions = []SessionType{SessionPractice1, SessionPractice2, SessionPractice3}

// IsPractice reports whether the session is a free practice session
func (s SessionType) IsPractice() bool {
	switch s {
	case SessionPractice1, SessionPractice2, SessionPractice3:
		return true
	}
	return false
}

// ParseSessionType maps provider and user spellings onto a SessionType.
// Unknown names are returned as-is.
func ParseSessionType(name string) SessionType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fp1", "practice 1":
		return SessionPractice1
	case "fp2", "practice 2":
		return SessionPractice2
	case "fp3", "practice 3":
		return SessionPractice3
	case "q", "qualifying":
		return SessionQualifying
	case "sq", "sprint qualifying", "sprint shootout":
		return SessionSprintQualifying
	case "s", "sprint":
		return SessionSprint
	case "r", "race":
		return SessionRace
	}
	return SessionType(name)
}

// Event is one race weekend of a season
type Event struct {
	RoundNumber int           `json:"round_number"`
	Name        string        `json:"event_name" validate:"required"`
	Country     string        `json:"country"`
	Location    string        `json:"location"`
	Date        time.Time     `json:"event_date"`
	Format      EventFormat   `json:"event_format"`
	Sessions    []SessionType `json:"sessions"`
}

// IsTesting reports whether the event is a pre-season or in-season test
func (e *Event) IsTesting() bool {
	return e.Format == EventFormatTesting
}

// HasSession reports whether the event schedule lists the session type.
// An event without session metadata is assumed to run every session.
func (e *Event) HasSession(st SessionType) bool {
	if len(e.Sessions) == 0 {
		return true
	}
	for _, s := range e.Sessions {
		if s == st {
			return true
		}
	}
	return false
}
