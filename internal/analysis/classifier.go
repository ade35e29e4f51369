// Package analysis implements the wet-weather performance engine: session
// classification, dry baselines, wet pace extraction and season ranking.
package analysis

import (
	"fmt"
	"strings"

	"github.com/yourusername/rainline/internal/models"
)

// MissingWeatherPolicy decides whether a session without any weather samples
// may serve as a dry baseline.
type MissingWeatherPolicy string

const (
	MissingWeatherAccept MissingWeatherPolicy = "accept"
	MissingWeatherReject MissingWeatherPolicy = "reject"
)

// ParseMissingWeatherPolicy parses a policy name; empty means accept
func ParseMissingWeatherPolicy(s string) (MissingWeatherPolicy, error) {
	switch p := MissingWeatherPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return MissingWeatherAccept, nil
	case MissingWeatherAccept, MissingWeatherReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown missing weather policy %q", s)
	}
}

// Evidence names the signal that decided a classification
type Evidence string

const (
	EvidenceRainfall    Evidence = "rainfall"
	EvidenceWetCompound Evidence = "wet_compound"
	EvidenceNone        Evidence = "none"
)

// Classification is the result of inspecting a session's weather and tyres
type Classification struct {
	Wet            bool
	Evidence       Evidence
	WeatherPresent bool
}

// Classify inspects rainfall first, then wet-weather compounds. Missing
// weather data is never taken as evidence of rain.
func Classify(session *models.Session) Classification {
	if session == nil {
		return Classification{Evidence: EvidenceNone}
	}

	c := Classification{Evidence: EvidenceNone, WeatherPresent: session.HasWeather()}
	for _, sample := range session.Weather {
		if sample.Rainfall.Raining() {
			c.Wet = true
			c.Evidence = EvidenceRainfall
			return c
		}
	}
	for _, lap := range session.Laps {
		if lap.Compound.IsWetWeather() {
			c.Wet = true
			c.Evidence = EvidenceWetCompound
			return c
		}
	}
	return c
}

// IsWet reports whether a loaded session ran in wet conditions
func IsWet(session *models.Session) bool {
	return Classify(session).Wet
}

// IsDryBaseline reports whether a loaded session is dry enough to be used as
// a baseline. Sessions without weather samples are decided by policy.
func IsDryBaseline(session *models.Session, policy MissingWeatherPolicy) bool {
	if session == nil {
		return false
	}
	c := Classify(session)
	if c.Wet {
		return false
	}
	if !c.WeatherPresent && policy == MissingWeatherReject {
		return false
	}
	return true
}
