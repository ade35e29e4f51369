package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Compound represents a tyre compound category
type Compound string

const (
	CompoundSoft         Compound = "SOFT"
	CompoundMedium       Compound = "MEDIUM"
	CompoundHard         Compound = "HARD"
	CompoundIntermediate Compound = "INTERMEDIATE"
	CompoundWet          Compound = "WET"
	CompoundTest         Compound = "TEST"
	CompoundUnknown      Compound = "UNKNOWN"
)

// ParseCompound normalizes a provider compound label
func ParseCompound(s string) Compound {
	switch c := Compound(strings.ToUpper(strings.TrimSpace(s))); c {
	case CompoundSoft, CompoundMedium, CompoundHard, CompoundIntermediate, CompoundWet, CompoundTest:
		return c
	case "INTER", "INTERS":
		return CompoundIntermediate
	case "FULL WET", "FULL_WET", "WETS":
		return CompoundWet
	}
	return CompoundUnknown
}

// IsWetWeather reports whether the compound is INTERMEDIATE or WET
func (c Compound) IsWetWeather() bool {
	return c == CompoundIntermediate || c == CompoundWet
}

// Rainfall is a rainfall reading. Providers report it either as a boolean
// flag or as a numeric intensity; both decode into the same value, with true
// mapped to 1 and false to 0.
type Rainfall float64

// Raining reports whether the sample indicates rain
func (r Rainfall) Raining() bool {
	return r > 0
}

// UnmarshalJSON accepts booleans, numbers, numeric strings and null
func (r *Rainfall) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*r = 1
		} else {
			*r = 0
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*r = Rainfall(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid rainfall value %s", string(data))
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "no":
		*r = 0
		return nil
	case "true", "yes":
		*r = 1
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid rainfall value %q: %w", s, err)
	}
	*r = Rainfall(f)
	return nil
}

// WeatherSample is one point of a session's weather time series
type WeatherSample struct {
	Time      time.Duration `json:"time"`
	Rainfall  Rainfall      `json:"rainfall"`
	AirTemp   float64       `json:"air_temp"`
	TrackTemp float64       `json:"track_temp"`
	Humidity  float64       `json:"humidity"`
}

// Lap is one timed lap by one driver
type Lap struct {
	Driver    string        `json:"driver"`
	LapNumber int           `json:"lap_number"`
	LapTime   time.Duration `json:"lap_time"`
	Compound  Compound      `json:"compound"`
	Quick     bool          `json:"is_quick"`
}

// HasTime reports whether the lap has a recorded lap time
func (l Lap) HasTime() bool {
	return l.LapTime > 0
}

// DriverInfo is static per-driver metadata for a season
type DriverInfo struct {
	Code     string `json:"driver_code"`
	FullName string `json:"full_name"`
	TeamName string `json:"team_name"`
	Number   string `json:"driver_number"`
}

// Session is a loaded timed session of an event. Weather is nil when the
// provider has no weather data for the session.
type Session struct {
	Year      int                   `json:"year"`
	EventName string                `json:"event_name"`
	Type      SessionType           `json:"session_type"`
	Laps      []Lap                 `json:"laps"`
	Weather   []WeatherSample       `json:"weather"`
	Drivers   map[string]DriverInfo `json:"drivers"`
}

// Label returns the short session label used in reports
func (s *Session) Label() string {
	return string(s.Type)
}

// HasWeather reports whether any weather samples were recorded
func (s *Session) HasWeather() bool {
	return len(s.Weather) > 0
}

// Driver returns the metadata for a driver code
func (s *Session) Driver(code string) (DriverInfo, bool) {
	if s.Drivers == nil {
		return DriverInfo{}, false
	}
	info, ok := s.Drivers[code]
	return info, ok
}
