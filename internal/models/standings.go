package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionDetail is one driver's analysed wet-session record
type SessionDetail struct {
	Event           string   `json:"event"`
	Session         string   `json:"session"`
	BaselineSession string   `json:"baseline_session"`
	DryPace         float64  `json:"dry_pace"`
	WetPace         float64  `json:"wet_pace"`
	DryLapCount     int      `json:"dry_lap_count"`
	WetLapCount     int      `json:"wet_lap_count"`
	WetCompound     Compound `json:"wet_compound"`
	DeltaPercentage float64  `json:"delta_percentage"`
}

// DriverSeasonResult is one driver's season aggregate
type DriverSeasonResult struct {
	Rank               int             `json:"rank"`
	DriverCode         string          `json:"driver_code"`
	FullName           string          `json:"full_name"`
	TeamName           string          `json:"team_name"`
	DriverNumber       string          `json:"driver_number,omitempty"`
	AverageDelta       float64         `json:"average_wet_to_dry_delta"`
	RacesAnalyzedCount int             `json:"races_analyzed_count"`
	RacesAnalyzedList  []string        `json:"races_analyzed_list"`
	Sessions           []SessionDetail `json:"sessions,omitempty"`
}

// SeasonStandings is the canonical persisted document for one season
type SeasonStandings struct {
	Season     int                  `json:"season"`
	RunID      uuid.UUID            `json:"run_id,omitempty"`
	ComputedAt time.Time            `json:"computed_at,omitempty"`
	Standings  []DriverSeasonResult `json:"standings"`
}

// Driver finds a driver's entry in the standings
func (s *SeasonStandings) Driver(code string) (DriverSeasonResult, bool) {
	for _, d := range s.Standings {
		if d.DriverCode == code {
			return d, true
		}
	}
	return DriverSeasonResult{}, false
}

// DriverCareer collects a driver's results across every persisted season
type DriverCareer struct {
	DriverCode  string                     `json:"driver_code"`
	FullName    string                     `json:"full_name"`
	TeamHistory map[int]string             `json:"team_history"`
	Seasons     map[int]DriverSeasonResult `json:"seasons"`
}
