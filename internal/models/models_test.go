package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRainfallUnmarshal(t *testing.T) {
	tests := []struct {
		input    string
		expected Rainfall
		raining  bool
	}{
		{`true`, 1, true},
		{`false`, 0, false},
		{`0.4`, 0.4, true},
		{`0`, 0, false},
		{`null`, 0, false},
		{`"True"`, 1, true},
		{`"no"`, 0, false},
		{`"1.5"`, 1.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var r Rainfall
			require.NoError(t, json.Unmarshal([]byte(tt.input), &r))
			assert.Equal(t, tt.expected, r)
			assert.Equal(t, tt.raining, r.Raining())
		})
	}
}

func TestRainfallUnmarshalInvalid(t *testing.T) {
	var r Rainfall
	assert.Error(t, json.Unmarshal([]byte(`"drizzle"`), &r))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &r))
}

func TestParseCompound(t *testing.T) {
	assert.Equal(t, CompoundIntermediate, ParseCompound("inter"))
	assert.Equal(t, CompoundIntermediate, ParseCompound("INTERMEDIATE"))
	assert.Equal(t, CompoundWet, ParseCompound("wet"))
	assert.Equal(t, CompoundSoft, ParseCompound(" soft "))
	assert.Equal(t, CompoundUnknown, ParseCompound("HYPERSOFT"))
	assert.Equal(t, CompoundUnknown, ParseCompound(""))

	assert.True(t, CompoundWet.IsWetWeather())
	assert.True(t, CompoundIntermediate.IsWetWeather())
	assert.False(t, CompoundHard.IsWetWeather())
	assert.False(t, CompoundUnknown.IsWetWeather())
}

func TestParseSessionType(t *testing.T) {
	assert.Equal(t, SessionPractice1, ParseSessionType("Practice 1"))
	assert.Equal(t, SessionPractice3, ParseSessionType("fp3"))
	assert.Equal(t, SessionQualifying, ParseSessionType("Qualifying"))
	assert.Equal(t, SessionSprintQualifying, ParseSessionType("Sprint Shootout"))
	assert.Equal(t, SessionRace, ParseSessionType("R"))
	assert.Equal(t, SessionType("Day 1"), ParseSessionType("Day 1"))

	assert.True(t, SessionPractice2.IsPractice())
	assert.False(t, SessionSprint.IsPractice())
}

func TestEventHasSession(t *testing.T) {
	conventional := Event{Name: "Spa"}
	assert.True(t, conventional.HasSession(SessionPractice3), "events without metadata run every session")

	sprint := Event{Name: "Interlagos", Format: EventFormatSprint, Sessions: []SessionType{SessionPractice1, SessionQualifying, SessionSprint, SessionRace}}
	assert.True(t, sprint.HasSession(SessionPractice1))
	assert.False(t, sprint.HasSession(SessionPractice2))
	assert.False(t, sprint.IsTesting())

	preseason := Event{Format: EventFormatTesting}
	assert.True(t, preseason.IsTesting())
}

func TestSessionDriverLookup(t *testing.T) {
	s := &Session{Type: SessionRace}
	_, ok := s.Driver("HAM")
	assert.False(t, ok)
	assert.Equal(t, "R", s.Label())
	assert.False(t, s.HasWeather())

	s.Drivers = map[string]DriverInfo{"HAM": {Code: "HAM", TeamName: "Mercedes"}}
	info, ok := s.Driver("HAM")
	assert.True(t, ok)
	assert.Equal(t, "Mercedes", info.TeamName)
}

func TestSeasonStandingsDriver(t *testing.T) {
	s := SeasonStandings{Season: 2021, Standings: []DriverSeasonResult{{DriverCode: "VER", Rank: 1}, {DriverCode: "HAM", Rank: 2}}}

	d, ok := s.Driver("HAM")
	require.True(t, ok)
	assert.Equal(t, 2, d.Rank)

	_, ok = s.Driver("NOR")
	assert.False(t, ok)
}
