package analysis

import (
	"math"
	"time"

	"github.com/yourusername/rainline/internal/models"
	"github.com/yourusername/rainline/internal/telemetry"
)

const testYear = 2021

var testDrivers = map[string]models.DriverInfo{
	"HAM": {Code: "HAM", FullName: "Lewis Hamilton", TeamName: "Mercedes", Number: "44"},
	"VER": {Code: "VER", FullName: "Max Verstappen", TeamName: "Red Bull Racing", Number: "33"},
	"NOR": {Code: "NOR", FullName: "Lando Norris", TeamName: "McLaren", Number: "4"},
}

func secs(s float64) time.Duration {
	return time.Duration(math.Round(s*1000)) * time.Millisecond
}

func quickLap(driver string, seconds float64, compound models.Compound) models.Lap {
	return models.Lap{Driver: driver, LapTime: secs(seconds), Compound: compound, Quick: true}
}

func dryWeather() []models.WeatherSample {
	return []models.WeatherSample{{Rainfall: 0, AirTemp: 21}, {Rainfall: 0, AirTemp: 22}}
}

func wetWeather() []models.WeatherSample {
	return []models.WeatherSample{{Rainfall: 0, AirTemp: 15}, {Rainfall: 1, AirTemp: 14}}
}

func newSession(event string, st models.SessionType, weather []models.WeatherSample, laps ...models.Lap) *models.Session {
	return &models.Session{
		Year:      testYear,
		EventName: event,
		Type:      st,
		Laps:      laps,
		Weather:   weather,
		Drivers:   testDrivers,
	}
}

func newEvent(round int, name string) models.Event {
	return models.Event{RoundNumber: round, Name: name, Format: models.EventFormatConventional}
}

// spaProvider holds the Spa scenario: FP2 dry with HAM at 95.000s, race wet
// with HAM at 101.650s on intermediates.
func spaProvider() *telemetry.MemoryProvider {
	p := telemetry.NewMemoryProvider()
	p.AddEvent(testYear, newEvent(12, "Spa"))
	p.AddSession(newSession("Spa", models.SessionPractice2, dryWeather(),
		quickLap("HAM", 95.5, models.CompoundSoft),
		quickLap("HAM", 94.5, models.CompoundMedium),
		quickLap("HAM", 95.0, models.CompoundSoft),
	))
	p.AddSession(newSession("Spa", models.SessionRace, wetWeather(),
		quickLap("HAM", 101.2, models.CompoundIntermediate),
		quickLap("HAM", 101.65, models.CompoundIntermediate),
		quickLap("HAM", 102.1, models.CompoundIntermediate),
	))
	return p
}
