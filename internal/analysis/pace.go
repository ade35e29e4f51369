package analysis

import (
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/yourusername/rainline/internal/models"
)

// WetPaceResult is a driver's representative pace in a wet session
type WetPaceResult struct {
	Pace     float64
	LapCount int
	Compound models.Compound
}

// WetPace returns the median quick-lap time of a driver on INTERMEDIATE or
// WET tyres, together with the most used of those compounds.
func WetPace(session *models.Session, driver string) (WetPaceResult, bool) {
	if session == nil {
		return WetPaceResult{}, false
	}
	laps := driverQuickLaps(session.Laps, driver, func(l models.Lap) bool {
		return l.Compound.IsWetWeather()
	})
	if len(laps) == 0 {
		return WetPaceResult{}, false
	}

	return WetPaceResult{
		Pace:     medianLapSeconds(laps),
		LapCount: len(laps),
		Compound: modeCompound(laps),
	}, true
}

// DryPace returns the median quick-lap time of a driver and the number of
// laps it was computed from.
func DryPace(session *models.Session, driver string) (float64, int, bool) {
	if session == nil {
		return 0, 0, false
	}
	laps := driverQuickLaps(session.Laps, driver, nil)
	if len(laps) == 0 {
		return 0, 0, false
	}
	return medianLapSeconds(laps), len(laps), true
}

// wetDrivers lists drivers with at least one timed quick wet-compound lap, in
// order of first appearance.
func wetDrivers(session *models.Session) []string {
	laps := lo.Filter(session.Laps, func(l models.Lap, _ int) bool {
		return l.Quick && l.HasTime() && l.Compound.IsWetWeather()
	})
	return lo.Uniq(lo.Map(laps, func(l models.Lap, _ int) string {
		return l.Driver
	}))
}

func driverQuickLaps(laps []models.Lap, driver string, keep func(models.Lap) bool) []models.Lap {
	return lo.Filter(laps, func(l models.Lap, _ int) bool {
		if l.Driver != driver || !l.Quick || !l.HasTime() {
			return false
		}
		return keep == nil || keep(l)
	})
}

func medianLapSeconds(laps []models.Lap) float64 {
	return median(lo.Map(laps, func(l models.Lap, _ int) float64 {
		return l.LapTime.Seconds()
	}))
}

// median of a non-empty slice; the input is not modified
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// modeCompound picks the most frequent compound; ties go to the compound seen first
func modeCompound(laps []models.Lap) models.Compound {
	compounds := lo.Map(laps, func(l models.Lap, _ int) models.Compound {
		return l.Compound
	})
	counts := lo.CountValues(compounds)

	best := compounds[0]
	for _, c := range lo.Uniq(compounds) {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

func roundTo(value float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return f
}
