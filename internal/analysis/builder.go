package analysis

import (
	"github.com/samber/lo"

	"github.com/yourusername/rainline/internal/models"
)

// driverBuilder accumulates one driver's session details during a run
type driverBuilder struct {
	code    string
	info    models.DriverInfo
	details []models.SessionDetail
}

func newDriverBuilder(code string, info models.DriverInfo) *driverBuilder {
	return &driverBuilder{code: code, info: info}
}

func (b *driverBuilder) add(detail models.SessionDetail) {
	b.details = append(b.details, detail)
}

// fillInfo keeps the first known metadata and only fills gaps
func (b *driverBuilder) fillInfo(info models.DriverInfo) {
	if b.info.FullName == "" {
		b.info.FullName = info.FullName
	}
	if b.info.TeamName == "" {
		b.info.TeamName = info.TeamName
	}
	if b.info.Number == "" {
		b.info.Number = info.Number
	}
}

// build finalizes the builder; drivers without details produce no result
func (b *driverBuilder) build() (models.DriverSeasonResult, bool) {
	if len(b.details) == 0 {
		return models.DriverSeasonResult{}, false
	}

	var sum float64
	for _, d := range b.details {
		sum += d.DeltaPercentage
	}
	races := lo.Uniq(lo.Map(b.details, func(d models.SessionDetail, _ int) string {
		return d.Event
	}))

	return models.DriverSeasonResult{
		DriverCode:         b.code,
		FullName:           b.info.FullName,
		TeamName:           b.info.TeamName,
		DriverNumber:       b.info.Number,
		AverageDelta:       sum / float64(len(b.details)),
		RacesAnalyzedCount: len(races),
		RacesAnalyzedList:  races,
		Sessions:           append([]models.SessionDetail(nil), b.details...),
	}, true
}

// seasonBuilder owns every driver builder of one run, in first-seen order
type seasonBuilder struct {
	order    []string
	builders map[string]*driverBuilder
}

func newSeasonBuilder() *seasonBuilder {
	return &seasonBuilder{builders: make(map[string]*driverBuilder)}
}

func (s *seasonBuilder) add(code string, info models.DriverInfo, detail models.SessionDetail) {
	b, ok := s.builders[code]
	if !ok {
		b = newDriverBuilder(code, info)
		s.builders[code] = b
		s.order = append(s.order, code)
	} else {
		b.fillInfo(info)
	}
	b.add(detail)
}

// results finalizes, sorts ascending by average delta and assigns dense ranks
func (s *seasonBuilder) results() []models.DriverSeasonResult {
	results := make([]models.DriverSeasonResult, 0, len(s.order))
	for _, code := range s.order {
		if r, ok := s.builders[code].build(); ok {
			results = append(results, r)
		}
	}
	rank(results)
	return results
}
