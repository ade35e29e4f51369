package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/rainline/internal/models"
)

// scheduleResponse is the schedule payload served by a telemetry backend
type scheduleResponse struct {
	Season int         `json:"season"`
	Events []wireEvent `json:"events" validate:"dive"`
}

type wireEvent struct {
	RoundNumber int      `json:"round_number" validate:"gte=0"`
	EventName   string   `json:"event_name" validate:"required"`
	Country     string   `json:"country"`
	Location    string   `json:"location"`
	EventDate   string   `json:"event_date"`
	EventFormat string   `json:"event_format"`
	Sessions    []string `json:"sessions"`
}

// sessionResponse is the session payload. Lap and weather times are in
// seconds; a null weather array means the backend has no weather data.
type sessionResponse struct {
	Year      int           `json:"year"`
	EventName string        `json:"event_name" validate:"required"`
	Session   string        `json:"session" validate:"required"`
	Laps      []wireLap     `json:"laps" validate:"dive"`
	Weather   []wireWeather `json:"weather"`
	Drivers   []wireDriver  `json:"drivers" validate:"dive"`
}

type wireLap struct {
	Driver    string   `json:"driver" validate:"required"`
	LapNumber int      `json:"lap_number" validate:"gte=0"`
	LapTime   *float64 `json:"lap_time" validate:"omitempty,gte=0"`
	Compound  string   `json:"compound"`
	IsQuick   bool     `json:"is_quick"`
}

type wireWeather struct {
	Time      float64         `json:"time"`
	Rainfall  models.Rainfall `json:"rainfall"`
	AirTemp   float64         `json:"air_temp"`
	TrackTemp float64         `json:"track_temp"`
	Humidity  float64         `json:"humidity"`
}

type wireDriver struct {
	Abbreviation string `json:"abbreviation" validate:"required"`
	FullName     string `json:"full_name"`
	TeamName     string `json:"team_name"`
	DriverNumber string `json:"driver_number"`
}

var payloadValidator = validator.New()

func validatePayload(v interface{}) error {
	if err := payloadValidator.Struct(v); err != nil {
		return fmt.Errorf("payload validation failed: %w", err)
	}
	return nil
}

func convertEvents(resp *scheduleResponse, includeTesting bool) []models.Event {
	events := make([]models.Event, 0, len(resp.Events))
	for _, we := range resp.Events {
		event := convertEvent(we)
		if event.IsTesting() && !includeTesting {
			continue
		}
		events = append(events, event)
	}
	return events
}

func convertEvent(we wireEvent) models.Event {
	event := models.Event{
		RoundNumber: we.RoundNumber,
		Name:        we.EventName,
		Country:     we.Country,
		Location:    we.Location,
		Format:      models.EventFormat(strings.ToLower(we.EventFormat)),
	}
	if we.EventDate != "" {
		if t, err := time.Parse("2006-01-02", we.EventDate); err == nil {
			event.Date = t
		} else if t, err := time.Parse(time.RFC3339, we.EventDate); err == nil {
			event.Date = t
		}
	}
	for _, s := range we.Sessions {
		event.Sessions = append(event.Sessions, models.ParseSessionType(s))
	}
	return event
}

func convertSession(year int, resp *sessionResponse) *models.Session {
	session := &models.Session{
		Year:      year,
		EventName: resp.EventName,
		Type:      models.ParseSessionType(resp.Session),
		Laps:      make([]models.Lap, 0, len(resp.Laps)),
		Drivers:   make(map[string]models.DriverInfo, len(resp.Drivers)),
	}

	for _, wl := range resp.Laps {
		lap := models.Lap{
			Driver:    wl.Driver,
			LapNumber: wl.LapNumber,
			Compound:  models.ParseCompound(wl.Compound),
			Quick:     wl.IsQuick,
		}
		if wl.LapTime != nil {
			lap.LapTime = secondsToDuration(*wl.LapTime)
		}
		session.Laps = append(session.Laps, lap)
	}

	if len(resp.Weather) > 0 {
		session.Weather = make([]models.WeatherSample, 0, len(resp.Weather))
		for _, ww := range resp.Weather {
			session.Weather = append(session.Weather, models.WeatherSample{
				Time:      secondsToDuration(ww.Time),
				Rainfall:  ww.Rainfall,
				AirTemp:   ww.AirTemp,
				TrackTemp: ww.TrackTemp,
				Humidity:  ww.Humidity,
			})
		}
	}

	for _, wd := range resp.Drivers {
		session.Drivers[wd.Abbreviation] = models.DriverInfo{
			Code:     wd.Abbreviation,
			FullName: wd.FullName,
			TeamName: wd.TeamName,
			Number:   wd.DriverNumber,
		}
	}

	return session
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
