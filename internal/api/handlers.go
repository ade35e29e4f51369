package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/rainline/internal/models"
)

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type handlers struct {
	reader StandingsReader
	logger *logrus.Logger
}

func (h *handlers) seasonAnalysis(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	standings, err := h.reader.GetSeasonAnalysis(r.Context(), year)
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("Analysis for the %d season not found.", year))
		return
	case errors.Is(err, models.ErrInvalidDocument):
		writeError(w, http.StatusInternalServerError, "Failed to process analysis file.")
		return
	case err != nil:
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

func (h *handlers) driverCareer(w http.ResponseWriter, r *http.Request) {
	career, err := h.reader.GetDriverCareer(r.Context(), mux.Vars(r)["code"])
	switch {
	case errors.Is(err, models.ErrDriverNotFound):
		writeError(w, http.StatusNotFound, "Driver not found")
		return
	case err != nil:
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, career)
}

func (h *handlers) listDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.reader.ListDrivers(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if drivers == nil {
		drivers = []string{}
	}
	writeJSON(w, http.StatusOK, drivers)
}

func (h *handlers) seasonSchedule(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	events, err := h.reader.Season(r.Context(), year)
	if err != nil {
		h.logger.WithError(err).WithField("season", year).Warn("Schedule lookup failed")
		writeError(w, http.StatusBadGateway, "Failed to load season schedule.")
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *handlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WithError(err).WithFields(logrus.Fields{
		"request_id": RequestID(r.Context()),
		"path":       r.URL.Path,
	}).Error("Request failed")
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}

func parseYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Season must be an integer.")
		return 0, false
	}
	return year, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
