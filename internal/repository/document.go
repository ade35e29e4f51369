package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yourusername/rainline/internal/models"
)

// DocumentShape identifies how a standings document was stored
type DocumentShape int

const (
	// ShapeWrapped is the canonical {"season": ..., "standings": [...]} document
	ShapeWrapped DocumentShape = iota
	// ShapeLegacyList is a bare list of driver results written by older runs
	ShapeLegacyList
)

func (s DocumentShape) String() string {
	switch s {
	case ShapeWrapped:
		return "wrapped"
	case ShapeLegacyList:
		return "legacy_list"
	}
	return "unknown"
}

// StandingsDocument is a decoded standings document together with the
// shape it was read from.
type StandingsDocument struct {
	Shape     DocumentShape
	Standings models.SeasonStandings
}

type wrappedDocument struct {
	models.SeasonStandings
	Standings *[]models.DriverSeasonResult `json:"standings"`
}

// DecodeStandingsDocument decodes either document shape into the canonical
// model. season is used when the document does not carry its own.
func DecodeStandingsDocument(season int, data []byte) (StandingsDocument, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return StandingsDocument{}, fmt.Errorf("%w: empty document", models.ErrInvalidDocument)
	}

	switch data[0] {
	case '[':
		var list []models.DriverSeasonResult
		if err := json.Unmarshal(data, &list); err != nil {
			return StandingsDocument{}, fmt.Errorf("%w: %v", models.ErrInvalidDocument, err)
		}
		// Legacy files may predate stored ranks; their order is the ranking
		for i := range list {
			if list[i].Rank == 0 {
				list[i].Rank = i + 1
			}
		}
		return StandingsDocument{
			Shape:     ShapeLegacyList,
			Standings: models.SeasonStandings{Season: season, Standings: list},
		}, nil

	case '{':
		var doc wrappedDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return StandingsDocument{}, fmt.Errorf("%w: %v", models.ErrInvalidDocument, err)
		}
		if doc.Standings == nil {
			return StandingsDocument{}, fmt.Errorf("%w: missing standings", models.ErrInvalidDocument)
		}
		standings := doc.SeasonStandings
		standings.Standings = *doc.Standings
		if standings.Season == 0 {
			standings.Season = season
		}
		return StandingsDocument{Shape: ShapeWrapped, Standings: standings}, nil
	}

	return StandingsDocument{}, fmt.Errorf("%w: unexpected document type", models.ErrInvalidDocument)
}

// EncodeStandings writes the canonical wrapped document
func EncodeStandings(standings *models.SeasonStandings) ([]byte, error) {
	doc := *standings
	if doc.Standings == nil {
		doc.Standings = []models.DriverSeasonResult{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings: %w", err)
	}
	return data, nil
}
