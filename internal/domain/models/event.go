package models

import (
	"strconv"
)

const GameSizeNotAvailable = "N/A"

type EventID string

// GameSize is the points value of an event. A missing or zero value renders
// as "N/A".
type GameSize struct {
	Points float64
	Valid  bool
}

func NewGameSize(points *float64) GameSize {
	if points == nil || *points == 0 {
		return GameSize{}
	}
	return GameSize{Points: *points, Valid: true}
}

func (g GameSize) String() string {
	if !g.Valid {
		return GameSizeNotAvailable
	}
	return strconv.FormatFloat(g.Points, 'f', -1, 64)
}

func (g GameSize) MarshalJSON() ([]byte, error) {
	if !g.Valid {
		return []byte(strconv.Quote(GameSizeNotAvailable)), nil
	}
	return []byte(strconv.FormatFloat(g.Points, 'f', -1, 64)), nil
}

type EventMetadata struct {
	NumberOfPlayers int
	NumberOfRounds  int
	TournamentName  string
	TournamentDate  string
	GameSize        GameSize
}

type PlacingRecord struct {
	FirstName      string
	LastName       string
	Placing        int
	Team           string
	Faction        string
	Wins           int
	PathToVictory  float64
	ExternalUserID string
}

// Placings is the result of walking the placings cursor. Truncated is set
// when the page cap stopped the walk before the remote cursor ran out.
type Placings struct {
	Records   []PlacingRecord
	Pages     int
	Truncated bool
}

// EventPlacing is the output record of the event API flow.
type EventPlacing struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	T3Nickname     string   `json:"t3_nickname"`
	Placing        int      `json:"placing"`
	Wins           int      `json:"wins"`
	PathToVictory  float64  `json:"path_to_victory"`
	BCPUserID      string   `json:"bcp_user_id"`
	City           string   `json:"city"`
	Team           string   `json:"team"`
	Faction        string   `json:"faction"`
	NumberPlayers  int      `json:"number_players"`
	NumberRounds   int      `json:"number_rounds"`
	TournamentName string   `json:"tournament_name"`
	TournamentID   EventID  `json:"tournament_id"`
	TournamentDate string   `json:"tournament_date"`
	GameSize       GameSize `json:"game_size"`
}

// NewEventPlacing flattens one placing against the event metadata. The
// nickname and city columns exist for parity with the scrape flow and are
// always empty here.
func NewEventPlacing(id EventID, meta EventMetadata, p PlacingRecord) EventPlacing {
	return EventPlacing{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		T3Nickname:     "",
		Placing:        p.Placing,
		Wins:           p.Wins,
		PathToVictory:  p.PathToVictory,
		BCPUserID:      p.ExternalUserID,
		City:           "",
		Team:           p.Team,
		Faction:        p.Faction,
		NumberPlayers:  meta.NumberOfPlayers,
		NumberRounds:   meta.NumberOfRounds,
		TournamentName: meta.TournamentName,
		TournamentID:   id,
		TournamentDate: meta.TournamentDate,
		GameSize:       meta.GameSize,
	}
}

type EventPlacings struct {
	Records   []EventPlacing
	Truncated bool
}
