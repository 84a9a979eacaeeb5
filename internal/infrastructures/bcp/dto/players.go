package dto

type GetPlayersRequest struct {
	EventID string
	Limit   int
	NextKey string
}

type GetPlayersResponse struct {
	Data    []PlacingRow `json:"data"`
	NextKey string       `json:"nextKey"`
}

// PlacingRow is one player of the placings listing. Depending on the API
// version team and army come either as flat names or as expanded objects.
type PlacingRow struct {
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Placing       int        `json:"placing"`
	TeamName      string     `json:"teamName"`
	Team          *NamedItem `json:"team"`
	ArmyName      string     `json:"armyName"`
	Army          *NamedItem `json:"army"`
	NumWins       *int       `json:"numWins"`
	PathToVictory *float64   `json:"pathToVictory"`
	UserID        string     `json:"userId"`
}

type NamedItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
