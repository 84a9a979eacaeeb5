package dto

type GetEventResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	EventDate      *string  `json:"eventDate"`
	TotalPlayers   int      `json:"totalPlayers"`
	NumberOfRounds int      `json:"numberOfRounds"`
	PointsValue    *float64 `json:"pointsValue"`
}
