package mappers

import (
	"fmt"

	derr "github.com/olliswe/bcp-to-t3-api/internal/domain/errors"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/bcp/dto"
)

const dateOnlyLength = len("2006-01-02")

func ToEventMetadata(resp dto.GetEventResponse) (models.EventMetadata, error) {
	if resp.EventDate == nil {
		return models.EventMetadata{}, fmt.Errorf("%w: event date is missing", derr.ErrMalformedPayload)
	}

	return models.EventMetadata{
		NumberOfPlayers: resp.TotalPlayers,
		NumberOfRounds:  resp.NumberOfRounds,
		TournamentName:  resp.Name,
		TournamentDate:  dateOnly(*resp.EventDate),
		GameSize:        models.NewGameSize(resp.PointsValue),
	}, nil
}

func dateOnly(value string) string {
	if len(value) <= dateOnlyLength {
		return value
	}
	return value[:dateOnlyLength]
}
