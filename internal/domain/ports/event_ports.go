package ports

import (
	"context"

	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
)

type EventSource interface {
	FetchMetadata(ctx context.Context, id models.EventID) (models.EventMetadata, error)
	FetchPlacings(ctx context.Context, id models.EventID) (models.Placings, error)
}
