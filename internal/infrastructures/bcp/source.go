package bcp

import (
	"context"
	"errors"
	"fmt"

	derr "github.com/olliswe/bcp-to-t3-api/internal/domain/errors"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/bcp/dto"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/bcp/http/client"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/bcp/mappers"
)

const (
	DefaultPageSize = 100
	DefaultMaxPages = 15
)

type Source struct {
	client   *client.Client
	pageSize int
	maxPages int
}

func NewSource(client *client.Client, pageSize, maxPages int) *Source {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	return &Source{
		client:   client,
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

func (s *Source) FetchMetadata(ctx context.Context, id models.EventID) (models.EventMetadata, error) {
	resp, err := s.client.GetEvent(ctx, string(id))
	if err != nil {
		if errors.Is(err, derr.ErrEventNotFound) {
			return models.EventMetadata{}, derr.ErrEventNotFound
		}
		return models.EventMetadata{}, fmt.Errorf("get event %s: %w", id, err)
	}

	meta, err := mappers.ToEventMetadata(resp)
	if err != nil {
		return models.EventMetadata{}, fmt.Errorf("map event %s: %w", id, err)
	}

	return meta, nil
}

// FetchPlacings walks the placings cursor page by page. The walk ends on an
// empty page, on a page without a follow-up cursor, or after maxPages pages.
// Hitting the page cap while the remote still offers a cursor marks the
// result as truncated.
func (s *Source) FetchPlacings(ctx context.Context, id models.EventID) (models.Placings, error) {
	var (
		result models.Placings
		cursor string
	)

	for result.Pages < s.maxPages {
		resp, err := s.client.GetPlayers(ctx, dto.GetPlayersRequest{
			EventID: string(id),
			Limit:   s.pageSize,
			NextKey: cursor,
		})
		if err != nil {
			return models.Placings{}, fmt.Errorf("get players page %d for event %s: %w", result.Pages+1, id, err)
		}
		result.Pages++

		if len(resp.Data) == 0 {
			return result, nil
		}
		result.Records = append(result.Records, mappers.ToPlacingRecords(resp.Data)...)

		if resp.NextKey == "" {
			return result, nil
		}
		cursor = resp.NextKey
	}

	result.Truncated = true
	return result, nil
}
