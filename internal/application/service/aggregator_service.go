package service

import (
	"context"
	"fmt"
	"strings"

	derr "github.com/olliswe/bcp-to-t3-api/internal/domain/errors"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "bcp-to-t3/service"

type AggregatorService struct {
	log               *zap.Logger
	roster            ports.RosterExtractor
	nicknames         ports.NicknameResolver
	events            ports.EventSource
	lookupConcurrency int
}

func NewAggregatorService(log *zap.Logger, roster ports.RosterExtractor, nicknames ports.NicknameResolver, events ports.EventSource, lookupConcurrency int) *AggregatorService {
	if log == nil {
		log = zap.NewNop()
	}

	return &AggregatorService{
		log:               log,
		roster:            roster,
		nicknames:         nicknames,
		events:            events,
		lookupConcurrency: lookupConcurrency,
	}
}

func (s *AggregatorService) LookupNickname(ctx context.Context, name models.PlayerName) (models.NicknameLookup, error) {
	const op = "service.LookupNickname"
	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	defer span.End()

	lookup, err := s.nicknames.ResolveNickname(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "nickname lookup failed")
		return models.NicknameLookup{}, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Bool("t3.found", lookup.Found))
	return lookup, nil
}

// ScrapeEvent reads the roster from an event page and resolves a nickname for
// every player concurrently. A failed lookup only affects its own player,
// who is reported with the "unknown" nickname.
func (s *AggregatorService) ScrapeEvent(ctx context.Context, eventURL string) ([]models.ScrapedPlayer, error) {
	const op = "service.ScrapeEvent"
	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	defer span.End()

	logger := s.log.With(
		zap.String("op", op),
		zap.String("event_url", eventURL),
	)

	if strings.TrimSpace(eventURL) == "" {
		span.SetStatus(otelcodes.Error, "empty event url")
		return nil, fmt.Errorf("%s: event url is empty: %w", op, derr.ErrInvalidInput)
	}

	entries, err := s.roster.Extract(ctx, eventURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "roster extraction failed")
		return nil, fmt.Errorf("%s: extract roster: %w", op, err)
	}

	lookups := make([]models.NicknameLookup, len(entries))
	failures := make([]error, len(entries))

	g, gCtx := errgroup.WithContext(ctx)
	if s.lookupConcurrency > 0 {
		g.SetLimit(s.lookupConcurrency)
	}
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			lookup, err := s.nicknames.ResolveNickname(gCtx, entry.PlayerName)
			if err != nil {
				failures[i] = err
				return nil
			}
			lookups[i] = lookup
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "scrape canceled")
		return nil, fmt.Errorf("%s: resolve nicknames: %w", op, err)
	}

	players := make([]models.ScrapedPlayer, len(entries))
	failed := 0
	for i, entry := range entries {
		if failures[i] != nil {
			failed++
			logger.Warn("nickname lookup failed",
				zap.Int("row", entry.Index),
				zap.String("first_name", entry.FirstName),
				zap.String("last_name", entry.LastName),
				zap.Error(failures[i]),
			)
			span.RecordError(failures[i])
		}
		players[i] = models.NewScrapedPlayer(entry, lookups[i])
	}

	span.SetAttributes(
		attribute.Int("roster.players", len(players)),
		attribute.Int("t3.failed_lookups", failed),
	)
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("event roster aggregated",
		zap.Int("players", len(players)),
		zap.Int("failed_lookups", failed),
	)
	return players, nil
}

// EventPlacings joins the event metadata with every placing of the event.
// Metadata is fetched before placings; either failure aborts the request.
func (s *AggregatorService) EventPlacings(ctx context.Context, id models.EventID) (models.EventPlacings, error) {
	const op = "service.EventPlacings"
	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.String("bcp.event_id", string(id)))

	logger := s.log.With(
		zap.String("op", op),
		zap.String("event_id", string(id)),
	)

	if strings.TrimSpace(string(id)) == "" {
		span.SetStatus(otelcodes.Error, "empty event id")
		return models.EventPlacings{}, fmt.Errorf("%s: event id is empty: %w", op, derr.ErrInvalidInput)
	}

	meta, err := s.events.FetchMetadata(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "metadata fetch failed")
		return models.EventPlacings{}, fmt.Errorf("%s: fetch metadata: %w", op, err)
	}

	placings, err := s.events.FetchPlacings(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "placings fetch failed")
		return models.EventPlacings{}, fmt.Errorf("%s: fetch placings: %w", op, err)
	}

	records := make([]models.EventPlacing, 0, len(placings.Records))
	for _, p := range placings.Records {
		records = append(records, models.NewEventPlacing(id, meta, p))
	}

	if placings.Truncated {
		logger.Warn("placings truncated at page cap",
			zap.Int("pages", placings.Pages),
			zap.Int("records", len(records)),
		)
		span.AddEvent("bcp.placings.truncated")
	}

	span.SetAttributes(
		attribute.Int("bcp.placings", len(records)),
		attribute.Int("bcp.pages", placings.Pages),
	)
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("event placings aggregated", zap.Int("placings", len(records)))
	return models.EventPlacings{Records: records, Truncated: placings.Truncated}, nil
}
