package service

import (
	"context"
	"fmt"

	"github.com/olliswe/bcp-to-t3-api/internal/application/parser"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/ports"
	"go.uber.org/zap"
)

const (
	playerNameSelector  = ".title"
	playerTitleSelector = ".desc"
	pageLengthSelector  = `select[name="playersTable_length"]`
	pageLengthShowAll   = "-1"
)

type RosterExtractor struct {
	log     *zap.Logger
	browser ports.Browser
}

func NewRosterExtractor(log *zap.Logger, browser ports.Browser) *RosterExtractor {
	if log == nil {
		log = zap.NewNop()
	}

	return &RosterExtractor{log: log, browser: browser}
}

// Extract loads the event page, expands the player table to show every row
// and returns one entry per player name in page order.
func (e *RosterExtractor) Extract(ctx context.Context, eventURL string) ([]models.RosterEntry, error) {
	const op = "service.RosterExtractor.Extract"

	logger := e.log.With(
		zap.String("op", op),
		zap.String("event_url", eventURL),
	)

	session, err := e.browser.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: open browser session: %w", op, err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			logger.Warn("browser session close failed", zap.Error(closeErr))
		}
	}()

	if err := session.Navigate(ctx, eventURL); err != nil {
		return nil, fmt.Errorf("%s: navigate: %w", op, err)
	}
	for _, selector := range []string{playerNameSelector, pageLengthSelector} {
		if err := session.WaitFor(ctx, selector); err != nil {
			return nil, fmt.Errorf("%s: wait for %s: %w", op, selector, err)
		}
	}
	if err := session.SetValue(ctx, pageLengthSelector, pageLengthShowAll); err != nil {
		return nil, fmt.Errorf("%s: show all players: %w", op, err)
	}

	names, err := session.Texts(ctx, playerNameSelector)
	if err != nil {
		return nil, fmt.Errorf("%s: extract names: %w", op, err)
	}
	titles, err := session.Texts(ctx, playerTitleSelector)
	if err != nil {
		return nil, fmt.Errorf("%s: extract titles: %w", op, err)
	}

	if len(names) != len(titles) {
		logger.Warn("player name and title columns differ in length",
			zap.Int("names", len(names)),
			zap.Int("titles", len(titles)),
		)
	}

	entries := parser.PairRoster(names, titles)
	logger.Debug("roster extracted", zap.Int("players", len(entries)))
	return entries, nil
}
