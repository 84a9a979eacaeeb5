package ports

import (
	"context"

	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
)

// Browser opens page automation sessions. Every session returned by Open must
// be closed by the caller.
type Browser interface {
	Open(ctx context.Context) (PageSession, error)
}

type PageSession interface {
	Navigate(ctx context.Context, url string) error
	WaitFor(ctx context.Context, selector string) error
	SetValue(ctx context.Context, selector, value string) error
	Texts(ctx context.Context, selector string) ([]string, error)
	Close() error
}

type RosterExtractor interface {
	Extract(ctx context.Context, eventURL string) ([]models.RosterEntry, error)
}

type NicknameResolver interface {
	ResolveNickname(ctx context.Context, name models.PlayerName) (models.NicknameLookup, error)
}
