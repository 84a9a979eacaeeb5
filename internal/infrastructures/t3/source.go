package t3

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/t3/htmltable"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/t3/http/client"
)

const (
	resultTableSelector = `table[class="std"]`
	noMatchMarker       = "No match found..."
	nicknameColumn      = "Nickname"
)

type Source struct {
	client *client.Client
}

func NewSource(client *client.Client) *Source {
	return &Source{client: client}
}

// ResolveNickname searches for a player by name and returns the nickname of
// the first match. Only a failed search request is an error; every page
// without a usable nickname is a not-found result.
func (s *Source) ResolveNickname(ctx context.Context, name models.PlayerName) (models.NicknameLookup, error) {
	page, err := s.client.SearchPlayers(ctx, name.FirstName, name.LastName)
	if err != nil {
		return models.NicknameLookup{}, fmt.Errorf("search %s %s: %w", name.FirstName, name.LastName, err)
	}

	return parseSearchResult(page), nil
}

func parseSearchResult(page string) models.NicknameLookup {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return models.NicknameLookup{}
	}

	table := doc.Find(resultTableSelector).First()
	if table.Length() == 0 {
		return models.NicknameLookup{}
	}
	tableHTML, err := goquery.OuterHtml(table)
	if err != nil || strings.Contains(tableHTML, noMatchMarker) {
		return models.NicknameLookup{}
	}

	tables, err := htmltable.Convert(tableHTML)
	if err != nil || len(tables) == 0 || len(tables[0]) == 0 {
		return models.NicknameLookup{}
	}

	nickname := tables[0][0][nicknameColumn]
	if nickname == "" {
		return models.NicknameLookup{}
	}

	return models.NicknameLookup{Found: true, Nickname: nickname}
}
