// Package parser turns the free text scraped from an event page into player
// names and affiliations. Every function here is total: malformed input
// degrades to placeholder values instead of failing.
package parser

import (
	"regexp"
	"strings"

	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
)

const affiliationDelimiter = "-"

var namePattern = regexp.MustCompile(`^(\S+)\s+(.*)`)

// ParseAffiliation splits a "<army> - <team>" title. Only a title with exactly
// one delimiter yields a team; anything else keeps the first segment as the
// army and leaves the team empty.
func ParseAffiliation(title string) models.PlayerAffiliation {
	if title == "" {
		return models.PlayerAffiliation{Army: models.UnknownValue, Team: models.UnknownValue}
	}

	parts := strings.Split(title, affiliationDelimiter)
	if len(parts) == 2 {
		return models.PlayerAffiliation{
			Army: strings.TrimSpace(parts[0]),
			Team: strings.TrimSpace(parts[1]),
		}
	}

	return models.PlayerAffiliation{Army: strings.TrimSpace(parts[0]), Team: ""}
}

// ParseName splits a display name into its first token and the remainder of
// that line. Text on following lines is not part of the name.
func ParseName(raw string) models.PlayerName {
	matches := namePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if matches == nil {
		return models.PlayerName{}
	}

	return models.PlayerName{FirstName: matches[1], LastName: strings.TrimSpace(matches[2])}
}

// PairRoster zips the name and title columns of a player table by row index.
// The name column drives the result length; a missing title counts as absent.
func PairRoster(names, titles []string) []models.RosterEntry {
	entries := make([]models.RosterEntry, 0, len(names))
	for i, name := range names {
		var title string
		if i < len(titles) {
			title = titles[i]
		}

		entries = append(entries, models.RosterEntry{
			Index:             i,
			PlayerName:        ParseName(name),
			PlayerAffiliation: ParseAffiliation(title),
		})
	}

	return entries
}
