package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

func ParseFormat(raw string) (OutputFormat, error) {
	switch f := OutputFormat(raw); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", raw)
	}
}

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	missingColor = color.New(color.FgYellow)
	warnColor    = color.New(color.FgRed)
)

type nicknameResult struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Found     bool   `json:"found"`
	Nickname  string `json:"nickname,omitempty"`
}

func WriteNickname(w io.Writer, name models.PlayerName, lookup models.NicknameLookup, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, nicknameResult{
			FirstName: name.FirstName,
			LastName:  name.LastName,
			Found:     lookup.Found,
			Nickname:  lookup.Nickname,
		})
	}

	if !lookup.Found {
		_, err := missingColor.Fprintf(w, "%s %s: not found\n", name.FirstName, name.LastName)
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s: %s\n", name.FirstName, name.LastName, lookup.Nickname)
	return err
}

func WriteRoster(w io.Writer, players []models.ScrapedPlayer, format OutputFormat) error {
	if format == FormatJSON {
		if players == nil {
			players = []models.ScrapedPlayer{}
		}
		return writeJSON(w, players)
	}

	if len(players) == 0 {
		_, err := fmt.Fprintln(w, "No players found.")
		return err
	}

	out := &printer{w: w}
	out.printf(headerColor, "%-4s %-30s %-20s %-30s %s\n", "#", "PLAYER", "NICKNAME", "ARMY", "TEAM")
	for i, p := range players {
		name := p.FirstName + " " + p.LastName
		if p.Nickname == models.UnknownValue {
			out.printf(nil, "%-4d %-30s ", i+1, name)
			out.printf(missingColor, "%-20s", p.Nickname)
			out.printf(nil, " %-30s %s\n", p.Army, p.Team)
			continue
		}
		out.printf(nil, "%-4d %-30s %-20s %-30s %s\n", i+1, name, p.Nickname, p.Army, p.Team)
	}
	out.printf(nil, "\nTotal: %d players\n", len(players))

	return out.err
}

func WritePlacings(w io.Writer, placings models.EventPlacings, format OutputFormat) error {
	if format == FormatJSON {
		records := placings.Records
		if records == nil {
			records = []models.EventPlacing{}
		}
		return writeJSON(w, struct {
			Data      []models.EventPlacing `json:"data"`
			Truncated bool                  `json:"truncated"`
		}{Data: records, Truncated: placings.Truncated})
	}

	if len(placings.Records) == 0 {
		_, err := fmt.Fprintln(w, "No placings found.")
		return err
	}

	out := &printer{w: w}
	first := placings.Records[0]
	out.printf(headerColor, "%s (%s), %d players, %d rounds, game size %s\n",
		first.TournamentName, first.TournamentDate, first.NumberPlayers, first.NumberRounds, first.GameSize)
	for _, p := range placings.Records {
		out.printf(nil, "%4d  %-30s %-30s %-20s W%d  PtV %g\n",
			p.Placing, p.FirstName+" "+p.LastName, p.Faction, p.Team, p.Wins, p.PathToVictory)
	}
	out.printf(nil, "\nTotal: %d placings\n", len(placings.Records))
	if placings.Truncated {
		out.printf(warnColor, "Warning: results truncated at the page limit\n")
	}

	return out.err
}

// printer keeps the first write error and skips every write after it.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(c *color.Color, format string, args ...any) {
	if p.err != nil {
		return
	}
	if c == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
		return
	}
	_, p.err = c.Fprintf(p.w, format, args...)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
