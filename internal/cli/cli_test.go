package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/olliswe/bcp-to-t3-api/internal/config"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	"go.uber.org/zap"
)

func init() {
	color.NoColor = true
}

type aggregatorMock struct {
	lookup   models.NicknameLookup
	players  []models.ScrapedPlayer
	placings models.EventPlacings
	err      error

	lastName models.PlayerName
	lastURL  string
	lastID   models.EventID
}

func (m *aggregatorMock) LookupNickname(_ context.Context, name models.PlayerName) (models.NicknameLookup, error) {
	m.lastName = name
	return m.lookup, m.err
}

func (m *aggregatorMock) ScrapeEvent(_ context.Context, eventURL string) ([]models.ScrapedPlayer, error) {
	m.lastURL = eventURL
	return m.players, m.err
}

func (m *aggregatorMock) EventPlacings(_ context.Context, id models.EventID) (models.EventPlacings, error) {
	m.lastID = id
	return m.placings, m.err
}

func run(t *testing.T, mock *aggregatorMock, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")

	var out bytes.Buffer
	cmd := NewRootCmd(&out, func(*config.Config, *zap.Logger) Aggregator { return mock })
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNicknameCmd_Text(t *testing.T) {
	mock := &aggregatorMock{lookup: models.NicknameLookup{Found: true, Nickname: "janed"}}

	out, err := run(t, mock, "nickname", "--first", "Jane", "--last", "Doe")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "Jane Doe: janed\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if mock.lastName.FirstName != "Jane" || mock.lastName.LastName != "Doe" {
		t.Fatalf("unexpected name %+v", mock.lastName)
	}
}

func TestNicknameCmd_NotFoundJSON(t *testing.T) {
	mock := &aggregatorMock{}

	out, err := run(t, mock, "nickname", "--first", "Jane", "--last", "Doe", "--format", "json")
	if !errors.Is(err, errNotFound) {
		t.Fatalf("expected errNotFound, got %v", err)
	}

	var got nicknameResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got.Found || got.FirstName != "Jane" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestNicknameCmd_RequiresFlags(t *testing.T) {
	if _, err := run(t, &aggregatorMock{}, "nickname", "--first", "Jane"); err == nil {
		t.Fatal("expected error for missing --last")
	}
}

func TestRosterCmd(t *testing.T) {
	mock := &aggregatorMock{players: []models.ScrapedPlayer{
		{FirstName: "Jane", LastName: "Doe", Army: "Orks", Team: "Red", Nickname: "janed"},
		{FirstName: "John", LastName: "Smith", Army: "Necrons", Nickname: "unknown"},
	}}

	out, err := run(t, mock, "roster", "--link", "https://example.com/event/1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastURL != "https://example.com/event/1" {
		t.Fatalf("unexpected link %q", mock.lastURL)
	}
	if !strings.Contains(out, "janed") || !strings.Contains(out, "unknown") || !strings.Contains(out, "Total: 2 players") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRosterCmd_MissingLink(t *testing.T) {
	if _, err := run(t, &aggregatorMock{}, "roster"); err == nil {
		t.Fatal("expected error for missing --link")
	}
}

func TestEventCmd_JSON(t *testing.T) {
	mock := &aggregatorMock{placings: models.EventPlacings{
		Records:   []models.EventPlacing{models.NewEventPlacing("evt-1", models.EventMetadata{}, models.PlacingRecord{FirstName: "A"})},
		Truncated: true,
	}}

	out, err := run(t, mock, "event", "--id", " evt-1 ", "--format", "json")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastID != "evt-1" {
		t.Fatalf("unexpected id %q", mock.lastID)
	}

	var got struct {
		Data      []map[string]any `json:"data"`
		Truncated bool             `json:"truncated"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got.Data) != 1 || !got.Truncated || got.Data[0]["game_size"] != "N/A" {
		t.Fatalf("unexpected output %+v", got)
	}
}

func TestEventCmd_ServiceError(t *testing.T) {
	mock := &aggregatorMock{err: errors.New("boom")}

	_, err := run(t, mock, "event", "--id", "evt-1")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected wrapped service error, got %v", err)
	}
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, &aggregatorMock{}, "event", "--id", "evt-1", "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Fatalf("expected invalid format error, got %v", err)
	}
}
