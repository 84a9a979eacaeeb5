package t3

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	derr "github.com/olliswe/bcp-to-t3-api/internal/domain/errors"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	t3client "github.com/olliswe/bcp-to-t3-api/internal/infrastructures/t3/http/client"
)

const resultPage = `<html><body>
<table class="nav"><tr><td>menu</td></tr></table>
<table class="std">
<tr><th>Name</th><th>Vorname</th><th>Nickname</th><th>Verein</th></tr>
<tr><td>Doe</td><td>Jane</td><td>janed</td><td>Club</td></tr>
<tr><td>Doe</td><td>Jane</td><td>other</td><td>Club 2</td></tr>
</table>
</body></html>`

func newTestSource(t *testing.T, status int, body string) *Source {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewSource(t3client.NewClient(srv.URL, srv.Client(), time.Second))
}

func TestResolveNickname_FirstRow(t *testing.T) {
	source := newTestSource(t, http.StatusOK, resultPage)

	got, err := source.ResolveNickname(context.Background(), models.PlayerName{FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got.Found || got.Nickname != "janed" {
		t.Fatalf("unexpected lookup: %+v", got)
	}
}

func TestResolveNickname_NotFound(t *testing.T) {
	cases := map[string]string{
		"no table":       `<html><body><p>nothing</p></body></html>`,
		"no match":       `<table class="std"><tr><td>No match found...</td></tr></table>`,
		"no rows":        `<table class="std"><tr><th>Nickname</th></tr></table>`,
		"empty nickname": `<table class="std"><tr><th>Nickname</th></tr><tr><td></td></tr></table>`,
		"no column":      `<table class="std"><tr><th>Name</th></tr><tr><td>Doe</td></tr></table>`,
		"other class":    `<table class="std wide"><tr><th>Nickname</th></tr><tr><td>x</td></tr></table>`,
	}

	for name, page := range cases {
		t.Run(name, func(t *testing.T) {
			source := newTestSource(t, http.StatusOK, page)
			got, err := source.ResolveNickname(context.Background(), models.PlayerName{FirstName: "Jane", LastName: "Doe"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.Found {
				t.Fatalf("expected not found, got %+v", got)
			}
		})
	}
}

func TestResolveNickname_Unavailable(t *testing.T) {
	source := newTestSource(t, http.StatusBadGateway, "")

	_, err := source.ResolveNickname(context.Background(), models.PlayerName{FirstName: "Jane", LastName: "Doe"})
	if !errors.Is(err, derr.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}
