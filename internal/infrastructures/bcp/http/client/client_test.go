package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	derr "github.com/olliswe/bcp-to-t3-api/internal/domain/errors"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/bcp/dto"
)

func TestGetEvent_404MapsToNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), time.Second)
	_, err := c.GetEvent(context.Background(), "evt-1")
	if !errors.Is(err, derr.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestGetPlayers_404IsNotEventNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), time.Second)
	_, err := c.GetPlayers(context.Background(), dto.GetPlayersRequest{EventID: "evt-1", Limit: 100})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, derr.ErrEventNotFound) {
		t.Fatalf("expected players 404 not to map to ErrEventNotFound, got %v", err)
	}
}

func TestGetEvent_TooManyRequestsMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), time.Second)
	_, err := c.GetEvent(context.Background(), "evt-1")
	if !errors.Is(err, derr.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestGetEvent_TransportFailureMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c := NewClient(baseURL, nil, time.Second)
	_, err := c.GetEvent(context.Background(), "evt-1")
	if !errors.Is(err, derr.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestGetPlayers_BuildsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.RawQuery
		for _, part := range []string{"limit=100", "eventId=evt-1", "placings=true", "expand%5B%5D=team", "expand%5B%5D=army", "nextKey=abc"} {
			if !strings.Contains(raw, part) {
				t.Errorf("query %q is missing %q", raw, part)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"firstName":"A","lastName":"B","placing":3,"teamName":"Red","armyName":"Orcs","numWins":2,"pathToVictory":10,"userId":"u1"}],"nextKey":"def"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", srv.Client(), time.Second)
	resp, err := c.GetPlayers(context.Background(), dto.GetPlayersRequest{EventID: "evt-1", Limit: 100, NextKey: "abc"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.NextKey != "def" || len(resp.Data) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	row := resp.Data[0]
	if row.Placing != 3 || row.NumWins == nil || *row.NumWins != 2 || row.PathToVictory == nil || *row.PathToVictory != 10 {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestGetPlayers_OmitsEmptyCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["nextKey"]; ok {
			t.Errorf("expected no nextKey on first page, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), time.Second)
	if _, err := c.GetPlayers(context.Background(), dto.GetPlayersRequest{EventID: "evt-1", Limit: 100}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
