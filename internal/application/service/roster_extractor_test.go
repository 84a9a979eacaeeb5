package service

import (
	"context"
	"errors"
	"testing"

	derr "github.com/olliswe/bcp-to-t3-api/internal/domain/errors"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/ports"
	"go.uber.org/zap"
)

type sessionMock struct {
	texts      map[string][]string
	waitErr    map[string]error
	navigated  string
	waited     []string
	setValues  map[string]string
	closeCalls int
}

func (m *sessionMock) Navigate(_ context.Context, url string) error {
	m.navigated = url
	return nil
}

func (m *sessionMock) WaitFor(_ context.Context, selector string) error {
	m.waited = append(m.waited, selector)
	return m.waitErr[selector]
}

func (m *sessionMock) SetValue(_ context.Context, selector, value string) error {
	if m.setValues == nil {
		m.setValues = make(map[string]string)
	}
	m.setValues[selector] = value
	return nil
}

func (m *sessionMock) Texts(_ context.Context, selector string) ([]string, error) {
	return m.texts[selector], nil
}

func (m *sessionMock) Close() error {
	m.closeCalls++
	return nil
}

type browserMock struct {
	session *sessionMock
	err     error
}

func (m *browserMock) Open(_ context.Context) (ports.PageSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func TestRosterExtractor_Extract(t *testing.T) {
	session := &sessionMock{texts: map[string][]string{
		".title": {"Jane Doe", "Mary Ann Smith", ""},
		".desc":  {"Orks - Red", "Necrons", "Aeldari - Blue"},
	}}

	extractor := NewRosterExtractor(zap.NewNop(), &browserMock{session: session})
	entries, err := extractor.Extract(context.Background(), "https://example.com/event/1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.navigated != "https://example.com/event/1" {
		t.Fatalf("unexpected navigation target %q", session.navigated)
	}
	if got := session.setValues[`select[name="playersTable_length"]`]; got != "-1" {
		t.Fatalf("expected page length set to -1, got %q", got)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[1].FirstName != "Mary" || entries[1].LastName != "Ann Smith" || entries[1].Army != "Necrons" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
	if entries[2].FirstName != "" || entries[2].Team != "Blue" {
		t.Fatalf("unexpected third entry: %+v", entries[2])
	}
	if session.closeCalls != 1 {
		t.Fatalf("expected session closed once, got %d", session.closeCalls)
	}
}

func TestRosterExtractor_WaitTimeoutClosesSession(t *testing.T) {
	session := &sessionMock{waitErr: map[string]error{
		`select[name="playersTable_length"]`: derr.ErrNavigationTimeout,
	}}

	extractor := NewRosterExtractor(zap.NewNop(), &browserMock{session: session})
	_, err := extractor.Extract(context.Background(), "https://example.com/event/1")
	if !errors.Is(err, derr.ErrNavigationTimeout) {
		t.Fatalf("expected ErrNavigationTimeout, got %v", err)
	}
	if session.closeCalls != 1 {
		t.Fatalf("expected session closed on failure, got %d", session.closeCalls)
	}
	if len(session.setValues) != 0 {
		t.Fatalf("expected no interaction after failed wait, got %v", session.setValues)
	}
}

func TestRosterExtractor_OpenFailure(t *testing.T) {
	extractor := NewRosterExtractor(zap.NewNop(), &browserMock{err: errors.New("no chrome")})
	if _, err := extractor.Extract(context.Background(), "https://example.com/event/1"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
