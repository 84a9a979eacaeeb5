package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	derr "github.com/olliswe/bcp-to-t3-api/internal/domain/errors"
)

const DefaultSearchURL = "https://www.tabletopturniere.de/t3_ntr_search.php"

// maxBodyBytes bounds the search result page read into memory.
const maxBodyBytes = 4 << 20

type Client struct {
	searchURL  string
	httpClient *http.Client
}

func NewClient(searchURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if strings.TrimSpace(searchURL) == "" {
		searchURL = DefaultSearchURL
	}
	if httpClient == nil {
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		searchURL:  strings.TrimSpace(searchURL),
		httpClient: httpClient,
	}
}

// SearchForm builds the player search form. The nickname field carries the
// "%" wildcard so every nickname matches.
func SearchForm(firstName, lastName string) url.Values {
	return url.Values{
		"action":   {"list"},
		"name":     {firstName},
		"lastname": {lastName},
		"nickname": {"%"},
		"gid":      {"3"},
		"cid":      {"1"},
		"list":     {"2"},
		"submit":   {"Suchen"},
	}
}

// SearchPlayers posts the search form and returns the raw result page.
func (c *Client) SearchPlayers(ctx context.Context, firstName, lastName string) (string, error) {
	body := SearchForm(firstName, lastName).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: do request: %v", derr.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: unexpected status: %s", derr.ErrSourceUnavailable, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", derr.ErrSourceUnavailable, err)
	}

	return string(raw), nil
}
