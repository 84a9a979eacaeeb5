package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	derr "github.com/olliswe/bcp-to-t3-api/internal/domain/errors"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/bcp/dto"
)

const DefaultBaseURL = "https://pnnct8s9sk.execute-api.us-east-1.amazonaws.com/prod"

// errStatusNotFound marks a 404; each endpoint decides what was not found.
var errStatusNotFound = errors.New("resource not found")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

func (c *Client) GetEvent(ctx context.Context, eventID string) (dto.GetEventResponse, error) {
	reqURL := c.baseURL + "/events/" + url.PathEscape(eventID)

	var resp dto.GetEventResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return dto.GetEventResponse{}, derr.ErrEventNotFound
		}
		return dto.GetEventResponse{}, err
	}

	return resp, nil
}

func (c *Client) GetPlayers(ctx context.Context, req dto.GetPlayersRequest) (dto.GetPlayersResponse, error) {
	reqURL, err := c.buildPlayersURL(req)
	if err != nil {
		return dto.GetPlayersResponse{}, err
	}

	var resp dto.GetPlayersResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return dto.GetPlayersResponse{}, err
	}

	return resp, nil
}

func (c *Client) buildPlayersURL(req dto.GetPlayersRequest) (string, error) {
	u, err := url.Parse(c.baseURL + "/players")
	if err != nil {
		return "", fmt.Errorf("parse bcp base url: %w", err)
	}

	q := u.Query()
	q.Set("limit", strconv.Itoa(req.Limit))
	q.Set("eventId", req.EventID)
	q.Set("placings", "true")
	q.Add("expand[]", "team")
	q.Add("expand[]", "army")
	if req.NextKey != "" {
		q.Set("nextKey", req.NextKey)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: do request: %v", derr.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", errStatusNotFound, resp.Status)
		}
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: unexpected status: %s", derr.ErrSourceUnavailable, resp.Status)
		}
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", derr.ErrMalformedPayload, err)
	}

	return nil
}
