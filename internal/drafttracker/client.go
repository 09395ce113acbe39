// Package drafttracker talks to the external draft-tracking API that keepers are replayed into.
package drafttracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/mcoot/fantasy-keepers/internal/model"
)

const (
	DefaultReadURL  = "http://localhost:8176/api/v1"
	DefaultWriteURL = "http://localhost:8175/api/v1"
)

// Owner is a league member as known to the draft tracker
type Owner struct {
	ID        int64  `json:"id"`
	OwnerName string `json:"owner_name"`
	TeamName  string `json:"team_name"`
}

// Player is a draftable player as known to the draft tracker
type Player struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DraftRequest records one keeper as drafted
// ExpectedVersion is checked by the tracker and a stale value is rejected
type DraftRequest struct {
	OwnerID         int64 `json:"owner_id"`
	PlayerID        int64 `json:"player_id"`
	Price           int   `json:"price"`
	ExpectedVersion int   `json:"expected_version"`
}

// Config holds the tracker base URLs
type Config struct {
	ReadURL  string
	WriteURL string
	// Timeout bounds each read and write; zero leaves calls unbounded apart from ctx deadlines
	Timeout time.Duration
}

// DefaultConfig returns the local development endpoints
func DefaultConfig() Config {
	return Config{
		ReadURL:  DefaultReadURL,
		WriteURL: DefaultWriteURL,
	}
}

// Client is a fasthttp-backed draft tracker client
type Client struct {
	readURL  string
	writeURL string
	client   *fasthttp.Client
}

// NewClient creates a new Client
func NewClient(cfg Config) *Client {
	return &Client{
		readURL:  strings.TrimRight(cfg.ReadURL, "/"),
		writeURL: strings.TrimRight(cfg.WriteURL, "/"),
		client: &fasthttp.Client{
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

// Owners fetches every owner
func (c *Client) Owners(ctx context.Context) ([]Owner, error) {
	return getJSON[[]Owner](ctx, c, c.readURL+"/owners")
}

// Players fetches every player
func (c *Client) Players(ctx context.Context) ([]Player, error) {
	return getJSON[[]Player](ctx, c, c.readURL+"/players")
}

// Draft submits one keeper
// Any 2xx counts as accepted, whatever the body holds
func (c *Client) Draft(ctx context.Context, draft DraftRequest) error {
	body, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, fasthttp.MethodPost, c.writeURL+"/admin/draft", body)
	return err
}

func getJSON[T any](ctx context.Context, c *Client, url string) (T, error) {
	var result T
	body, err := c.do(ctx, fasthttp.MethodGet, url, nil)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return result, &model.ExternalAPIError{Err: fmt.Errorf("decode %s: %w", url, err)}
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &model.ExternalAPIError{Err: err}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		return nil, &model.ExternalAPIError{Err: err}
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return nil, &model.ExternalAPIError{Status: status, Body: string(resp.Body())}
	}

	// resp is released on return
	return append([]byte(nil), resp.Body()...), nil
}
