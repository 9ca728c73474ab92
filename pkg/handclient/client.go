// Package handclient talks to the hands API over HTTP
package handclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"handhistory-server/pkg/hand"
	"handhistory-server/pkg/store"
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hands api returned %d: %s", e.StatusCode, e.Message)
}

// Client implements store.Store against a remote server
type Client struct {
	baseURL string
	client  *http.Client
}

var _ store.Store = (*Client)(nil)

// New returns a client for the server at baseURL, i.e. "http://localhost:5000"
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateHand posts the request fields of r; the server assigns the id, time and winnings
func (c *Client) CreateHand(ctx context.Context, r *hand.Record) (*hand.Record, error) {
	return c.Create(ctx, r.Request())
}

// Create posts a new hand
func (c *Client) Create(ctx context.Context, req *hand.CreateRequest) (*hand.Record, error) {
	var rec hand.Record
	if err := c.do(ctx, http.MethodPost, "/hands", req, &rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

// GetAllHands implements store.Store
func (c *Client) GetAllHands(ctx context.Context) ([]*hand.Record, error) {
	var resp struct {
		Hands []*hand.Record `json:"hands"`
	}

	if err := c.do(ctx, http.MethodGet, "/hands", nil, &resp); err != nil {
		return nil, err
	}

	if resp.Hands == nil {
		resp.Hands = []*hand.Record{}
	}

	return resp.Hands, nil
}

// GetHandByID implements store.Store
func (c *Client) GetHandByID(ctx context.Context, id uuid.UUID) (*hand.Record, error) {
	var rec hand.Record
	if err := c.do(ctx, http.MethodGet, "/hands/"+id.String(), nil, &rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

// SetWinnings implements store.Store
func (c *Client) SetWinnings(ctx context.Context, id uuid.UUID, winnings map[string]int) (*hand.Record, error) {
	var rec hand.Record
	if err := c.do(ctx, http.MethodPut, "/hands/"+id.String()+"/winnings", winnings, &rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, respObj interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return store.ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Message string `json:"message"`
		}

		b, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(b, &errResp); err != nil || errResp.Message == "" {
			errResp.Message = strings.TrimSpace(string(b))
		}

		return &StatusError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	return json.NewDecoder(resp.Body).Decode(respObj)
}
