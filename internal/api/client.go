// Package api is the HTTP client for the casebook backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/Paintersrp/casebook/internal/note"
)

const DefaultBaseURL = "http://127.0.0.1:8000/api"

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a client for baseURL. List and save requests carry no timeout.
func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListClients(ctx context.Context, filter note.ClientFilter) ([]note.Client, error) {
	query := url.Values{"filter": {string(filter)}}
	var clients []note.Client
	if err := c.doJSON(ctx, http.MethodGet, "/clients/?"+query.Encode(), nil, &clients); err != nil {
		return nil, err
	}
	for _, cl := range clients {
		if err := cl.Check(); err != nil {
			return nil, err
		}
	}
	return clients, nil
}

func (c *Client) GetClient(ctx context.Context, id int) (note.Client, error) {
	return c.clientRequest(ctx, http.MethodGet, fmt.Sprintf("/clients/%d", id), nil)
}

func (c *Client) CreateClient(ctx context.Context, in note.ClientInput) (note.Client, error) {
	if err := in.Validate(); err != nil {
		return note.Client{}, err
	}
	return c.clientRequest(ctx, http.MethodPost, "/clients/", in)
}

func (c *Client) UpdateClient(ctx context.Context, id int, in note.ClientInput) (note.Client, error) {
	if err := in.Validate(); err != nil {
		return note.Client{}, err
	}
	return c.clientRequest(ctx, http.MethodPut, fmt.Sprintf("/clients/%d", id), in)
}

func (c *Client) SetArchived(ctx context.Context, id int, archive bool) (note.Client, error) {
	body := map[string]bool{"archive": archive}
	return c.clientRequest(ctx, http.MethodPost, fmt.Sprintf("/clients/%d/archive", id), body)
}

func (c *Client) DeleteClient(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/clients/%d", id), nil, nil)
}

func (c *Client) clientRequest(ctx context.Context, method, path string, body any) (note.Client, error) {
	var cl note.Client
	if err := c.doJSON(ctx, method, path, body, &cl); err != nil {
		return note.Client{}, err
	}
	if err := cl.Check(); err != nil {
		return note.Client{}, err
	}
	return cl, nil
}

// ListNotes lists a client's sessions or assessments, or the global
// supervision and CPD collections. clientID is ignored for global kinds.
func (c *Client) ListNotes(ctx context.Context, kind note.Kind, clientID int) ([]note.Record, error) {
	path := "/" + kind.Collection() + "/"
	if kind.ClientScoped() {
		if clientID <= 0 {
			return nil, fmt.Errorf("listing %s notes requires a client", kind)
		}
		path = fmt.Sprintf("/%s/client/%d", kind.Collection(), clientID)
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return note.DecodeRecords(kind, raw)
}

func (c *Client) CreateNote(ctx context.Context, p note.Payload) (note.Record, error) {
	if p == nil {
		return note.Record{}, errors.New("payload is required")
	}
	if err := p.Validate(); err != nil {
		return note.Record{}, err
	}
	return c.noteRequest(ctx, p.Kind(), http.MethodPost, "/"+p.Kind().Collection()+"/", p)
}

func (c *Client) UpdateNote(ctx context.Context, id int, p note.Payload) (note.Record, error) {
	if p == nil {
		return note.Record{}, errors.New("payload is required")
	}
	if err := p.Validate(); err != nil {
		return note.Record{}, err
	}
	path := fmt.Sprintf("/%s/%d", p.Kind().Collection(), id)
	return c.noteRequest(ctx, p.Kind(), http.MethodPut, path, p)
}

func (c *Client) DeleteNote(ctx context.Context, ref note.Ref) error {
	path := fmt.Sprintf("/%s/%d", ref.Kind.Collection(), ref.ID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) noteRequest(ctx context.Context, kind note.Kind, method, path string, body any) (note.Record, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, method, path, body, &raw); err != nil {
		return note.Record{}, err
	}
	return note.DecodeRecord(kind, raw)
}

func (c *Client) Totals(ctx context.Context, filter note.ClientFilter) (note.Totals, error) {
	query := url.Values{"filter": {string(filter)}}
	return c.totals(ctx, "/reports/totals?"+query.Encode())
}

func (c *Client) ClientTotals(ctx context.Context, clientID int) (note.Totals, error) {
	return c.totals(ctx, fmt.Sprintf("/reports/client/%d/totals", clientID))
}

func (c *Client) totals(ctx context.Context, path string) (note.Totals, error) {
	var t note.Totals
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &t); err != nil {
		return note.Totals{}, err
	}
	if err := t.Check(); err != nil {
		return note.Totals{}, err
	}
	return t, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("api: %s %s failed: %v", method, path, err)
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("api: %s %s returned %d", method, path, resp.StatusCode)
		return &APIError{StatusCode: resp.StatusCode, Detail: decodeDetail(data)}
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%s %s: empty response body", method, path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}
