// Package apiclient talks to the marketplace API. It adds no retries,
// timeouts or auth headers; every error goes back to the caller.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"bidboard/internal/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

type option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) option {
	return func(c *Client) {
		c.http = hc
	}
}

// New returns a client bound to baseURL. The URL is not validated.
func New(baseURL string, opts ...option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

type UpdateResult struct {
	ModifiedCount int `json:"modifiedCount"`
}

// BidResult holds the raw body of a bid submission. Accepted follows
// JavaScript truthiness of that body.
type BidResult struct {
	Body     json.RawMessage
	Accepted bool
}

// POST /add-jobs
func (c *Client) AddJob(ctx context.Context, job models.JobPayload) (InsertResult, error) {
	var res InsertResult
	if err := c.do(ctx, http.MethodPost, "/add-jobs", job, &res); err != nil {
		return res, fmt.Errorf("apiclient.Client.AddJob: %w", err)
	}
	return res, nil
}

// GET /add-jobs
func (c *Client) ListJobs(ctx context.Context, category models.Category) ([]models.Job, error) {
	path := "/add-jobs"
	if category != "" {
		path += "?" + url.Values{"category": {string(category)}}.Encode()
	}

	var jobs []models.Job
	if err := c.do(ctx, http.MethodGet, path, nil, &jobs); err != nil {
		return nil, fmt.Errorf("apiclient.Client.ListJobs: %w", err)
	}
	return jobs, nil
}

// GET /add-jobs/{id}
func (c *Client) GetJob(ctx context.Context, id string) (models.Job, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/add-jobs/"+url.PathEscape(id), nil, &raw); err != nil {
		return models.Job{}, fmt.Errorf("apiclient.Client.GetJob: %w", err)
	}
	if !truthy(raw) {
		return models.Job{}, fmt.Errorf("apiclient.Client.GetJob: %w: %s", models.ErrNoJob, id)
	}

	var job models.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return models.Job{}, fmt.Errorf("apiclient.Client.GetJob: %w", err)
	}
	return job, nil
}

// PUT /add-jobs/{id}
func (c *Client) UpdateJob(ctx context.Context, id string, job models.JobPayload) (UpdateResult, error) {
	var res UpdateResult
	if err := c.do(ctx, http.MethodPut, "/add-jobs/"+url.PathEscape(id), job, &res); err != nil {
		return res, fmt.Errorf("apiclient.Client.UpdateJob: %w", err)
	}
	return res, nil
}

// POST /add-bid
func (c *Client) AddBid(ctx context.Context, bid models.Bid) (BidResult, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/add-bid", bid, &raw); err != nil {
		return BidResult{}, fmt.Errorf("apiclient.Client.AddBid: %w", err)
	}
	return BidResult{Body: raw, Accepted: truthy(raw)}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
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
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], bytes.TrimSpace(data)...)
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// truthy applies JavaScript truthiness to a JSON document. An empty body
// counts as the empty string.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}

	switch raw[0] {
	case '{', '[':
		return true
	case '"':
		return len(raw) > 2
	case 'n', 'f':
		return false
	case 't':
		return true
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return true
	}
	return f != 0
}
