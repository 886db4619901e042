// Package client provides an HTTP client for the patient registration API.
// It is self-contained so consumer tooling can import it without pulling in
// server internals.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds every request issued by a Client unless overridden
// with WithTimeout or WithHTTPClient.
const DefaultTimeout = 10 * time.Second

// Submission is the registration payload sent to POST /patients/.
type Submission struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

// Patient is a registered patient record as returned by the API.
type Patient struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// Client calls the patient registration API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// RegisterPatient submits a registration and returns the created record.
// Validation and server failures come back as *APIError carrying the
// server-supplied detail message; network failures come back as
// *TransportError.
func (c *Client) RegisterPatient(ctx context.Context, sub Submission) (*Patient, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/patients/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var p Patient
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode patient: %w", err)
	}
	return &p, nil
}

// ListPatients fetches registered patients in id order. skip and limit
// window the result; non-positive values defer to the server defaults.
func (c *Client) ListPatients(ctx context.Context, skip, limit int) ([]*Patient, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/patients/", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	q := req.URL.Query()
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var list []*Patient
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode patients: %w", err)
	}
	return list, nil
}

// GetPatient fetches a single patient by id. A missing patient surfaces as an
// *APIError with StatusCode 404.
func (c *Client) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/patients/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var p Patient
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode patient: %w", err)
	}
	return &p, nil
}

// apiError builds an *APIError from a non-2xx response, preserving the
// server-supplied detail message when one is present.
func apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	// Read at most 64KB of the error body.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}
