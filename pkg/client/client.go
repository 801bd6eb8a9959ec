package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/virtualta/internal/version"
)

const defaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Client talks to a Virtual TA server.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	apiKey     string
	userAgent  string
	obs        *observer
}

// New creates a Client for the server at baseURL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("virtualta: base URL required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("virtualta: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("virtualta: unsupported scheme %q", u.Scheme)
	}

	cfg := &clientConfig{
		timeout:   defaultTimeout,
		userAgent: "vtactl/" + version.Version,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL:    u,
		httpClient: hc,
		apiKey:     cfg.apiKey,
		userAgent:  cfg.userAgent,
		obs:        obs,
	}, nil
}

// Ask submits a question and returns the selected answer.
func (c *Client) Ask(ctx context.Context, q Question) (ans Answer, err error) {
	defer func(start time.Time) { c.obs.observe("ask", start, err) }(time.Now())

	if err = c.do(ctx, http.MethodPost, "/api", nil, q, &ans); err != nil {
		return Answer{}, err
	}
	if ans.Links == nil {
		ans.Links = []Link{}
	}
	return ans, nil
}

// Health returns the server health report. A degraded server yields an *APIError with status 503.
func (c *Client) Health(ctx context.Context) (h HealthStatus, err error) {
	defer func(start time.Time) { c.obs.observe("health", start, err) }(time.Now())

	if err = c.do(ctx, http.MethodGet, "/api/health", nil, nil, &h); err != nil {
		return HealthStatus{}, err
	}
	return h, nil
}

// Recent returns the most recently asked questions, newest first.
// limit <= 0 uses the server default.
func (c *Client) Recent(ctx context.Context, limit int) (recs []RecentQuestion, err error) {
	defer func(start time.Time) { c.obs.observe("recent", start, err) }(time.Now())

	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if err = c.do(ctx, http.MethodGet, "/api/recent", q, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("virtualta: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("virtualta: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("virtualta: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("virtualta: decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
		Status  string `json:"status"`
	}
	if json.Unmarshal(data, &body) == nil {
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
			apiErr.Details = body.Details
		case body.Status != "":
			apiErr.Message = "status " + body.Status
		}
	}
	return apiErr
}
