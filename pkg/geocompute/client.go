// Package geocompute is a client for a remote geospatial compute service that
// reduces imagery and static raster layers over a region.
package geocompute

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"golang.org/x/time/rate"
)

// SourceKind distinguishes time-filtered collections from static images.
type SourceKind string

const (
	KindImageCollection SourceKind = "image_collection"
	KindImage           SourceKind = "image"
)

// Composite reduces a filtered collection to one image per pixel stack.
type Composite string

const (
	CompositeMedian Composite = "median"
	CompositeMean   Composite = "mean"
)

// ExprNormalizedDifference computes (b0 - b1) / (b0 + b1) over the first two bands.
const ExprNormalizedDifference = "normalized_difference"

// CloudMask drops pixels whose classification band holds one of Exclude.
type CloudMask struct {
	Band    string `json:"band"`
	Exclude []int  `json:"exclude"`
}

// ReduceRequest asks for the mean of one layer over a region.
type ReduceRequest struct {
	Dataset    string            `json:"dataset"`
	Kind       SourceKind        `json:"kind"`
	Bands      []string          `json:"bands"`
	Composite  Composite         `json:"composite,omitempty"`
	Expression string            `json:"expression,omitempty"`
	CloudMask  *CloudMask        `json:"cloud_mask,omitempty"`
	StartDate  string            `json:"start_date,omitempty"`
	EndDate    string            `json:"end_date,omitempty"`
	Region     *geojson.Geometry `json:"region"`
	Scale      float64           `json:"scale"`
	MaxPixels  float64           `json:"max_pixels"`
	Reducer    string            `json:"reducer"`
}

type reduceResponse struct {
	Value *float64 `json:"value"`
}

// Status describes the remote service as reported by its status endpoint.
type Status struct {
	Project  string   `json:"project"`
	Ready    bool     `json:"ready"`
	Catalogs []string `json:"catalogs"`
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the service base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithProject sets the project sent in the X-Project header.
func WithProject(project string) Option {
	return func(c *Client) {
		c.project = project
	}
}

// WithTimeout sets the per-request timeout. A client passed to
// WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// Client talks to the compute service over HTTP.
type Client struct {
	baseURL string
	token   string
	project string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a compute service client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 120 * time.Second},
		limiter: rate.NewLimiter(20, 20),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// Status fetches the service status.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.do(ctx, http.MethodGet, "/v1/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// ReduceRegion returns the mean of the requested layer over the region. A nil
// value means the region held no valid pixels.
func (c *Client) ReduceRegion(ctx context.Context, req ReduceRequest) (*float64, error) {
	if req.Region == nil {
		return nil, eris.New("geocompute: region is required")
	}
	if req.Reducer == "" {
		req.Reducer = "mean"
	}
	var resp reduceResponse
	if err := c.do(ctx, http.MethodPost, "/v1/reduce-region", req, &resp); err != nil {
		return nil, eris.Wrapf(err, "geocompute: reduce %s", req.Dataset)
	}
	return resp.Value, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "geocompute: rate limit")
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return eris.Wrap(err, "geocompute: marshal request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return eris.Wrap(err, "geocompute: create request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.project != "" {
		req.Header.Set("X-Project", c.project)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "geocompute: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "geocompute: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("geocompute: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "geocompute: unmarshal response")
	}
	return nil
}
