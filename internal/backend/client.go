// Package backend provides the HTTP client for the jobpilot backend API:
// profile storage, job search and application tracking.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/jonathan/jobpilot/internal/config"
	"github.com/jonathan/jobpilot/internal/errors"
	"github.com/jonathan/jobpilot/internal/observability"
	"github.com/jonathan/jobpilot/internal/schemas"
	"github.com/jonathan/jobpilot/internal/types"
)

var tracer = observability.GetTracer("jobpilot/backend")

// DefaultUserAgent is the user agent string for backend requests.
const DefaultUserAgent = "jobpilot/" + observability.Version

// RequestIDHeader carries a per-request id the backend can log.
const RequestIDHeader = "X-Request-ID"

const (
	pathProfile      = "/api/profile"
	pathSearch       = "/api/search"
	pathApplications = "/api/applications"
)

// Client talks to the backend. Each method issues exactly one request and
// never retries.
type Client interface {
	SaveProfile(ctx context.Context, profile types.Profile) error
	SearchJobs(ctx context.Context, query string) ([]types.JobListing, error)
	CreateApplication(ctx context.Context, req types.ApplicationRequest) error
	// ListApplications lists applications for email, or all applications
	// when email is empty.
	ListApplications(ctx context.Context, email string) ([]types.Application, error)
}

// Options configures the client behavior.
type Options struct {
	UserAgent string
	Headers   map[string]string
	// HTTPClient overrides the transport. The default client has no timeout:
	// requests end when the backend answers or the context is cancelled.
	HTTPClient *http.Client
}

// DefaultOptions returns the defaults used by New.
func DefaultOptions() *Options {
	return &Options{
		UserAgent:  DefaultUserAgent,
		HTTPClient: &http.Client{},
	}
}

type client struct {
	baseURL string
	http    *http.Client
	opts    *Options
	logger  *zap.Logger
}

// New returns a Client for the configured backend.
func New(cfg *config.Config, logger *zap.Logger) Client {
	return NewWithOptions(cfg.BackendURL, logger, DefaultOptions())
}

// NewWithOptions returns a Client for baseURL.
func NewWithOptions(baseURL string, logger *zap.Logger, opts *Options) Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &client{
		baseURL: baseURL,
		http:    opts.HTTPClient,
		opts:    opts,
		logger:  logger.Named("backend"),
	}
}

func (c *client) SaveProfile(ctx context.Context, profile types.Profile) error {
	_, err := c.do(ctx, errors.OpSaveProfile, http.MethodPost, pathProfile, nil, profile)
	return err
}

func (c *client) SearchJobs(ctx context.Context, query string) ([]types.JobListing, error) {
	body, err := c.do(ctx, errors.OpSearchJobs, http.MethodGet, pathSearch, url.Values{"q": {query}}, nil)
	if err != nil {
		return nil, err
	}

	var listings []types.JobListing
	if err := c.decode(errors.OpSearchJobs, schemas.JobListings, body, &listings); err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []types.JobListing{}
	}
	return listings, nil
}

func (c *client) CreateApplication(ctx context.Context, req types.ApplicationRequest) error {
	_, err := c.do(ctx, errors.OpQueueApplication, http.MethodPost, pathApplications, nil, req)
	return err
}

func (c *client) ListApplications(ctx context.Context, email string) ([]types.Application, error) {
	var query url.Values
	if email != "" {
		query = url.Values{"email": {email}}
	}

	body, err := c.do(ctx, errors.OpListApplications, http.MethodGet, pathApplications, query, nil)
	if err != nil {
		return nil, err
	}

	var apps []types.Application
	if err := c.decode(errors.OpListApplications, schemas.Applications, body, &apps); err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []types.Application{}
	}
	return apps, nil
}

// do sends one request and returns the body of a 2xx response.
func (c *client) do(ctx context.Context, op errors.Op, method, path string, query url.Values, payload any) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "backend."+string(op))
	defer span.End()

	requestID := uuid.NewString()
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	log := c.logger.With(
		zap.String("op", string(op)),
		zap.String("request_id", requestID),
	)
	span.SetAttributes(
		observability.String("http.method", method),
		observability.String("http.url", endpoint),
		observability.String("request_id", requestID),
	)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			span.RecordError(err)
			return nil, errors.Validation(op, "encoding request body", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Transport(op, "creating request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.opts.Headers {
		req.Header.Set(key, value)
	}

	log.Debug("sending request", zap.String("method", method), zap.String("url", endpoint))

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		log.Error("failed to execute request", zap.Error(err))
		return nil, errors.Transport(op, "executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	span.SetAttributes(observability.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		log.Error("failed to read response body", zap.Error(err))
		return nil, errors.Transport(op, "reading response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		log.Warn("unexpected status code",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", truncateBody(data)))
		return nil, errors.Backend(op, resp.StatusCode, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	log.Debug("request succeeded", zap.Int("status_code", resp.StatusCode), zap.Int("bytes", len(data)))
	return data, nil
}

// decode validates body against the named schema before unmarshalling it.
func (c *client) decode(op errors.Op, schema schemas.Name, body []byte, out any) error {
	if err := schemas.Validate(schema, body); err != nil {
		c.logger.Warn("response failed schema validation", zap.String("op", string(op)), zap.Error(err))
		return errors.Backend(op, http.StatusOK, "malformed response body", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn("failed to decode response", zap.String("op", string(op)), zap.Error(err))
		return errors.Backend(op, http.StatusOK, "decoding response body", err)
	}
	return nil
}

func truncateBody(b []byte) []byte {
	const limit = 512
	if len(b) > limit {
		return b[:limit]
	}
	return b
}
