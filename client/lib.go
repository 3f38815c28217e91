// Package client implements a small client for the HTTP API of a ledger node.
package client

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/iotaledger/addrinfo/packages/jsonmodels"
	"github.com/iotaledger/addrinfo/packages/metrics"
)

const (
	contentTypeJSON = "application/json"

	// DefaultTimeout bounds a single request unless a different timeout is configured.
	DefaultTimeout = 30 * time.Second
)

// Client is an API wrapper over the HTTP API of a single node. The endpoint is fixed for the lifetime of the Client,
// so it is safe for concurrent use without further synchronization.
type Client struct {
	endpoint   string
	healthURL  string
	httpClient *resty.Client
	validate   *validator.Validate
	metrics    *metrics.ClientMetrics
	log        *zap.SugaredLogger
}

// New returns a Client talking to the node at endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	parsed, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	httpClient := resty.New()
	if options.httpClient != nil {
		// resty sets the timeout and a missing transport on the client it wraps, so it gets a copy
		hc := *options.httpClient
		httpClient = resty.NewWithClient(&hc)
	}
	httpClient.
		SetTimeout(options.timeout).
		SetRetryCount(0).
		SetLogger(options.log).
		SetHeader("Content-Type", contentTypeJSON).
		SetHeader("Accept", contentTypeJSON).
		SetHeader(jsonmodels.APIVersionHeader, options.apiVersion)
	if options.userAgent != "" {
		httpClient.SetHeader("User-Agent", options.userAgent)
	}
	if options.username != "" {
		httpClient.SetBasicAuth(options.username, options.password)
	}
	if options.jwt != "" {
		httpClient.SetAuthToken(options.jwt)
	}

	health := *parsed
	health.Path, health.RawPath, health.RawQuery, health.Fragment = jsonmodels.RouteHealth, "", "", ""

	return &Client{
		endpoint:   endpoint,
		healthURL:  health.String(),
		httpClient: httpClient,
		validate:   validator.New(),
		metrics:    options.metrics,
		log:        options.log.With("endpoint", endpoint),
	}, nil
}

// Endpoint returns the URL of the node.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEndpoint, "%s: %s", endpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Wrapf(ErrInvalidEndpoint, "%s: unsupported scheme %q", endpoint, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.Wrapf(ErrInvalidEndpoint, "%s: missing host", endpoint)
	}
	return parsed, nil
}

// do sends command to the node and decodes the response into resObj.
func (c *Client) do(ctx context.Context, command string, resObj interface{}) error {
	start := time.Now()

	res, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(&jsonmodels.CommandRequest{Command: command}).
		Post(c.endpoint)
	if err != nil {
		c.observe(command, metrics.OutcomeTransport, start)
		c.log.Debugw("Request failed", "command", command, "err", err)
		return &TransportError{Endpoint: c.endpoint, Command: command, Cause: err}
	}

	if err := c.interpretBody(command, res, resObj); err != nil {
		outcome := metrics.OutcomeProtocol
		if errors.As(err, new(*RemoteError)) {
			outcome = metrics.OutcomeRemote
		}
		c.observe(command, outcome, start)
		c.log.Debugw("Node rejected request", "command", command, "status", res.StatusCode(), "err", err)
		return err
	}

	c.observe(command, metrics.OutcomeSuccess, start)
	return nil
}

func (c *Client) interpretBody(command string, res *resty.Response, decodeTo interface{}) error {
	body := res.Body()

	errRes := &jsonmodels.ErrorResponse{}
	hasErrorBody := json.Unmarshal(body, errRes) == nil && errRes.Message() != ""

	if !res.IsSuccess() {
		message := res.Status()
		if hasErrorBody {
			message = errRes.Message()
		}
		return &RemoteError{Endpoint: c.endpoint, Command: command, StatusCode: res.StatusCode(), Message: message}
	}

	// some nodes answer errors with a success status
	if hasErrorBody {
		return &RemoteError{Endpoint: c.endpoint, Command: command, StatusCode: res.StatusCode(), Message: errRes.Message()}
	}

	if err := json.Unmarshal(body, decodeTo); err != nil {
		return &ProtocolError{Endpoint: c.endpoint, Command: command, Cause: errors.Wrap(err, "unable to decode response body")}
	}
	if err := c.validate.Struct(decodeTo); err != nil {
		return &ProtocolError{Endpoint: c.endpoint, Command: command, Cause: errors.Wrap(err, "invalid response")}
	}

	return nil
}

func (c *Client) observe(command, outcome string, start time.Time) {
	c.metrics.ObserveRequest(command, outcome, time.Since(start))
}
