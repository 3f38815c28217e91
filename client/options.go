package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/iotaledger/addrinfo/packages/jsonmodels"
	"github.com/iotaledger/addrinfo/packages/metrics"
)

type options struct {
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	apiVersion string
	username   string
	password   string
	jwt        string
	metrics    *metrics.ClientMetrics
	log        *zap.SugaredLogger
}

func defaultOptions() *options {
	return &options{
		timeout:    DefaultTimeout,
		apiVersion: jsonmodels.DefaultAPIVersion,
		log:        zap.NewNop().Sugar(),
	}
}

// Option configures a Client.
type Option func(*options)

// WithTimeout bounds the duration of a single request.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithHTTPClient makes the Client send its requests through a copy of the given http.Client. The copy shares the
// transport of the original.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithUserAgent sets the User-Agent header of all requests.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithAPIVersion overrides the node API version sent with every request.
func WithAPIVersion(version string) Option {
	return func(o *options) {
		o.apiVersion = version
	}
}

// WithBasicAuth authenticates all requests with the given credentials.
func WithBasicAuth(username, password string) Option {
	return func(o *options) {
		o.username = username
		o.password = password
	}
}

// WithJWT authenticates all requests with the given bearer token.
func WithJWT(token string) Option {
	return func(o *options) {
		o.jwt = token
	}
}

// WithMetrics makes the Client report to the given collectors.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithLogger sets the logger of the Client.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		o.log = log
	}
}
