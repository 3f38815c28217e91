package client

import (
	"context"
	"net/http"
	"time"

	"github.com/iotaledger/addrinfo/packages/metrics"
)

const commandHealth = "health"

// GetHealth asks the node whether it considers itself healthy. Only 200 OK counts as healthy; other status codes are
// reported as unhealthy without an error.
func (c *Client) GetHealth(ctx context.Context) (bool, error) {
	start := time.Now()

	res, err := c.httpClient.R().
		SetContext(ctx).
		Get(c.healthURL)
	if err != nil {
		c.observe(commandHealth, metrics.OutcomeTransport, start)
		c.log.Debugw("Request failed", "command", commandHealth, "err", err)
		return false, &TransportError{Endpoint: c.endpoint, Command: commandHealth, Cause: err}
	}
	c.observe(commandHealth, metrics.OutcomeSuccess, start)

	return res.StatusCode() == http.StatusOK, nil
}
