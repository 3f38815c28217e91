package address

import (
	"github.com/iotaledger/iota.go/consts"
	"go.uber.org/zap"

	"github.com/iotaledger/addrinfo/packages/metrics"
)

// Option configures a Deriver.
type Option func(*Deriver)

// WithSecurityLevel sets the number of key fragments (1, 2 or 3) of the private keys.
func WithSecurityLevel(level consts.SecurityLevel) Option {
	return func(d *Deriver) {
		d.securityLevel = level
	}
}

// WithWorkers sets the number of goroutines DeriveRange uses.
func WithWorkers(workers int) Option {
	return func(d *Deriver) {
		d.workers = workers
	}
}

// WithMetrics makes the Deriver report to the given collectors.
func WithMetrics(m *metrics.DeriverMetrics) Option {
	return func(d *Deriver) {
		d.metrics = m
	}
}

// WithLogger sets the logger of the Deriver.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(d *Deriver) {
		d.log = log
	}
}
