package nodesim

import "go.uber.org/zap"

// Option configures a simulated node.
type Option func(*Node)

// WithInfo sets the initially reported status.
func WithInfo(info Info) Option {
	return func(n *Node) {
		n.info.Store(info)
	}
}

// WithBasicAuth makes the node reject requests without the given credentials.
func WithBasicAuth(username, password string) Option {
	return func(n *Node) {
		n.username = username
		n.password = password
	}
}

// WithLogger sets the logger of the node.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(n *Node) {
		n.log = log
	}
}
