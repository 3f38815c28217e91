package client

import (
	"context"

	"go.uber.org/atomic"
)

// Node holds the endpoint of the node a process talks to. Configure replaces the endpoint by publishing a new Client;
// requests that already started keep using the Client they started with.
type Node struct {
	opts    []Option
	current atomic.Value
}

// NewNode returns an unconfigured Node. The options are applied to every Client created by Configure.
func NewNode(opts ...Option) *Node {
	return &Node{opts: opts}
}

// Configure points the Node at endpoint. It can be called again to replace the endpoint.
func (n *Node) Configure(endpoint string, opts ...Option) error {
	client, err := New(endpoint, append(append([]Option{}, n.opts...), opts...)...)
	if err != nil {
		return err
	}
	n.current.Store(client)
	return nil
}

// Configured reports whether an endpoint was configured.
func (n *Node) Configured() bool {
	return n.current.Load() != nil
}

// Client returns the Client of the currently configured endpoint.
func (n *Node) Client() (*Client, error) {
	client, ok := n.current.Load().(*Client)
	if !ok {
		return nil, ErrNotConfigured
	}
	return client, nil
}

// Endpoint returns the configured endpoint or an empty string if none is configured.
func (n *Node) Endpoint() string {
	client, err := n.Client()
	if err != nil {
		return ""
	}
	return client.Endpoint()
}

// GetNodeInfo gets the info of the configured node.
func (n *Node) GetNodeInfo(ctx context.Context) (*NodeInfo, error) {
	client, err := n.Client()
	if err != nil {
		return nil, err
	}
	return client.GetNodeInfo(ctx)
}

// GetHealth asks the configured node whether it is healthy.
func (n *Node) GetHealth(ctx context.Context) (bool, error) {
	client, err := n.Client()
	if err != nil {
		return false, err
	}
	return client.GetHealth(ctx)
}
