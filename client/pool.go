package client

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var (
	// ErrNoNodes is returned when a Pool is created without endpoints.
	ErrNoNodes = errors.New("no node endpoints given")
	// ErrNoSyncedNode is returned when none of the nodes of a Pool was synced at the last refresh.
	ErrNoSyncedNode = errors.New("no synced node available")
)

// Pool holds the Clients of several nodes and hands out the ones that were synced at the last Refresh, in turns.
type Pool struct {
	clients []*Client
	synced  atomic.Value
	next    *atomic.Uint64
	log     *zap.SugaredLogger
}

// NewPool creates a Pool of the given endpoints. Duplicate endpoints are dropped. The options are applied to the Client
// of every endpoint. No node counts as synced before the first Refresh.
func NewPool(endpoints []string, opts ...Option) (*Pool, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	p := &Pool{
		next: atomic.NewUint64(0),
		log:  options.log,
	}
	seen := make(map[string]bool, len(endpoints))
	for _, endpoint := range endpoints {
		if seen[endpoint] {
			continue
		}
		seen[endpoint] = true

		client, err := New(endpoint, opts...)
		if err != nil {
			return nil, err
		}
		p.clients = append(p.clients, client)
	}
	if len(p.clients) == 0 {
		return nil, ErrNoNodes
	}
	p.synced.Store([]*Client{})

	return p, nil
}

// Refresh asks every node for its info and keeps the synced ones. Nodes following different coordinators are not
// mixed: only the largest group of synced nodes sharing a coordinator is kept.
func (p *Pool) Refresh(ctx context.Context) error {
	infos := make([]*NodeInfo, len(p.clients))

	var wg sync.WaitGroup
	for i, client := range p.clients {
		wg.Add(1)
		go func(i int, client *Client) {
			defer wg.Done()

			info, err := client.GetNodeInfo(ctx)
			if err != nil {
				p.log.Debugw("Node unavailable", "endpoint", client.Endpoint(), "err", err)
				return
			}
			infos[i] = info
		}(i, client)
	}
	wg.Wait()

	synced := selectSynced(p.clients, infos)
	p.synced.Store(synced)
	p.log.Debugw("Refreshed synced nodes", "synced", len(synced), "nodes", len(p.clients))

	if len(synced) == 0 {
		return ErrNoSyncedNode
	}
	return nil
}

func selectSynced(clients []*Client, infos []*NodeInfo) []*Client {
	groups := make(map[string][]*Client)
	var coordinators []string
	for i, info := range infos {
		if info == nil || !info.IsSynced() {
			continue
		}
		if _, exists := groups[info.CoordinatorAddress]; !exists {
			coordinators = append(coordinators, info.CoordinatorAddress)
		}
		groups[info.CoordinatorAddress] = append(groups[info.CoordinatorAddress], clients[i])
	}

	synced := []*Client{}
	for _, coordinator := range coordinators {
		if len(groups[coordinator]) > len(synced) {
			synced = groups[coordinator]
		}
	}
	return synced
}

// Run refreshes the pool every interval until ctx is done. It does not refresh right away.
func (p *Pool) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
				p.log.Warnw("Failed to refresh nodes", "err", err)
			}
		}
	}
}

// Client returns the Client of the next synced node.
func (p *Pool) Client() (*Client, error) {
	synced := p.synced.Load().([]*Client)
	if len(synced) == 0 {
		return nil, ErrNoSyncedNode
	}
	return synced[(p.next.Inc()-1)%uint64(len(synced))], nil
}

// GetNodeInfo gets the info of the next synced node.
func (p *Pool) GetNodeInfo(ctx context.Context) (*NodeInfo, error) {
	client, err := p.Client()
	if err != nil {
		return nil, err
	}
	return client.GetNodeInfo(ctx)
}

// GetHealth asks the next synced node whether it is healthy.
func (p *Pool) GetHealth(ctx context.Context) (bool, error) {
	client, err := p.Client()
	if err != nil {
		return false, err
	}
	return client.GetHealth(ctx)
}

// Endpoints returns all endpoints of the pool.
func (p *Pool) Endpoints() []string {
	endpoints := make([]string, len(p.clients))
	for i, client := range p.clients {
		endpoints[i] = client.Endpoint()
	}
	return endpoints
}

// SyncedNodes returns the endpoints that were synced at the last refresh.
func (p *Pool) SyncedNodes() []string {
	synced := p.synced.Load().([]*Client)
	endpoints := make([]string, len(synced))
	for i, client := range synced {
		endpoints[i] = client.Endpoint()
	}
	return endpoints
}

// UnsyncedNodes returns the endpoints that were not synced at the last refresh.
func (p *Pool) UnsyncedNodes() []string {
	synced := make(map[*Client]bool)
	for _, client := range p.synced.Load().([]*Client) {
		synced[client] = true
	}

	var endpoints []string
	for _, client := range p.clients {
		if !synced[client] {
			endpoints = append(endpoints, client.Endpoint())
		}
	}
	return endpoints
}
