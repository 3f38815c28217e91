package client

import (
	"context"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/cockroachdb/errors"
)

// ClientSource hands out the Client a request is sent through. It is implemented by Node and Pool.
type ClientSource interface {
	Client() (*Client, error)
}

// InfoCache remembers the last NodeInfo of an endpoint for a fixed time, for callers polling the status of a node.
type InfoCache struct {
	source ClientSource
	infos  *ttlcache.Cache
}

// NewInfoCache returns an InfoCache that keeps a NodeInfo for ttl.
func NewInfoCache(source ClientSource, ttl time.Duration) (*InfoCache, error) {
	infos := ttlcache.NewCache()
	infos.SkipTTLExtensionOnHit(true)
	if err := infos.SetTTL(ttl); err != nil {
		return nil, errors.WithStack(err)
	}

	return &InfoCache{
		source: source,
		infos:  infos,
	}, nil
}

// GetNodeInfo returns the cached NodeInfo of the node the source currently points at or requests it if it expired.
// Every call returns a separate copy.
func (c *InfoCache) GetNodeInfo(ctx context.Context) (*NodeInfo, error) {
	// key and request use the same Client, even if the source is reconfigured meanwhile
	client, err := c.source.Client()
	if err != nil {
		return nil, err
	}
	endpoint := client.Endpoint()

	cached, err := c.infos.Get(endpoint)
	if err == nil {
		return cached.(*NodeInfo).Clone(), nil
	}
	if !errors.Is(err, ttlcache.ErrNotFound) {
		return nil, errors.WithStack(err)
	}

	info, err := client.GetNodeInfo(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.infos.Set(endpoint, info.Clone()); err != nil {
		return nil, errors.WithStack(err)
	}

	return info, nil
}

// Invalidate drops all cached infos.
func (c *InfoCache) Invalidate() error {
	return errors.WithStack(c.infos.Purge())
}

// Close stops the expiration of the cache.
func (c *InfoCache) Close() error {
	return errors.WithStack(c.infos.Close())
}
