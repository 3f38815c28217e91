package client

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/addrinfo/packages/nodesim"
)

func TestInfoCache(t *testing.T) {
	node, server := newSimulatedNode(t)

	api := NewNode()
	require.NoError(t, api.Configure(server.URL))

	cache, err := NewInfoCache(api, time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	first, err := cache.GetNodeInfo(context.Background())
	require.NoError(t, err)
	second, err := cache.GetNodeInfo(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, node.Requests())
	assert.Equal(t, first, second)

	// callers own their copy
	second.Features[0] = "changed"
	third, err := cache.GetNodeInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, nodesim.DefaultInfo.Features[0], third.Features[0])

	require.NoError(t, cache.Invalidate())
	_, err = cache.GetNodeInfo(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, node.Requests())
}

func TestInfoCache_Expiry(t *testing.T) {
	node, server := newSimulatedNode(t)

	api := NewNode()
	require.NoError(t, api.Configure(server.URL))

	cache, err := NewInfoCache(api, 50*time.Millisecond)
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.GetNodeInfo(context.Background())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := cache.GetNodeInfo(context.Background())
		return err == nil && node.Requests() == 2
	}, time.Second, 20*time.Millisecond)
}

func TestInfoCache_DoesNotCacheErrors(t *testing.T) {
	node, server := newSimulatedNode(t)
	node.SetFailureMode(nodesim.Exception)

	api := NewNode()
	require.NoError(t, api.Configure(server.URL))

	cache, err := NewInfoCache(api, time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.GetNodeInfo(context.Background())
	require.Error(t, err)

	node.SetFailureMode(nodesim.Healthy)
	_, err = cache.GetNodeInfo(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, node.Requests())
}

func TestInfoCache_UnconfiguredNode(t *testing.T) {
	cache, err := NewInfoCache(NewNode(), time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.GetNodeInfo(context.Background())
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

// alternatingSource hands out its clients in turns.
type alternatingSource struct {
	clients []*Client
	calls   int
}

func (s *alternatingSource) Client() (*Client, error) {
	client := s.clients[s.calls%len(s.clients)]
	s.calls++
	return client, nil
}

func TestInfoCache_KeysByRequestedEndpoint(t *testing.T) {
	_, iri := newSimulatedNode(t)
	_, hornet := newSimulatedNode(t, nodesim.WithInfo(nodesim.Info{AppName: "HORNET", AppVersion: "0.4.0", LatestMilestoneIndex: 2}))

	iriClient, err := New(iri.URL)
	require.NoError(t, err)
	hornetClient, err := New(hornet.URL)
	require.NoError(t, err)

	source := &alternatingSource{clients: []*Client{iriClient, hornetClient}}
	cache, err := NewInfoCache(source, time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	// the source switches endpoints between calls; every info must stay with the endpoint it came from
	for i := 0; i < 6; i++ {
		info, err := cache.GetNodeInfo(context.Background())
		require.NoError(t, err)
		if i%2 == 0 {
			assert.Equal(t, "IRI", info.AppName, "call %d", i)
		} else {
			assert.Equal(t, "HORNET", info.AppName, "call %d", i)
		}
	}
	assert.Equal(t, 6, source.calls)
}
