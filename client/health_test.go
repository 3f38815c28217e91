package client

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/addrinfo/packages/nodesim"
)

func TestClient_GetHealth(t *testing.T) {
	node, server := newSimulatedNode(t)

	api, err := New(server.URL)
	require.NoError(t, err)

	healthy, err := api.GetHealth(context.Background())
	require.NoError(t, err)
	assert.True(t, healthy)

	node.SetFailureMode(nodesim.Exception)
	healthy, err = api.GetHealth(context.Background())
	require.NoError(t, err)
	assert.False(t, healthy)

	node.SetFailureMode(nodesim.Healthy)
	node.SetInfo(nodesim.Info{AppName: "IRI", AppVersion: "1.8.6", LatestMilestoneIndex: 10, LatestSolidSubtangleMilestoneIndex: 8})
	healthy, err = api.GetHealth(context.Background())
	require.NoError(t, err)
	assert.False(t, healthy)
}

func TestClient_GetHealthIgnoresEndpointPath(t *testing.T) {
	requested := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested <- r.URL.RequestURI()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	api, err := New(server.URL + "/api/v1?debug=true")
	require.NoError(t, err)

	healthy, err := api.GetHealth(context.Background())
	require.NoError(t, err)
	assert.True(t, healthy)
	assert.Equal(t, "/health", <-requested)
}

func TestClient_GetHealthTransportError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	endpoint := "http://" + listener.Addr().String()
	require.NoError(t, listener.Close())

	api, err := New(endpoint, WithTimeout(2*time.Second))
	require.NoError(t, err)

	healthy, err := api.GetHealth(context.Background())
	assert.False(t, healthy)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "health", transportErr.Command)
}

func TestNode_GetHealth(t *testing.T) {
	node := NewNode()
	_, err := node.GetHealth(context.Background())
	assert.True(t, errors.Is(err, ErrNotConfigured))

	_, server := newSimulatedNode(t)
	require.NoError(t, node.Configure(server.URL))

	healthy, err := node.GetHealth(context.Background())
	require.NoError(t, err)
	assert.True(t, healthy)
}
