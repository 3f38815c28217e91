package nodesim

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/addrinfo/packages/jsonmodels"
)

func post(t *testing.T, node *Node, body string, withVersion bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if withVersion {
		req.Header.Set(jsonmodels.APIVersionHeader, jsonmodels.DefaultAPIVersion)
	}
	rec := httptest.NewRecorder()
	node.ServeHTTP(rec, req)
	return rec
}

func TestNode_GetNodeInfo(t *testing.T) {
	node := New()

	rec := post(t, node, `{"command":"getNodeInfo"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	res := &jsonmodels.NodeInfoResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), res))
	require.NotNil(t, res.LatestMilestoneIndex)
	assert.Equal(t, DefaultInfo.AppName, *res.AppName)
	assert.Equal(t, DefaultInfo.AppVersion, *res.AppVersion)
	assert.Equal(t, DefaultInfo.LatestMilestoneIndex, *res.LatestMilestoneIndex)
	assert.EqualValues(t, 1, node.Requests())
}

func TestNode_Errors(t *testing.T) {
	node := New()

	rec := post(t, node, `{"command":"getNodeInfo"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid API Version")

	rec = post(t, node, `{"command":"attachToTangle"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Command [attachToTangle] is unknown")

	rec = post(t, node, `{}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	node.SetFailureMode(Exception)
	rec = post(t, node, `{"command":"getNodeInfo"}`, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "exception")
}

func TestNode_MissingMilestoneIndex(t *testing.T) {
	node := New()
	node.SetFailureMode(MissingMilestoneIndex)

	rec := post(t, node, `{"command":"getNodeInfo"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "latestMilestoneIndex")
}

func TestNode_BasicAuth(t *testing.T) {
	node := New(WithBasicAuth("user", "secret"))

	rec := post(t, node, `{"command":"getNodeInfo"}`, true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNode_StartShutdown(t *testing.T) {
	node := New(WithInfo(Info{AppName: "HORNET", AppVersion: "0.4.0", LatestMilestoneIndex: 7}))
	require.NoError(t, node.Start())
	assert.Contains(t, node.URL(), "http://127.0.0.1:")

	req, err := http.NewRequest(http.MethodPost, node.URL(), bytes.NewBufferString(`{"command":"getNodeInfo"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(jsonmodels.APIVersionHeader, "1")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, node.Shutdown(ctx))
}

func TestNode_Health(t *testing.T) {
	node := New()

	get := func() int {
		rec := httptest.NewRecorder()
		node.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, jsonmodels.RouteHealth, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, get())

	node.SetFailureMode(MalformedBody)
	assert.Equal(t, http.StatusServiceUnavailable, get())
	node.SetFailureMode(Healthy)

	info := DefaultInfo
	info.LatestSolidSubtangleMilestoneIndex--
	node.SetInfo(info)
	assert.Equal(t, http.StatusServiceUnavailable, get())
	assert.EqualValues(t, 3, node.Requests())
}
