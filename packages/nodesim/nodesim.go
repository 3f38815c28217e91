// Package nodesim provides an in-process node that serves the getNodeInfo command and the health route of the node
// HTTP API. It is used to exercise clients without a real node.
package nodesim

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/iotaledger/addrinfo/packages/jsonmodels"
)

// FailureMode selects how the simulated node answers getNodeInfo.
type FailureMode int32

const (
	// Healthy answers with the configured info.
	Healthy FailureMode = iota
	// Exception answers with an internal server error.
	Exception
	// MissingMilestoneIndex answers with an info that lacks the latest milestone index.
	MissingMilestoneIndex
	// MalformedBody answers with a body that is not JSON.
	MalformedBody
	// WrongFieldType answers with a latest milestone index that is not a number.
	WrongFieldType
)

// Info is the status the simulated node reports.
type Info struct {
	AppName                            string
	AppVersion                         string
	LatestMilestoneIndex               uint32
	LatestMilestone                    string
	LatestSolidSubtangleMilestone      string
	LatestSolidSubtangleMilestoneIndex uint32
	MilestoneStartIndex                uint32
	Neighbors                          int
	Tips                               int
	Features                           []string
	CoordinatorAddress                 string
}

// DefaultInfo is the status of a synced node.
var DefaultInfo = Info{
	AppName:                            "IRI",
	AppVersion:                         "1.8.6",
	LatestMilestoneIndex:               1337,
	LatestSolidSubtangleMilestoneIndex: 1337,
	MilestoneStartIndex:                1,
	Neighbors:                          4,
	Tips:                               12,
	Features:                           []string{"RemotePOW", "WereAddressesSpentFrom"},
}

// Node is a simulated node.
type Node struct {
	echo     *echo.Echo
	server   *http.Server
	listener net.Listener
	log      *zap.SugaredLogger

	username string
	password string

	info        atomic.Value
	failureMode *atomic.Int32
	delay       *atomic.Duration
	requests    *atomic.Int64
}

// New creates a simulated node. It serves requests through ServeHTTP or, after Start, on a loopback port.
func New(opts ...Option) *Node {
	n := &Node{
		echo:        echo.New(),
		log:         zap.NewNop().Sugar(),
		failureMode: atomic.NewInt32(int32(Healthy)),
		delay:       atomic.NewDuration(0),
		requests:    atomic.NewInt64(0),
	}
	n.info.Store(DefaultInfo)

	for _, opt := range opts {
		opt(n)
	}

	n.echo.POST("/", n.handleCommand)
	n.echo.GET(jsonmodels.RouteHealth, n.handleHealth)

	return n
}

// Start serves the node on a random loopback port.
func (n *Node) Start() error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}
	n.listener = listener
	n.server = &http.Server{Handler: n.echo}

	go func() {
		if err := n.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			n.log.Errorw("Simulated node stopped", "err", err)
		}
	}()
	n.log.Infow("Simulated node started", "url", n.URL())

	return nil
}

// URL returns the endpoint of the started node.
func (n *Node) URL() string {
	if n.listener == nil {
		return ""
	}
	return "http://" + n.listener.Addr().String()
}

// Shutdown stops a started node.
func (n *Node) Shutdown(ctx context.Context) error {
	if n.server == nil {
		return nil
	}
	return errors.WithStack(n.server.Shutdown(ctx))
}

// ServeHTTP serves a single request.
func (n *Node) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.echo.ServeHTTP(w, r)
}

// SetInfo replaces the reported status.
func (n *Node) SetInfo(info Info) {
	n.info.Store(info)
}

// SetFailureMode changes how getNodeInfo is answered.
func (n *Node) SetFailureMode(mode FailureMode) {
	n.failureMode.Store(int32(mode))
}

// SetDelay delays every answer by d.
func (n *Node) SetDelay(d time.Duration) {
	n.delay.Store(d)
}

// Requests returns the number of requests the node received.
func (n *Node) Requests() int64 {
	return n.requests.Load()
}

// wait applies the configured delay. It returns false if the client went away meanwhile.
func (n *Node) wait(c echo.Context) bool {
	delay := n.delay.Load()
	if delay <= 0 {
		return true
	}
	select {
	case <-time.After(delay):
		return true
	case <-c.Request().Context().Done():
		return false
	}
}

// handleHealth answers 200 OK while the node is synced and not failing, 503 otherwise.
func (n *Node) handleHealth(c echo.Context) error {
	n.requests.Inc()
	if !n.wait(c) {
		return nil
	}

	info := n.info.Load().(Info)
	synced := info.LatestMilestoneIndex != 0 && info.LatestMilestoneIndex == info.LatestSolidSubtangleMilestoneIndex
	if FailureMode(n.failureMode.Load()) != Healthy || !synced {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}

func (n *Node) handleCommand(c echo.Context) error {
	n.requests.Inc()
	if !n.wait(c) {
		return nil
	}

	if n.username != "" {
		username, password, ok := c.Request().BasicAuth()
		if !ok || username != n.username || password != n.password {
			return c.JSON(http.StatusUnauthorized, jsonmodels.ErrorResponse{Error: "Unauthorized"})
		}
	}

	if c.Request().Header.Get(jsonmodels.APIVersionHeader) == "" {
		return c.JSON(http.StatusBadRequest, jsonmodels.ErrorResponse{Error: "Invalid API Version"})
	}

	request := &jsonmodels.CommandRequest{}
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, jsonmodels.ErrorResponse{Error: "Invalid JSON syntax"})
	}

	switch request.Command {
	case "":
		return c.JSON(http.StatusBadRequest, jsonmodels.ErrorResponse{Error: "COMMAND parameter has not been specified in the request."})
	case jsonmodels.CommandGetNodeInfo:
		return n.getNodeInfo(c)
	default:
		return c.JSON(http.StatusBadRequest, jsonmodels.ErrorResponse{Error: fmt.Sprintf("Command [%s] is unknown", request.Command)})
	}
}

func (n *Node) getNodeInfo(c echo.Context) error {
	start := time.Now()
	info := n.info.Load().(Info)

	switch FailureMode(n.failureMode.Load()) {
	case Exception:
		return c.JSON(http.StatusInternalServerError, jsonmodels.ErrorResponse{Exception: "simulated failure"})
	case MalformedBody:
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(`{"appName":`))
	case WrongFieldType:
		return c.JSONBlob(http.StatusOK, []byte(fmt.Sprintf(`{"appName":%q,"appVersion":%q,"latestMilestoneIndex":"latest"}`, info.AppName, info.AppVersion)))
	}

	response := &jsonmodels.NodeInfoResponse{
		AppName:                            &info.AppName,
		AppVersion:                         &info.AppVersion,
		LatestMilestoneIndex:               &info.LatestMilestoneIndex,
		LatestMilestone:                    info.LatestMilestone,
		LatestSolidSubtangleMilestone:      info.LatestSolidSubtangleMilestone,
		LatestSolidSubtangleMilestoneIndex: info.LatestSolidSubtangleMilestoneIndex,
		MilestoneStartIndex:                info.MilestoneStartIndex,
		Neighbors:                          info.Neighbors,
		Time:                               time.Now().UnixNano() / int64(time.Millisecond),
		Tips:                               info.Tips,
		Features:                           info.Features,
		CoordinatorAddress:                 info.CoordinatorAddress,
	}
	if FailureMode(n.failureMode.Load()) == MissingMilestoneIndex {
		response.LatestMilestoneIndex = nil
	}
	response.Duration = time.Since(start).Milliseconds()

	return c.JSON(http.StatusOK, response)
}
