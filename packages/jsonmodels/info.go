// Package jsonmodels holds the JSON bodies exchanged with a node's HTTP API.
package jsonmodels

// APIVersionHeader is the header that carries the version of the node API a request is written against.
const APIVersionHeader = "X-IOTA-API-Version"

// DefaultAPIVersion is the node API version requests are sent with.
const DefaultAPIVersion = "1"

// CommandGetNodeInfo is the command that returns the status of a node.
const CommandGetNodeInfo = "getNodeInfo"

// RouteHealth is answered with 200 OK by a node that considers itself healthy.
const RouteHealth = "/health"

// CommandRequest is the body of every node API request. The command selects the operation.
type CommandRequest struct {
	Command string `json:"command"`
}

// ErrorResponse is returned by a node when a request could not be served. Client errors carry Error, internal
// failures carry Exception.
type ErrorResponse struct {
	Error     string `json:"error,omitempty"`
	Exception string `json:"exception,omitempty"`
	Duration  int64  `json:"duration,omitempty"`
}

// Message returns whichever of the error fields is set.
func (e *ErrorResponse) Message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Exception
}

// NodeInfoResponse is the response of the getNodeInfo command. The required fields are pointers so that a missing
// field can be told apart from its zero value.
type NodeInfoResponse struct {
	AppName                            *string  `json:"appName,omitempty" validate:"required"`
	AppVersion                         *string  `json:"appVersion,omitempty" validate:"required"`
	LatestMilestoneIndex               *uint32  `json:"latestMilestoneIndex,omitempty" validate:"required"`
	LatestMilestone                    string   `json:"latestMilestone,omitempty"`
	LatestSolidSubtangleMilestone      string   `json:"latestSolidSubtangleMilestone,omitempty"`
	LatestSolidSubtangleMilestoneIndex uint32   `json:"latestSolidSubtangleMilestoneIndex,omitempty"`
	MilestoneStartIndex                uint32   `json:"milestoneStartIndex,omitempty"`
	LastSnapshottedMilestoneIndex      uint32   `json:"lastSnapshottedMilestoneIndex,omitempty"`
	Neighbors                          int      `json:"neighbors"`
	PacketsQueueSize                   int      `json:"packetsQueueSize"`
	Time                               int64    `json:"time,omitempty"`
	Tips                               int      `json:"tips"`
	TransactionsToRequest              int      `json:"transactionsToRequest"`
	Features                           []string `json:"features,omitempty"`
	CoordinatorAddress                 string   `json:"coordinatorAddress,omitempty"`
	Duration                           int64    `json:"duration"`
}
