package client

import (
	"context"
	"time"

	"github.com/iotaledger/addrinfo/packages/jsonmodels"
)

// NodeInfo describes the software a node runs and its position in the ledger.
type NodeInfo struct {
	// name of the node software
	AppName string
	// version of the node software
	AppVersion string
	// index of the latest milestone the node knows about
	LatestMilestoneIndex uint32
	// hash of the latest milestone
	LatestMilestone string
	// hash of the latest milestone the node solidified
	LatestSolidSubtangleMilestone string
	// index of the latest milestone the node solidified
	LatestSolidSubtangleMilestoneIndex uint32
	// index of the first milestone of the current network
	MilestoneStartIndex uint32
	// index of the milestone the node's local snapshot was taken at
	LastSnapshottedMilestoneIndex uint32
	// number of connected neighbors
	Neighbors int
	// number of packets waiting to be processed
	PacketsQueueSize int
	// node clock at the time of the response
	Time time.Time
	// number of tips
	Tips int
	// number of transactions the node is requesting from its neighbors
	TransactionsToRequest int
	// optional features the node supports
	Features []string
	// address of the coordinator that issues milestones
	CoordinatorAddress string
	// time the node took to answer
	Duration time.Duration
}

// IsSynced reports whether the node has solidified up to the latest milestone it knows about.
func (i *NodeInfo) IsSynced() bool {
	return i.LatestMilestoneIndex != 0 && i.LatestMilestoneIndex == i.LatestSolidSubtangleMilestoneIndex
}

// Clone returns a deep copy of the NodeInfo.
func (i *NodeInfo) Clone() *NodeInfo {
	clone := *i
	if i.Features != nil {
		clone.Features = make([]string, len(i.Features))
		copy(clone.Features, i.Features)
	}
	return &clone
}

// GetNodeInfo gets the info of the node.
func (c *Client) GetNodeInfo(ctx context.Context) (*NodeInfo, error) {
	res := &jsonmodels.NodeInfoResponse{}
	if err := c.do(ctx, jsonmodels.CommandGetNodeInfo, res); err != nil {
		return nil, err
	}

	info := nodeInfoFromResponse(res)
	c.metrics.SetLatestMilestone(c.endpoint, info.LatestMilestoneIndex)

	return info, nil
}

// IsSynced gets the info of the node and reports whether it is synced.
func (c *Client) IsSynced(ctx context.Context) (bool, error) {
	info, err := c.GetNodeInfo(ctx)
	if err != nil {
		return false, err
	}
	return info.IsSynced(), nil
}

func nodeInfoFromResponse(res *jsonmodels.NodeInfoResponse) *NodeInfo {
	info := &NodeInfo{
		AppName:                            *res.AppName,
		AppVersion:                         *res.AppVersion,
		LatestMilestoneIndex:               *res.LatestMilestoneIndex,
		LatestMilestone:                    res.LatestMilestone,
		LatestSolidSubtangleMilestone:      res.LatestSolidSubtangleMilestone,
		LatestSolidSubtangleMilestoneIndex: res.LatestSolidSubtangleMilestoneIndex,
		MilestoneStartIndex:                res.MilestoneStartIndex,
		LastSnapshottedMilestoneIndex:      res.LastSnapshottedMilestoneIndex,
		Neighbors:                          res.Neighbors,
		PacketsQueueSize:                   res.PacketsQueueSize,
		Tips:                               res.Tips,
		TransactionsToRequest:              res.TransactionsToRequest,
		Features:                           res.Features,
		CoordinatorAddress:                 res.CoordinatorAddress,
		Duration:                           time.Duration(res.Duration) * time.Millisecond,
	}
	if res.Time != 0 {
		info.Time = time.Unix(0, res.Time*int64(time.Millisecond))
	}
	return info
}
