package main

import (
	"time"

	"github.com/iotaledger/iota.go/consts"

	"github.com/iotaledger/addrinfo/packages/logger"
)

// Parameters contains the configuration parameters of all commands.
type Parameters struct {
	Node    *NodeParameters
	Address *AddressParameters
	Logger  *logger.Parameters
	Metrics *MetricsParameters
}

// NodeParameters contains the configuration parameters of the node client.
type NodeParameters struct {
	// URL is the endpoint of the node.
	URL string `default:"https://nodes.comnet.thetangle.org" usage:"the endpoint of the node"`
	// Pool lists further endpoints. When set, requests go to a synced node among URL and these.
	Pool []string `default:"" usage:"further node endpoints; requests go to a synced one"`
	// Timeout bounds a single request.
	Timeout time.Duration `default:"30s" usage:"the timeout of a single request"`
	// Username and Password enable basic authentication.
	Username string `default:"" usage:"the basic auth user name"`
	Password string `default:"" usage:"the basic auth password"`
	// JWT is sent as bearer token.
	JWT string `name:"jwt" default:"" usage:"the bearer token sent with every request"`
}

// AddressParameters contains the configuration parameters of the address command.
type AddressParameters struct {
	// Seed in trytes. The command asks for it when it is empty.
	Seed string `default:"" usage:"the seed in trytes, asked for when empty"`
	// Random generates a fresh seed instead.
	Random bool `default:"false" usage:"derive from a freshly generated seed"`
	// Index is the first key index.
	Index uint64 `default:"0" usage:"the first key index"`
	// Count is the number of consecutive addresses.
	Count int `default:"1" usage:"the number of consecutive addresses to derive"`
	// SecurityLevel is the number of key fragments.
	SecurityLevel int `default:"2" usage:"the security level (1, 2 or 3)"`
	// Checksum appends the 9 tryte checksum.
	Checksum bool `default:"true" usage:"append the address checksum"`
}

// MetricsParameters contains the configuration parameters of the metrics output.
type MetricsParameters struct {
	// File receives the collected metrics in the prometheus text format when the command finishes.
	File string `default:"" usage:"write the collected metrics to this file in the prometheus text format"`
}

func newParameters() *Parameters {
	return &Parameters{
		Node:    &NodeParameters{},
		Address: &AddressParameters{},
		Logger:  &logger.Parameters{},
		Metrics: &MetricsParameters{},
	}
}

func (p *Parameters) securityLevel() consts.SecurityLevel {
	return consts.SecurityLevel(p.Address.SecurityLevel)
}
