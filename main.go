package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/iotaledger/addrinfo/client"
	"github.com/iotaledger/addrinfo/packages/address"
	"github.com/iotaledger/addrinfo/packages/configuration"
	"github.com/iotaledger/addrinfo/packages/logger"
	"github.com/iotaledger/addrinfo/packages/metrics"
)

const (
	// AppName is the name of the executable.
	AppName = "addrinfo"
	// AppVersion is the version of the executable.
	AppVersion = "v0.1.0"
)

var commands = map[string]interface{}{
	"address": runAddress,
	"info":    runInfo,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	if os.Args[1] == "version" || os.Args[1] == "--version" || os.Args[1] == "-v" {
		fmt.Println(AppName + " " + AppVersion)
		return
	}

	command, exists := commands[os.Args[1]]
	if !exists {
		printUsage()
		os.Exit(2)
	}

	container, err := buildContainer(os.Args[2:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := container.Invoke(command); err != nil {
		fmt.Fprintln(os.Stderr, dig.RootCause(err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage of %s:\n", AppName)
	fmt.Fprintf(os.Stderr, "  %s address [flags]   derive addresses from a seed\n", AppName)
	fmt.Fprintf(os.Stderr, "  %s info [flags]      print the status of a node\n", AppName)
	fmt.Fprintf(os.Stderr, "  %s version           print the version\n", AppName)
}

// buildContainer loads the configuration from args and provides all components of the commands.
func buildContainer(args []string) (*dig.Container, error) {
	params := newParameters()

	flags := flag.NewFlagSet(AppName, flag.ContinueOnError)
	config := configuration.New(flags)
	config.DefineParameters(params.Node, "node")
	config.DefineParameters(params.Address, "address")
	config.DefineParameters(params.Logger, "logger")
	config.DefineParameters(params.Metrics, "metrics")
	if err := config.Load(args); err != nil {
		return nil, err
	}

	container := dig.New()
	providers := []interface{}{
		func() *Parameters { return params },
		func() *configuration.Configuration { return config },
		newLogger,
		newRegistry,
		newDeriverMetrics,
		newClientMetrics,
		newDeriver,
		newClientOptions,
		newNode,
		newPool,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}

func newLogger(params *Parameters) (*zap.SugaredLogger, error) {
	return logger.NewLogger(AppName, params.Logger)
}

func newRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func newDeriverMetrics(registry *prometheus.Registry) (*metrics.DeriverMetrics, error) {
	return metrics.NewDeriverMetrics(registry)
}

func newClientMetrics(registry *prometheus.Registry) (*metrics.ClientMetrics, error) {
	return metrics.NewClientMetrics(registry)
}

func newDeriver(params *Parameters, deriverMetrics *metrics.DeriverMetrics, log *zap.SugaredLogger) (*address.Deriver, error) {
	return address.NewDeriver(
		address.WithSecurityLevel(params.securityLevel()),
		address.WithMetrics(deriverMetrics),
		address.WithLogger(log.Named("Deriver")),
	)
}

func newClientOptions(params *Parameters, clientMetrics *metrics.ClientMetrics, log *zap.SugaredLogger) []client.Option {
	return []client.Option{
		client.WithTimeout(params.Node.Timeout),
		client.WithUserAgent(AppName + "/" + AppVersion),
		client.WithBasicAuth(params.Node.Username, params.Node.Password),
		client.WithJWT(params.Node.JWT),
		client.WithMetrics(clientMetrics),
		client.WithLogger(log.Named("Client")),
	}
}

func newNode(params *Parameters, opts []client.Option) (*client.Node, error) {
	node := client.NewNode(opts...)
	if params.Node.URL == "" {
		return node, nil
	}
	if err := node.Configure(params.Node.URL); err != nil {
		return nil, err
	}
	return node, nil
}

// newPool returns nil unless further endpoints are configured.
func newPool(params *Parameters, opts []client.Option) (*client.Pool, error) {
	if len(params.Node.Pool) == 0 {
		return nil, nil
	}

	var endpoints []string
	if params.Node.URL != "" {
		endpoints = append(endpoints, params.Node.URL)
	}
	return client.NewPool(append(endpoints, params.Node.Pool...), opts...)
}
