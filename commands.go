package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/iotaledger/addrinfo/client"
	"github.com/iotaledger/addrinfo/packages/address"
)

// runAddress derives the configured range of addresses and prints them.
func runAddress(params *Parameters, deriver *address.Deriver, registry *prometheus.Registry, log *zap.SugaredLogger) error {
	defer writeMetrics(params, registry, log)

	seed, err := loadSeed(params.Address)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	addresses, err := deriver.DeriveRange(ctx, seed, params.Address.Index, params.Address.Count)
	if err != nil {
		return err
	}

	fmt.Printf("Addresses of seed %s at security level %d:\n", seed.Fingerprint(), deriver.SecurityLevel())
	for i, addr := range addresses {
		rendered := addr.String()
		if params.Address.Checksum {
			withChecksum, err := addr.WithChecksum()
			if err != nil {
				return err
			}
			rendered = string(withChecksum)
		}
		fmt.Printf("%d: %s\n", params.Address.Index+uint64(i), rendered)
	}

	return nil
}

// runInfo prints the status of the configured node, or of a synced one if a pool is configured.
func runInfo(params *Parameters, node *client.Node, pool *client.Pool, registry *prometheus.Registry, log *zap.SugaredLogger) error {
	defer writeMetrics(params, registry, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var source client.ClientSource = node
	if pool != nil {
		if err := pool.Refresh(ctx); err != nil {
			return errors.Wrapf(err, "none of %v is synced", pool.Endpoints())
		}
		fmt.Printf("Synced nodes: %v\n", pool.SyncedNodes())
		if unsynced := pool.UnsyncedNodes(); len(unsynced) > 0 {
			fmt.Printf("Unsynced nodes: %v\n", unsynced)
		}
		source = pool
	}

	api, err := source.Client()
	if err != nil {
		return err
	}
	info, err := api.GetNodeInfo(ctx)
	if err != nil {
		return err
	}
	healthy, err := api.GetHealth(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Node: %s\n", api.Endpoint())
	fmt.Printf("Node name: %s\n", info.AppName)
	fmt.Printf("Node version: %s\n", info.AppVersion)
	fmt.Printf("Last milestone index: %d\n", info.LatestMilestoneIndex)
	fmt.Printf("Last solid milestone index: %d\n", info.LatestSolidSubtangleMilestoneIndex)
	fmt.Printf("Synced: %t\n", info.IsSynced())
	fmt.Printf("Healthy: %t\n", healthy)
	fmt.Printf("Neighbors: %d\n", info.Neighbors)
	if len(info.Features) > 0 {
		fmt.Printf("Features: %v\n", info.Features)
	}

	return nil
}

// loadSeed returns the configured seed, a random one or asks for it.
func loadSeed(params *AddressParameters) (address.Seed, error) {
	switch {
	case params.Random:
		seed, err := address.RandomSeed()
		if err != nil {
			return nil, err
		}
		trytes, err := seed.Trytes()
		if err != nil {
			return nil, err
		}
		fmt.Printf("Generated seed: %s\n", trytes)
		return seed, nil
	case params.Seed != "":
		return address.ParseSeed(params.Seed)
	}

	var trytes string
	prompt := &survey.Password{Message: "Seed (81 trytes):"}
	if err := survey.AskOne(prompt, &trytes, survey.WithValidator(func(answer interface{}) error {
		_, err := address.ParseSeed(answer.(string))
		return err
	})); err != nil {
		return nil, errors.Wrap(err, "failed to read seed")
	}

	return address.ParseSeed(trytes)
}

func writeMetrics(params *Parameters, registry *prometheus.Registry, log *zap.SugaredLogger) {
	if params.Metrics.File == "" {
		return
	}
	if err := prometheus.WriteToTextfile(params.Metrics.File, registry); err != nil {
		log.Warnw("Failed to write metrics", "file", params.Metrics.File, "err", err)
	}
}
