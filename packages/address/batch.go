package address

import (
	"context"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
)

// DeriveRange derives the addresses of count consecutive indices starting at start. The addresses are computed on a
// worker pool and returned in index order. The first failure aborts the remaining work.
func (d *Deriver) DeriveRange(ctx context.Context, seed Seed, start uint64, count int) ([]Address, error) {
	if err := seed.Validate(); err != nil {
		d.metrics.ObserveFailure()
		return nil, err
	}
	if count < 0 {
		return nil, errors.Newf("negative address count %d", count)
	}
	if count == 0 {
		return []Address{}, nil
	}

	workers := d.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > count {
		workers = count
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create worker pool")
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		addresses = make([]Address, count)
		wg        sync.WaitGroup
		failOnce  sync.Once
		failure   error
	)
	fail := func(err error) {
		failOnce.Do(func() {
			failure = err
			cancel()
		})
	}

	for i := 0; i < count && ctx.Err() == nil; i++ {
		position := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			if ctx.Err() != nil {
				return
			}
			addr, err := d.Derive(seed, start+uint64(position))
			if err != nil {
				fail(err)
				return
			}
			addresses[position] = addr
		}); err != nil {
			wg.Done()
			fail(errors.Wrap(err, "failed to submit derivation task"))
		}
	}
	wg.Wait()

	if failure != nil {
		return nil, failure
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "address derivation aborted")
	}

	d.log.Debugw("Derived address range", "seed", seed.Fingerprint(), "start", start, "count", count)

	return addresses, nil
}
