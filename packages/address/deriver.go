// Package address derives legacy IOTA addresses from trinary seeds.
//
// An address is the Kerl hash of the key digests of the private key at a given index:
//
//	subseed = Kerl(seed + index), with the last trit of the sum cleared
//	key     = Kerl(subseed) squeezed into 27 segments per security level
//	digest  = Kerl of every key segment hashed 26 times, one per key fragment
//	address = Kerl(digests)
package address

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/iota.go/consts"
	"github.com/iotaledger/iota.go/kerl"
	"github.com/iotaledger/iota.go/trinary"
	"go.uber.org/zap"

	"github.com/iotaledger/addrinfo/packages/metrics"
)

// DefaultSecurityLevel is the security level used by Derive.
const DefaultSecurityLevel = consts.SecurityLevelMedium

var defaultDeriver = MustNewDeriver()

// Derive derives the address at index from seed using the default security level.
func Derive(seed Seed, index uint64) (Address, error) {
	return defaultDeriver.Derive(seed, index)
}

// Deriver derives addresses for a fixed security level. It is safe for concurrent use.
type Deriver struct {
	securityLevel consts.SecurityLevel
	workers       int
	metrics       *metrics.DeriverMetrics
	log           *zap.SugaredLogger

	scratchPool sync.Pool
}

// NewDeriver creates a Deriver with the given options.
func NewDeriver(opts ...Option) (*Deriver, error) {
	d := &Deriver{
		securityLevel: DefaultSecurityLevel,
		log:           zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.securityLevel < consts.SecurityLevelLow || d.securityLevel > consts.SecurityLevelHigh {
		return nil, errors.Wrapf(ErrInvalidSecurityLevel, "got %d", d.securityLevel)
	}

	keyLength := int(d.securityLevel) * consts.KeyFragmentLength
	digestsLength := int(d.securityLevel) * consts.HashTrinarySize
	d.scratchPool.New = func() interface{} {
		return &scratch{
			sponge:  kerl.NewKerl(),
			seed:    make(trinary.Trits, consts.HashTrinarySize),
			key:     make(trinary.Trits, keyLength),
			digests: make(trinary.Trits, digestsLength),
		}
	}

	return d, nil
}

// MustNewDeriver creates a Deriver and panics if the options are invalid.
func MustNewDeriver(opts ...Option) *Deriver {
	d, err := NewDeriver(opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// SecurityLevel returns the number of key fragments of the private keys the addresses are derived from.
func (d *Deriver) SecurityLevel() consts.SecurityLevel {
	return d.securityLevel
}

// Derive derives the address at index from seed. The seed is not modified and the returned address does not share
// memory with it.
func (d *Deriver) Derive(seed Seed, index uint64) (Address, error) {
	if err := seed.Validate(); err != nil {
		d.metrics.ObserveFailure()
		return nil, err
	}

	start := time.Now()

	s := d.scratchPool.Get().(*scratch)
	defer d.scratchPool.Put(s)

	addr, err := s.derive(seed, index)
	if err != nil {
		d.metrics.ObserveFailure()
		return nil, errors.Wrapf(err, "failed to derive address %d of %s", index, seed)
	}

	d.metrics.ObserveDerive(time.Since(start))
	d.log.Debugw("Derived address", "seed", seed.Fingerprint(), "index", index, "securityLevel", d.securityLevel)

	return addr, nil
}

// scratch holds the buffers of a single derivation so that they can be reused across calls.
type scratch struct {
	sponge  *kerl.Kerl
	seed    trinary.Trits
	key     trinary.Trits
	digests trinary.Trits
}

func (s *scratch) derive(seed Seed, index uint64) (Address, error) {
	copy(s.seed, seed)
	addIndex(s.seed, index)
	// Kerl only absorbs blocks whose last trit is zero
	s.seed[consts.HashTrinarySize-1] = 0

	subseed, err := s.hash(s.seed)
	if err != nil {
		return nil, errors.Wrap(err, "subseed")
	}
	if err := s.squeezeKey(subseed); err != nil {
		return nil, errors.Wrap(err, "private key")
	}
	if err := s.keyDigests(); err != nil {
		return nil, errors.Wrap(err, "key digests")
	}

	addr, err := s.hash(s.digests)
	if err != nil {
		return nil, errors.Wrap(err, "address")
	}
	return Address(addr), nil
}

// hash absorbs input into a fresh sponge and squeezes a single hash.
func (s *scratch) hash(input trinary.Trits) (trinary.Trits, error) {
	s.sponge.Reset()
	if err := s.sponge.Absorb(input); err != nil {
		return nil, err
	}
	return s.sponge.Squeeze(consts.HashTrinarySize)
}

// squeezeKey fills the key buffer with the private key squeezed from subseed.
func (s *scratch) squeezeKey(subseed trinary.Trits) error {
	s.sponge.Reset()
	if err := s.sponge.Absorb(subseed); err != nil {
		return err
	}
	for offset := 0; offset < len(s.key); offset += consts.HashTrinarySize {
		segment, err := s.sponge.Squeeze(consts.HashTrinarySize)
		if err != nil {
			return err
		}
		copy(s.key[offset:], segment)
	}
	return nil
}

// keyDigests computes one digest per key fragment. The key buffer is hashed in place.
func (s *scratch) keyDigests() error {
	fragments := len(s.key) / consts.KeyFragmentLength
	for i := 0; i < fragments; i++ {
		fragment := s.key[i*consts.KeyFragmentLength : (i+1)*consts.KeyFragmentLength]

		for j := 0; j < consts.KeySegmentsPerFragment; j++ {
			segment := fragment[j*consts.HashTrinarySize : (j+1)*consts.HashTrinarySize]
			for round := 0; round < consts.KeySegmentHashRounds; round++ {
				hashed, err := s.hash(segment)
				if err != nil {
					return err
				}
				copy(segment, hashed)
			}
		}

		digest, err := s.hash(fragment)
		if err != nil {
			return err
		}
		copy(s.digests[i*consts.HashTrinarySize:], digest)
	}
	return nil
}
