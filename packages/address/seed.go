package address

import (
	"crypto/rand"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/iota.go/consts"
	"github.com/iotaledger/iota.go/trinary"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// fingerprintSize is the number of hash bytes kept in a seed fingerprint.
const fingerprintSize = 8

// Seed is the secret from which all addresses of an identity are derived. It consists of exactly 243 trits.
type Seed trinary.Trits

// ParseSeed parses a seed from its 81 tryte representation.
func ParseSeed(trytes trinary.Trytes) (Seed, error) {
	if len(trytes) != consts.HashTrytesSize {
		return nil, errors.Wrapf(ErrInvalidSeedLength, "got %d trytes, want %d", len(trytes), consts.HashTrytesSize)
	}
	trits, err := trinary.TrytesToTrits(trytes)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidDigit, "failed to parse seed trytes: %s", err)
	}
	return trits, nil
}

// MustParseSeed parses a seed and panics if the trytes are invalid.
func MustParseSeed(trytes trinary.Trytes) Seed {
	seed, err := ParseSeed(trytes)
	if err != nil {
		panic(err)
	}
	return seed
}

// RandomSeed generates a new seed. It reads from crypto/rand unless a different source is given.
func RandomSeed(source ...io.Reader) (Seed, error) {
	reader := rand.Reader
	if len(source) > 0 {
		reader = source[0]
	}

	alphabetLength := len(consts.TryteAlphabet)
	// largest multiple of the alphabet length that fits into a byte, to avoid a modulo bias
	limit := byte(256 / alphabetLength * alphabetLength)

	trytes := make([]byte, 0, consts.HashTrytesSize)
	buf := make([]byte, consts.HashTrytesSize)
	for len(trytes) < consts.HashTrytesSize {
		if _, err := io.ReadFull(reader, buf); err != nil {
			return nil, errors.Wrap(err, "failed to read random bytes")
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			trytes = append(trytes, consts.TryteAlphabet[int(b)%alphabetLength])
			if len(trytes) == consts.HashTrytesSize {
				break
			}
		}
	}

	return ParseSeed(string(trytes))
}

// Validate checks the length and the digits of the seed.
func (s Seed) Validate() error {
	return validateTrits(trinary.Trits(s), ErrInvalidSeedLength)
}

// Trytes returns the tryte representation of the seed.
func (s Seed) Trytes() (trinary.Trytes, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	return trinary.MustTritsToTrytes(trinary.Trits(s)), nil
}

// Fingerprint returns a short base58 encoded blake2b hash of the seed that identifies it in logs without revealing it.
func (s Seed) Fingerprint() string {
	raw := make([]byte, len(s))
	for i, trit := range s {
		raw[i] = byte(trit)
	}
	sum := blake2b.Sum256(raw)
	return base58.Encode(sum[:fingerprintSize])
}

// String returns the fingerprint of the seed, never the seed itself.
func (s Seed) String() string {
	return "Seed(" + s.Fingerprint() + ")"
}
