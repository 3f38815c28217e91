package address

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/iota.go/consts"
	"github.com/iotaledger/iota.go/kerl"
	"github.com/iotaledger/iota.go/trinary"
)

// ChecksumTrytesSize is the number of trytes appended to an address as checksum.
const ChecksumTrytesSize = 9

// Address is a 243 trit address derived from a seed and a key index.
type Address trinary.Trits

// ParseAddress parses an address from 81 trytes or from 90 trytes including the checksum.
func ParseAddress(trytes trinary.Trytes) (Address, error) {
	switch len(trytes) {
	case consts.HashTrytesSize:
	case consts.HashTrytesSize + ChecksumTrytesSize:
		if err := ValidateChecksum(trytes); err != nil {
			return nil, err
		}
		trytes = trytes[:consts.HashTrytesSize]
	default:
		return nil, errors.Wrapf(ErrInvalidAddressLength, "got %d trytes", len(trytes))
	}

	trits, err := trinary.TrytesToTrits(trytes)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidDigit, "failed to parse address trytes: %s", err)
	}
	addr := Address(trits)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// Validate checks the length and the digits of the address. Addresses are Kerl hashes, so their last trit is zero.
func (a Address) Validate() error {
	if err := validateTrits(trinary.Trits(a), ErrInvalidAddressLength); err != nil {
		return err
	}
	if last := a[consts.HashTrinarySize-1]; last != 0 {
		return errors.Wrapf(ErrInvalidDigit, "last trit of an address must be zero, got %d", last)
	}
	return nil
}

// Trytes returns the 81 tryte representation of the address.
func (a Address) Trytes() (trinary.Trytes, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	return trinary.MustTritsToTrytes(trinary.Trits(a)), nil
}

// WithChecksum returns the 90 tryte representation of the address.
func (a Address) WithChecksum() (trinary.Trytes, error) {
	checksum, err := Checksum(a)
	if err != nil {
		return "", err
	}
	return trinary.MustTritsToTrytes(trinary.Trits(a)) + checksum, nil
}

// String returns the trytes of the address or a placeholder if it is malformed.
func (a Address) String() string {
	trytes, err := a.Trytes()
	if err != nil {
		return "Address(invalid)"
	}
	return trytes
}

// Equal reports whether both addresses hold the same trits.
func (a Address) Equal(other Address) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if a[i] != other[i] {
			return false
		}
	}
	return true
}

// Checksum computes the 9 tryte checksum of the address: the last trytes of its Kerl hash.
func Checksum(addr Address) (trinary.Trytes, error) {
	if err := addr.Validate(); err != nil {
		return "", err
	}

	h := kerl.NewKerl()
	if err := h.Absorb(trinary.Trits(addr)); err != nil {
		return "", errors.Wrap(err, "failed to absorb address")
	}
	hash, err := h.Squeeze(consts.HashTrinarySize)
	if err != nil {
		return "", errors.Wrap(err, "failed to squeeze checksum")
	}

	hashTrytes := trinary.MustTritsToTrytes(hash)
	return hashTrytes[consts.HashTrytesSize-ChecksumTrytesSize:], nil
}

// ValidateChecksum checks a 90 tryte address against its checksum.
func ValidateChecksum(trytes trinary.Trytes) error {
	if len(trytes) != consts.HashTrytesSize+ChecksumTrytesSize {
		return errors.Wrapf(ErrInvalidAddressLength, "got %d trytes, want %d", len(trytes), consts.HashTrytesSize+ChecksumTrytesSize)
	}

	trits, err := trinary.TrytesToTrits(trytes[:consts.HashTrytesSize])
	if err != nil {
		return errors.Wrapf(ErrInvalidDigit, "failed to parse address trytes: %s", err)
	}
	expected, err := Checksum(trits)
	if err != nil {
		return err
	}
	if expected != trytes[consts.HashTrytesSize:] {
		return errors.Wrapf(ErrInvalidChecksum, "expected %s", expected)
	}
	return nil
}
