package address

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidSeedLength is returned when a seed does not consist of exactly 243 trits.
	ErrInvalidSeedLength = errors.New("invalid seed length")
	// ErrInvalidAddressLength is returned when an address does not consist of exactly 243 trits.
	ErrInvalidAddressLength = errors.New("invalid address length")
	// ErrInvalidDigit is returned when a trit is outside of {-1, 0, 1} or a tryte is outside of the tryte alphabet.
	ErrInvalidDigit = errors.New("invalid ternary digit")
	// ErrInvalidSecurityLevel is returned for security levels other than 1, 2 or 3.
	ErrInvalidSecurityLevel = errors.New("invalid security level")
	// ErrInvalidChecksum is returned when the checksum of an address does not match.
	ErrInvalidChecksum = errors.New("invalid checksum")
)
