package address

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	legacy "github.com/iotaledger/iota.go/address"
	"github.com/iotaledger/iota.go/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_WithChecksum(t *testing.T) {
	seed := MustParseSeed(testSeedTrytes)

	expected, err := legacy.GenerateAddress(testSeedTrytes, 3, consts.SecurityLevelMedium, true)
	require.NoError(t, err)

	addr, err := Derive(seed, 3)
	require.NoError(t, err)

	withChecksum, err := addr.WithChecksum()
	require.NoError(t, err)
	assert.Len(t, withChecksum, consts.HashTrytesSize+ChecksumTrytesSize)
	assert.Equal(t, string(expected), string(withChecksum))

	require.NoError(t, ValidateChecksum(withChecksum))
}

func TestParseAddress(t *testing.T) {
	addr, err := Derive(MustParseSeed(testSeedTrytes), 0)
	require.NoError(t, err)

	withChecksum, err := addr.WithChecksum()
	require.NoError(t, err)

	parsed, err := ParseAddress(withChecksum)
	require.NoError(t, err)
	assert.True(t, addr.Equal(parsed))

	parsed, err = ParseAddress(addr.String())
	require.NoError(t, err)
	assert.True(t, addr.Equal(parsed))
}

func TestParseAddress_Invalid(t *testing.T) {
	addr, err := Derive(zeroSeed, 0)
	require.NoError(t, err)
	withChecksum, err := addr.WithChecksum()
	require.NoError(t, err)

	tampered := []byte(withChecksum)
	if tampered[len(tampered)-1] == 'A' {
		tampered[len(tampered)-1] = 'B'
	} else {
		tampered[len(tampered)-1] = 'A'
	}
	_, err = ParseAddress(string(tampered))
	assert.True(t, errors.Is(err, ErrInvalidChecksum))

	_, err = ParseAddress("ABC")
	assert.True(t, errors.Is(err, ErrInvalidAddressLength))

	_, err = ParseAddress(string(make([]byte, consts.HashTrytesSize)))
	assert.True(t, errors.Is(err, ErrInvalidDigit))
}

func TestAddress_Invalid(t *testing.T) {
	_, err := Checksum(Address{0, 1})
	assert.True(t, errors.Is(err, ErrInvalidAddressLength))

	assert.Equal(t, "Address(invalid)", Address{2}.String())
	assert.False(t, Address{0}.Equal(Address{0, 0}))
}

func TestAddress_NonZeroLastTrit(t *testing.T) {
	// M is the tryte 1,1,1
	trytes := strings.Repeat("9", consts.HashTrytesSize-1) + "M"

	_, err := ParseAddress(trytes)
	assert.True(t, errors.Is(err, ErrInvalidDigit), err)

	_, err = ParseAddress(trytes + strings.Repeat("9", ChecksumTrytesSize))
	assert.True(t, errors.Is(err, ErrInvalidDigit), err)

	addr := make(Address, consts.HashTrinarySize)
	addr[consts.HashTrinarySize-1] = -1
	_, err = Checksum(addr)
	assert.True(t, errors.Is(err, ErrInvalidDigit), err)
	assert.Equal(t, "Address(invalid)", addr.String())

	// any other trit is fine
	addr[consts.HashTrinarySize-1] = 0
	addr[consts.HashTrinarySize-2] = 1
	_, err = Checksum(addr)
	assert.NoError(t, err)
}
