package address

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/iota.go/consts"
	"github.com/iotaledger/iota.go/trinary"
)

// validateTrits checks that trits holds exactly one hash worth of valid trits.
func validateTrits(trits trinary.Trits, lengthErr error) error {
	if len(trits) != consts.HashTrinarySize {
		return errors.Wrapf(lengthErr, "got %d trits, want %d", len(trits), consts.HashTrinarySize)
	}
	for i, trit := range trits {
		if !trinary.ValidTrit(trit) {
			return errors.Wrapf(ErrInvalidDigit, "trit #%d has value %d", i, trit)
		}
	}
	return nil
}

// addIndex adds index to trits in balanced ternary, little endian. A carry out of the last trit is dropped.
func addIndex(trits trinary.Trits, index uint64) {
	var carry int8
	for i := 0; i < len(trits) && (index != 0 || carry != 0); i++ {
		var digit int8
		switch index % 3 {
		case 0:
			index /= 3
		case 1:
			digit = 1
			index /= 3
		case 2:
			digit = -1
			index = index/3 + 1
		}
		trits[i], carry = fullAdd(trits[i], digit, carry)
	}
}

func fullAdd(a, b, carry int8) (sum int8, carryOut int8) {
	sum = a + b + carry
	switch {
	case sum > 1:
		return sum - 3, 1
	case sum < -1:
		return sum + 3, -1
	default:
		return sum, 0
	}
}
