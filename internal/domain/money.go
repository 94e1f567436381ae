package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var minorFactor = decimal.NewFromInt(100)

// ParseAmount converts a decimal amount string ("200.00") into minor units.
// Amounts must be strictly positive and representable in two decimal places;
// binary floating point never enters the money path.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return 0, ErrInvalidAmount
	}

	minor := d.Mul(minorFactor)
	if !minor.IsInteger() {
		return 0, ErrInvalidAmount
	}

	bi := minor.BigInt()
	if !bi.IsInt64() {
		return 0, ErrInvalidAmount
	}
	return bi.Int64(), nil
}

// FormatAmount renders minor units as a fixed two-decimal string.
func FormatAmount(minor int64) string {
	return decimal.NewFromBigInt(big.NewInt(minor), -2).StringFixed(2)
}
