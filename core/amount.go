package core

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the precision of the ledger's native unit.
const NativeDecimals = 18

// ToWei converts a native-unit amount to its integer wei representation.
func ToWei(amount decimal.Decimal) *big.Int {
	return amount.Shift(NativeDecimals).Truncate(0).BigInt()
}

// FromWei converts an integer wei value back to the native unit.
func FromWei(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, -NativeDecimals)
}
