package core

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToWei(t *testing.T) {
	testCases := []struct {
		name   string
		amount string
		want   string
	}{
		{"one", "1", "1000000000000000000"},
		{"fraction", "0.5", "500000000000000000"},
		{"small", "0.000000000000000001", "1"},
		{"beyond precision truncates", "0.0000000000000000015", "1"},
		{"zero", "0", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToWei(decimal.RequireFromString(tc.amount))
			if got.String() != tc.want {
				t.Errorf("ToWei(%s): got %s, want %s", tc.amount, got, tc.want)
			}
		})
	}
}

func TestFromWei(t *testing.T) {
	wei, _ := new(big.Int).SetString("1234500000000000000", 10)

	got := FromWei(wei)
	if !got.Equal(decimal.RequireFromString("1.2345")) {
		t.Errorf("FromWei: got %s", got)
	}
}

func TestRoundTrip(t *testing.T) {
	amount := decimal.RequireFromString("12.000000000000000345")

	if got := FromWei(ToWei(amount)); !got.Equal(amount) {
		t.Errorf("round trip: got %s, want %s", got, amount)
	}
}
