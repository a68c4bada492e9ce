package transfer

import (
	"fmt"
	"math/big"
)

// crossChainFeeRate is the flat protocol fee on cross chain transfers.
const crossChainFeeRate = "0.001"

// feePrecision matches the stable token's 6 decimal places.
const feePrecision = 6

// EstimateFee computes the protocol fee for a transfer amount given as a
// decimal string. Same chain transfers are free; cross chain transfers pay
// a flat 0.1%, rounded to 6 decimal places. Pure, no I/O.
func EstimateFee(amount string, isCrossChain bool) (string, error) {
	f, ok := new(big.Float).SetString(amount)
	if !ok {
		return "", fmt.Errorf("couldn't parse '%s' as a decimal amount", amount)
	}
	if f.Sign() < 0 {
		return "", fmt.Errorf("amount must not be negative, got %s", amount)
	}
	if !isCrossChain {
		return "0", nil
	}
	rate, _ := new(big.Float).SetString(crossChainFeeRate)
	fee := new(big.Float).Mul(f, rate)
	return fee.Text('f', feePrecision), nil
}
