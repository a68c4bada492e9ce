package common

import (
	"fmt"
	"math/big"
	"strings"
)

// FloatStringToBig converts a decimal string amount to a big int with the
// given number of decimals.
// Example:
// - FloatStringToBig("1.5", 6) = 1500000
// - FloatStringToBig("10", 6) = 10000000
func FloatStringToBig(value string, decimal uint64) (*big.Int, error) {
	f, success := new(big.Float).SetString(value)
	if !success {
		return nil, fmt.Errorf("couldn't parse '%s' as a decimal number", value)
	}
	power := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(decimal)), nil,
	))
	f.Mul(f, power)
	res, _ := f.Int(nil)
	return res, nil
}

// BigToFloatString renders a big int amount with the given number of decimals
// as a decimal string with trailing zeros trimmed.
// Example:
// - BigToFloatString(1500000, 6) = "1.5"
// - BigToFloatString(1000000, 6) = "1"
func BigToFloatString(value *big.Int, decimal uint64) string {
	f := new(big.Float).SetInt(value)
	power := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(decimal)), nil,
	))
	res := new(big.Float).Quo(f, power)
	str := strings.TrimRight(res.Text('f', int(decimal)), "0")
	return strings.TrimRight(str, ".")
}

// BigToFloat converts a big int to float according to its number of decimal
// digits.
// Example:
// - BigToFloat(1100, 3) = 1.1
// - BigToFloat(1100, 2) = 11
func BigToFloat(b *big.Int, decimal uint64) float64 {
	f := new(big.Float).SetInt(b)
	power := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(decimal)), nil,
	))
	res := new(big.Float).Quo(f, power)
	result, _ := res.Float64()
	return result
}

// GweiToWei converts Gwei as a float to Wei as a big int.
func GweiToWei(n float64) *big.Int {
	f := big.NewFloat(n)
	power := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(9), nil,
	))
	f.Mul(f, power)
	res, _ := f.Int(nil)
	return res
}

// ParsePositiveAmount parses a decimal string and requires it to be strictly
// positive.
func ParsePositiveAmount(value string) (*big.Float, error) {
	f, success := new(big.Float).SetString(value)
	if !success {
		return nil, fmt.Errorf("couldn't parse '%s' as a decimal number", value)
	}
	if f.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %s", value)
	}
	return f, nil
}
