package common

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const ZeroAddress string = "0x0000000000000000000000000000000000000000"

func GetERC20ABI() *abi.ABI {
	result, _ := abi.JSON(strings.NewReader(erc20abi))
	return &result
}

func GetENSRegistryABI() *abi.ABI {
	result, _ := abi.JSON(strings.NewReader(ensregistryabi))
	return &result
}

func GetENSResolverABI() *abi.ABI {
	result, _ := abi.JSON(strings.NewReader(ensresolverabi))
	return &result
}

func GetTokenMessengerABI() *abi.ABI {
	result, _ := abi.JSON(strings.NewReader(tokenmessengerabi))
	return &result
}

func PackERC20Data(function string, params ...interface{}) ([]byte, error) {
	return GetERC20ABI().Pack(function, params...)
}

func HexToAddress(hex string) common.Address {
	return common.HexToAddress(hex)
}

func HexToAddresses(hexes []string) []common.Address {
	result := []common.Address{}
	for _, h := range hexes {
		result = append(result, common.HexToAddress(h))
	}
	return result
}

func HexToHash(hex string) common.Hash {
	return common.HexToHash(hex)
}

// RawTxToHash returns the tx hash of a hex encoded signed tx without talking
// to any node.
func RawTxToHash(data string) string {
	bytes, err := hexutil.Decode(data)
	if err != nil {
		return ""
	}
	return crypto.Keccak256Hash(bytes).Hex()
}

// ShortenAddress renders an address in the usual truncated display form:
// the 0x prefix plus the first 6 hex chars, an ellipsis, then the last 4.
// Example: 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48 -> 0xA0b869...eB48
func ShortenAddress(address string) string {
	if len(address) <= 13 {
		return address
	}
	return address[:8] + "..." + address[len(address)-4:]
}

// IsZeroAddress reports whether address is absent or the zero address
// placeholder.
func IsZeroAddress(address string) bool {
	if address == "" {
		return true
	}
	return common.HexToAddress(address) == (common.Address{})
}

// Namehash implements the ENS namehash algorithm over a normalized name.
func Namehash(name string) common.Hash {
	node := common.Hash{}
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := crypto.Keccak256([]byte(labels[i]))
		node = crypto.Keccak256Hash(node.Bytes(), labelHash)
	}
	return node
}
