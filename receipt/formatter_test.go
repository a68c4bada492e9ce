package receipt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cubepay/cubepay/networks"
	"github.com/cubepay/cubepay/receipt"
	"github.com/cubepay/cubepay/transfer"
)

var testIntent = transfer.Intent{
	SourceChainID:      1,
	DestinationChainID: 1,
	Amount:             "1234.5",
	Token:              transfer.TokenStable,
	SourceAddress:      "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
	DestinationAddress: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
}

func TestFormatCompletedTransfer(t *testing.T) {
	f := receipt.NewFormatter(networks.NewRegistry())
	result := &transfer.Result{
		TransferID:   "t-1",
		Status:       transfer.StatusCompleted,
		SourceTxHash: "0xdeadbeef",
		Fee:          "0",
	}

	r := f.Format(result, testIntent)
	assert.Equal(t, "t-1", r.TransferID)
	assert.Equal(t, "completed", r.Status)
	assert.Equal(t, "0xA0b869...eB48", r.From)
	assert.Equal(t, "0x833589...2913", r.To)
	assert.Equal(t, "1,234.5", r.AmountLabel)
	assert.Equal(t, "0", r.FeeLabel)
	assert.Equal(t, "USDC", r.TokenSymbol)
	assert.Equal(t, "mainnet", r.SourceChain)
	assert.False(t, r.CrossChain)
	assert.True(t, r.ExplorerKnown)
	assert.Equal(t, "https://etherscan.io/tx/0xdeadbeef", r.ExplorerTxURL)
}

func TestFormatUnknownChainHasNoExplorerLink(t *testing.T) {
	f := receipt.NewFormatter(networks.NewRegistry())
	intent := testIntent
	intent.SourceChainID = 424242
	intent.DestinationChainID = 424242
	result := &transfer.Result{
		TransferID:   "t-2",
		Status:       transfer.StatusCompleted,
		SourceTxHash: "0xdeadbeef",
		Fee:          "0",
	}

	r := f.Format(result, intent)
	assert.Equal(t, receipt.UnknownChainLabel, r.SourceChain)
	assert.False(t, r.ExplorerKnown)
	assert.Empty(t, r.ExplorerTxURL)
	assert.Empty(t, r.TokenSymbol)
}

func TestFormatCrossChainFee(t *testing.T) {
	f := receipt.NewFormatter(networks.NewRegistry())
	intent := testIntent
	intent.DestinationChainID = 8453
	result := &transfer.Result{
		TransferID: "t-3",
		Status:     transfer.StatusFailed,
		Fee:        "1.234500",
	}

	r := f.Format(result, intent)
	assert.True(t, r.CrossChain)
	assert.Equal(t, "base", r.DestChain)
	assert.Equal(t, "1.2345", r.FeeLabel)
	assert.False(t, r.ExplorerKnown, "no tx hash, no link")
}

func TestFormatNativeTokenSymbol(t *testing.T) {
	f := receipt.NewFormatter(networks.NewRegistry())
	intent := testIntent
	intent.Token = transfer.TokenNative
	r := f.Format(&transfer.Result{Status: transfer.StatusCompleted, Fee: "0"}, intent)
	assert.Equal(t, "ETH", r.TokenSymbol)
}
