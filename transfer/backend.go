package transfer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/cubepay/cubepay/broadcaster"
	"github.com/cubepay/cubepay/common"
	"github.com/cubepay/cubepay/monitor"
	"github.com/cubepay/cubepay/networks"
	"github.com/cubepay/cubepay/reader"
)

// ChainReader is the chain state the orchestrator needs before and during a
// transfer.
type ChainReader interface {
	GetBalance(ctx context.Context, address string) (*big.Int, error)
	ERC20Balance(ctx context.Context, tokenAddr, owner string) (*big.Int, error)
	GetPendingNonce(ctx context.Context, address string) (uint64, error)
	SuggestedGasPrice(ctx context.Context) (*big.Int, error)
}

// Submitter pushes a signed tx to the chain and returns its hash.
type Submitter interface {
	BroadcastTx(ctx context.Context, tx *types.Transaction) (string, bool, error)
}

// Waiter blocks until a tx settles or is declared lost.
type Waiter interface {
	BlockingWait(ctx context.Context, txHash string) common.TxInfo
}

// Backend bundles the per-chain infrastructure for one chain.
type Backend struct {
	Reader    ChainReader
	Submitter Submitter
	Waiter    Waiter
}

// NewChainBackend wires a production backend for chain from its configured
// RPC nodes.
func NewChainBackend(chain *networks.Chain) *Backend {
	r := reader.NewEthReader(chain.ChainID, chain.Nodes())
	return &Backend{
		Reader:    r,
		Submitter: broadcaster.NewBroadcaster(chain.Nodes()),
		Waiter:    monitor.NewTxMonitor(r),
	}
}
