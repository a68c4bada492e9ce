package transfer_test

import (
	"context"
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubepay/cubepay/common"
	"github.com/cubepay/cubepay/networks"
	"github.com/cubepay/cubepay/transfer"
	"github.com/cubepay/cubepay/wallet"
)

type fakeReader struct {
	nativeBalance *big.Int
	tokenBalance  *big.Int
}

func (f *fakeReader) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	return f.nativeBalance, nil
}

func (f *fakeReader) ERC20Balance(ctx context.Context, tokenAddr, owner string) (*big.Int, error) {
	return f.tokenBalance, nil
}

func (f *fakeReader) GetPendingNonce(ctx context.Context, address string) (uint64, error) {
	return 7, nil
}

func (f *fakeReader) SuggestedGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1000000000), nil
}

type fakeSubmitter struct {
	calls int
}

func (f *fakeSubmitter) BroadcastTx(ctx context.Context, tx *types.Transaction) (string, bool, error) {
	f.calls++
	return tx.Hash().Hex(), true, nil
}

type fakeWaiter struct {
	status string
}

func (f *fakeWaiter) BlockingWait(ctx context.Context, txHash string) common.TxInfo {
	return common.TxInfo{Status: f.status}
}

// rejectingSigner declines every signature request.
type rejectingSigner struct{}

func (rejectingSigner) Address() ethcommon.Address {
	return ethcommon.HexToAddress("0x00000000000000000000000000000000000000B0")
}

func (rejectingSigner) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return nil, wallet.ErrRejected
}

func newKeySigner(t *testing.T) *wallet.KeySigner {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return wallet.NewKeySigner(key)
}

func usdc(amount int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(amount), big.NewInt(1000000))
}

func newTestBackend(reader *fakeReader) (*transfer.Backend, *fakeSubmitter) {
	submitter := &fakeSubmitter{}
	return &transfer.Backend{
		Reader:    reader,
		Submitter: submitter,
		Waiter:    &fakeWaiter{status: "done"},
	}, submitter
}

func TestExecuteSameChainStableTransfer(t *testing.T) {
	registry := networks.NewRegistry()
	signer := newKeySigner(t)
	backend, submitter := newTestBackend(&fakeReader{tokenBalance: usdc(100)})

	statuses := []transfer.Status{}
	o := transfer.NewOrchestrator(registry, signer,
		map[uint64]*transfer.Backend{11155111: backend},
		transfer.WithStatusCallback(func(transferID string, status transfer.Status) {
			assert.NotEmpty(t, transferID)
			statuses = append(statuses, status)
		}),
	)

	result, err := o.Execute(context.Background(), transfer.Intent{
		SourceChainID:      11155111,
		DestinationChainID: 11155111,
		Amount:             "10",
		Token:              transfer.TokenStable,
		SourceAddress:      signer.Address().Hex(),
		DestinationAddress: "0x00000000000000000000000000000000000000C1",
	})
	require.NoError(t, err)

	assert.Equal(t, transfer.StatusCompleted, result.Status)
	assert.Equal(t, "0", result.Fee)
	assert.NotEmpty(t, result.TransferID)
	assert.NotEmpty(t, result.SourceTxHash)
	assert.Empty(t, result.DestinationTxHash)
	assert.Equal(t, 1, submitter.calls)
	assert.Equal(t, []transfer.Status{
		transfer.StatusIdle,
		transfer.StatusAwaitingSignature,
		transfer.StatusBroadcasting,
		transfer.StatusConfirming,
		transfer.StatusCompleted,
	}, statuses)
}

func TestExecuteCrossChainHappyPath(t *testing.T) {
	registry := networks.NewRegistry()
	signer := newKeySigner(t)
	backend, submitter := newTestBackend(&fakeReader{tokenBalance: usdc(100)})

	statuses := []transfer.Status{}
	o := transfer.NewOrchestrator(registry, signer,
		map[uint64]*transfer.Backend{11155111: backend},
		transfer.WithStatusCallback(func(transferID string, status transfer.Status) {
			statuses = append(statuses, status)
		}),
		transfer.WithAttestationDelay(0),
	)

	result, err := o.Execute(context.Background(), transfer.Intent{
		SourceChainID:      11155111,
		DestinationChainID: 8453,
		Amount:             "10",
		Token:              transfer.TokenStable,
		SourceAddress:      signer.Address().Hex(),
		DestinationAddress: "0x00000000000000000000000000000000000000C1",
	})
	require.NoError(t, err)

	assert.Equal(t, transfer.StatusCompleted, result.Status)
	assert.Equal(t, "0.010000", result.Fee)
	assert.Empty(t, result.DestinationTxHash, "attestation is modeled as a delay only")
	assert.Equal(t, 2, submitter.calls, "approval then burn-deposit")
	assert.Equal(t, []transfer.Status{
		transfer.StatusIdle,
		transfer.StatusAwaitingSignature,
		transfer.StatusApproving,
		transfer.StatusAwaitingSignature,
		transfer.StatusBroadcasting,
		transfer.StatusConfirming,
		transfer.StatusCompleted,
	}, statuses)
}

func TestExecuteCrossChainApprovalRejected(t *testing.T) {
	registry := networks.NewRegistry()
	backend, submitter := newTestBackend(&fakeReader{tokenBalance: usdc(100)})

	o := transfer.NewOrchestrator(registry, rejectingSigner{},
		map[uint64]*transfer.Backend{11155111: backend})

	result, err := o.Execute(context.Background(), transfer.Intent{
		SourceChainID:      11155111,
		DestinationChainID: 8453,
		Amount:             "10",
		Token:              transfer.TokenStable,
		SourceAddress:      rejectingSigner{}.Address().Hex(),
		DestinationAddress: "0x00000000000000000000000000000000000000C1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, wallet.ErrRejected)

	assert.Equal(t, transfer.StatusFailed, result.Status)
	assert.Equal(t, transfer.ReasonUserRejected, result.Reason)
	assert.Equal(t, 0, submitter.calls, "nothing may be submitted after a rejected approval")
}

func TestExecuteInsufficientFunds(t *testing.T) {
	registry := networks.NewRegistry()
	signer := newKeySigner(t)
	backend, submitter := newTestBackend(&fakeReader{tokenBalance: usdc(1)})

	o := transfer.NewOrchestrator(registry, signer,
		map[uint64]*transfer.Backend{11155111: backend})

	result, err := o.Execute(context.Background(), transfer.Intent{
		SourceChainID:      11155111,
		DestinationChainID: 11155111,
		Amount:             "10",
		Token:              transfer.TokenStable,
		SourceAddress:      signer.Address().Hex(),
		DestinationAddress: "0x00000000000000000000000000000000000000C1",
	})
	require.Error(t, err)
	assert.Equal(t, transfer.StatusFailed, result.Status)
	assert.Equal(t, transfer.ReasonInsufficientFunds, result.Reason)
	assert.Equal(t, 0, submitter.calls)
}

func TestExecuteRevertedTxIsNetworkError(t *testing.T) {
	registry := networks.NewRegistry()
	signer := newKeySigner(t)
	backend, _ := newTestBackend(&fakeReader{tokenBalance: usdc(100)})
	backend.Waiter = &fakeWaiter{status: "reverted"}

	o := transfer.NewOrchestrator(registry, signer,
		map[uint64]*transfer.Backend{11155111: backend})

	result, err := o.Execute(context.Background(), transfer.Intent{
		SourceChainID:      11155111,
		DestinationChainID: 11155111,
		Amount:             "10",
		Token:              transfer.TokenStable,
		SourceAddress:      signer.Address().Hex(),
		DestinationAddress: "0x00000000000000000000000000000000000000C1",
	})
	require.Error(t, err)
	assert.Equal(t, transfer.ReasonNetworkError, result.Reason)
	assert.NotEmpty(t, result.SourceTxHash, "hash is known even when mining fails")
}

func TestExecuteCrossChainToUnsupportedChain(t *testing.T) {
	registry := networks.NewRegistry()
	signer := newKeySigner(t)
	backend, submitter := newTestBackend(&fakeReader{tokenBalance: usdc(100)})

	o := transfer.NewOrchestrator(registry, signer,
		map[uint64]*transfer.Backend{11155111: backend})

	// 296 is registered but has no stable token deployment
	result, err := o.Execute(context.Background(), transfer.Intent{
		SourceChainID:      11155111,
		DestinationChainID: 296,
		Amount:             "10",
		Token:              transfer.TokenStable,
		SourceAddress:      signer.Address().Hex(),
		DestinationAddress: "0x00000000000000000000000000000000000000C1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, networks.ErrUnsupportedChain)
	assert.Equal(t, transfer.StatusFailed, result.Status)
	assert.Equal(t, 0, submitter.calls)
}

func TestFreshTransferIDPerAttempt(t *testing.T) {
	registry := networks.NewRegistry()
	signer := newKeySigner(t)
	backend, _ := newTestBackend(&fakeReader{tokenBalance: usdc(100)})

	o := transfer.NewOrchestrator(registry, signer,
		map[uint64]*transfer.Backend{11155111: backend})

	intent := transfer.Intent{
		SourceChainID:      11155111,
		DestinationChainID: 11155111,
		Amount:             "10",
		Token:              transfer.TokenStable,
		SourceAddress:      signer.Address().Hex(),
		DestinationAddress: "0x00000000000000000000000000000000000000C1",
	}
	first, err := o.Execute(context.Background(), intent)
	require.NoError(t, err)
	second, err := o.Execute(context.Background(), intent)
	require.NoError(t, err)
	assert.NotEqual(t, first.TransferID, second.TransferID)
}
