package transfer

import (
	"context"
	"fmt"
	"math/big"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"

	"github.com/cubepay/cubepay/common"
	"github.com/cubepay/cubepay/networks"
	"github.com/cubepay/cubepay/wallet"
)

const (
	gasLimitNative     uint64 = 21000
	gasLimitERC20      uint64 = 100000
	gasLimitSettlement uint64 = 180000

	// defaultAttestationDelay stands in for the settlement attestation on
	// the destination chain, which is reported as a delay only.
	defaultAttestationDelay = 20 * time.Second
)

// Orchestrator drives one payment intent through the approval, submission
// and confirmation steps. It keeps no state across Execute calls: a failed
// transfer is retried by re-invoking Execute with a fresh intent, which
// gets a fresh transfer id.
type Orchestrator struct {
	registry         *networks.Registry
	signer           wallet.Signer
	backends         map[uint64]*Backend
	onStatus         StatusCallback
	attestationDelay time.Duration
}

type Option func(*Orchestrator)

// WithStatusCallback registers a callback invoked on every status
// transition.
func WithStatusCallback(cb StatusCallback) Option {
	return func(o *Orchestrator) {
		o.onStatus = cb
	}
}

// WithAttestationDelay overrides the modeled attestation delay for cross
// chain transfers.
func WithAttestationDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.attestationDelay = d
	}
}

func NewOrchestrator(registry *networks.Registry, signer wallet.Signer, backends map[uint64]*Backend, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:         registry,
		signer:           signer,
		backends:         backends,
		attestationDelay: defaultAttestationDelay,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) emit(transferID string, status Status) {
	if o.onStatus != nil {
		o.onStatus(transferID, status)
	}
}

// Execute runs the intent to a terminal state. The returned result always
// carries the transfer id; on failure its Status is StatusFailed with a
// classified Reason and the error explains the underlying cause.
func (o *Orchestrator) Execute(ctx context.Context, intent Intent) (*Result, error) {
	transferID := uuid.NewString()
	result := &Result{
		TransferID: transferID,
		Status:     StatusIdle,
		Fee:        "0",
	}
	o.emit(transferID, StatusIdle)

	fail := func(err error) (*Result, error) {
		result.Status = StatusFailed
		result.Reason = classify(err)
		o.emit(transferID, StatusFailed)
		return result, err
	}

	if err := intent.Validate(); err != nil {
		return fail(err)
	}

	sourceChain, err := o.registry.ByID(intent.SourceChainID)
	if err != nil {
		return fail(err)
	}
	backend, found := o.backends[intent.SourceChainID]
	if !found {
		return fail(fmt.Errorf("no backend for chain %d: %w", intent.SourceChainID, networks.ErrUnsupportedChain))
	}

	crossChain := intent.IsCrossChain()
	if crossChain {
		if intent.Token != TokenStable {
			return fail(fmt.Errorf("cross chain transfers settle in the stable token only"))
		}
		if !o.registry.IsSupported(intent.SourceChainID) {
			return fail(fmt.Errorf("source chain %d: %w", intent.SourceChainID, networks.ErrUnsupportedChain))
		}
		if !o.registry.IsSupported(intent.DestinationChainID) {
			return fail(fmt.Errorf("destination chain %d: %w", intent.DestinationChainID, networks.ErrUnsupportedChain))
		}
		fee, err := EstimateFee(intent.Amount, true)
		if err != nil {
			return fail(err)
		}
		result.Fee = fee
	}

	amountUnits, err := o.amountInUnits(sourceChain, intent)
	if err != nil {
		return fail(err)
	}

	if err := o.preflight(ctx, backend, sourceChain, intent, amountUnits); err != nil {
		return fail(err)
	}

	o.emit(transferID, StatusAwaitingSignature)

	nonce, err := backend.Reader.GetPendingNonce(ctx, intent.SourceAddress)
	if err != nil {
		return fail(fmt.Errorf("couldn't get nonce: %w: %w", ErrNetwork, err))
	}
	gasPrice, err := backend.Reader.SuggestedGasPrice(ctx)
	if err != nil {
		return fail(fmt.Errorf("couldn't get gas price: %w: %w", ErrNetwork, err))
	}
	chainID := new(big.Int).SetUint64(intent.SourceChainID)

	if crossChain {
		// the settlement contract must be allowed to pull the amount
		// before the burn-deposit itself can be submitted
		approveTx := o.buildApproveTx(sourceChain, nonce, gasPrice, amountUnits)
		signed, err := o.signer.SignTx(ctx, approveTx, chainID)
		if err != nil {
			return fail(fmt.Errorf("approval signature failed: %w", err))
		}
		o.emit(transferID, StatusApproving)
		hash, ok, err := backend.Submitter.BroadcastTx(ctx, signed)
		if err != nil || !ok {
			if err == nil {
				err = fmt.Errorf("no node accepted the tx")
			}
			return fail(fmt.Errorf("approval broadcast failed: %w: %w", ErrNetwork, err))
		}
		info := backend.Waiter.BlockingWait(ctx, hash)
		if info.Status != "done" {
			return fail(fmt.Errorf("approval tx %s ended with status '%s': %w", hash, info.Status, ErrNetwork))
		}
		nonce++
		o.emit(transferID, StatusAwaitingSignature)
	}

	transferTx, err := o.buildTransferTx(sourceChain, intent, nonce, gasPrice, amountUnits)
	if err != nil {
		return fail(err)
	}
	signed, err := o.signer.SignTx(ctx, transferTx, chainID)
	if err != nil {
		return fail(fmt.Errorf("transfer signature failed: %w", err))
	}

	o.emit(transferID, StatusBroadcasting)
	hash, ok, err := backend.Submitter.BroadcastTx(ctx, signed)
	if hash != "" {
		result.SourceTxHash = hash
	}
	if err != nil || !ok {
		if err == nil {
			err = fmt.Errorf("no node accepted the tx")
		}
		return fail(fmt.Errorf("transfer broadcast failed: %w: %w", ErrNetwork, err))
	}

	o.emit(transferID, StatusConfirming)
	info := backend.Waiter.BlockingWait(ctx, hash)
	switch info.Status {
	case "done":
	case "reverted":
		return fail(fmt.Errorf("transfer tx %s reverted: %w", hash, ErrNetwork))
	default:
		return fail(fmt.Errorf("transfer tx %s ended with status '%s': %w", hash, info.Status, ErrNetwork))
	}

	if crossChain {
		// destination settlement is attested by a third party; modeled
		// here as a delay, the destination tx hash stays unset
		select {
		case <-ctx.Done():
			return fail(fmt.Errorf("abandoned while waiting for attestation: %w", ctx.Err()))
		case <-time.After(o.attestationDelay):
		}
	}

	result.Status = StatusCompleted
	o.emit(transferID, StatusCompleted)
	return result, nil
}

func (o *Orchestrator) amountInUnits(chain *networks.Chain, intent Intent) (*big.Int, error) {
	switch intent.Token {
	case TokenStable:
		if common.IsZeroAddress(chain.StableTokenAddress) {
			return nil, fmt.Errorf("chain %d has no stable token: %w", chain.ChainID, networks.ErrUnsupportedChain)
		}
		return common.FloatStringToBig(intent.Amount, chain.StableTokenDecimals)
	default:
		return common.FloatStringToBig(intent.Amount, chain.NativeDecimals)
	}
}

// preflight compares the live balance against the requested amount before
// asking for any signature.
func (o *Orchestrator) preflight(ctx context.Context, backend *Backend, chain *networks.Chain, intent Intent, amountUnits *big.Int) error {
	var balance *big.Int
	var err error
	if intent.Token == TokenStable {
		balance, err = backend.Reader.ERC20Balance(ctx, chain.StableTokenAddress, intent.SourceAddress)
	} else {
		balance, err = backend.Reader.GetBalance(ctx, intent.SourceAddress)
	}
	if err != nil {
		return fmt.Errorf("couldn't check balance: %w: %w", ErrNetwork, err)
	}
	if balance.Cmp(amountUnits) < 0 {
		return fmt.Errorf("have %s units, need %s: %w", balance.String(), amountUnits.String(), ErrInsufficientFunds)
	}
	return nil
}

func (o *Orchestrator) buildApproveTx(chain *networks.Chain, nonce uint64, gasPrice *big.Int, amountUnits *big.Int) *types.Transaction {
	data, _ := common.PackERC20Data("approve", common.HexToAddress(chain.SettlementAddress), amountUnits)
	token := common.HexToAddress(chain.StableTokenAddress)
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimitERC20,
		To:       &token,
		Data:     data,
	})
}

func (o *Orchestrator) buildTransferTx(chain *networks.Chain, intent Intent, nonce uint64, gasPrice *big.Int, amountUnits *big.Int) (*types.Transaction, error) {
	if intent.IsCrossChain() {
		destChain, err := o.registry.ByID(intent.DestinationChainID)
		if err != nil {
			return nil, err
		}
		recipient := [32]byte(ethcommon.LeftPadBytes(common.HexToAddress(intent.DestinationAddress).Bytes(), 32))
		data, err := common.GetTokenMessengerABI().Pack("depositForBurn",
			amountUnits,
			destChain.SettlementDomain,
			recipient,
			common.HexToAddress(chain.StableTokenAddress),
		)
		if err != nil {
			return nil, err
		}
		settlement := common.HexToAddress(chain.SettlementAddress)
		return types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gasLimitSettlement,
			To:       &settlement,
			Data:     data,
		}), nil
	}

	if intent.Token == TokenStable {
		data, err := common.PackERC20Data("transfer", common.HexToAddress(intent.DestinationAddress), amountUnits)
		if err != nil {
			return nil, err
		}
		token := common.HexToAddress(chain.StableTokenAddress)
		return types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gasLimitERC20,
			To:       &token,
			Data:     data,
		}), nil
	}

	to := common.HexToAddress(intent.DestinationAddress)
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimitNative,
		To:       &to,
		Value:    amountUnits,
	}), nil
}
