package reader

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/cubepay/cubepay/common"
)

// EthReader reads chain state through every node it manages at once and
// returns the first successful answer. Only when all of the nodes fail does
// it return an error, joining the per-node failures.
type EthReader struct {
	chainID uint64
	nodes   map[string]*OneNodeReader
}

func NewEthReader(chainID uint64, nodes map[string]string) *EthReader {
	ns := map[string]*OneNodeReader{}
	for name, url := range nodes {
		ns[name] = NewOneNodeReader(name, url)
	}
	return &EthReader{
		chainID: chainID,
		nodes:   ns,
	}
}

func (er *EthReader) ChainID() uint64 {
	return er.chainID
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type nodeResult[T any] struct {
	Value T
	Error error
}

// firstSuccess fans the query out to all nodes and takes the first success.
func firstSuccess[T any](er *EthReader, query func(n *OneNodeReader) (T, error)) (T, error) {
	resCh := make(chan nodeResult[T], len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			value, err := query(n)
			resCh <- nodeResult[T]{
				Value: value,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	var zero T
	return zero, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	return firstSuccess(er, func(n *OneNodeReader) (*big.Int, error) {
		return n.GetBalance(ctx, address)
	})
}

func (er *EthReader) GetMinedNonce(ctx context.Context, address string) (uint64, error) {
	return firstSuccess(er, func(n *OneNodeReader) (uint64, error) {
		return n.GetMinedNonce(ctx, address)
	})
}

func (er *EthReader) GetPendingNonce(ctx context.Context, address string) (uint64, error) {
	return firstSuccess(er, func(n *OneNodeReader) (uint64, error) {
		return n.GetPendingNonce(ctx, address)
	})
}

func (er *EthReader) SuggestedGasPrice(ctx context.Context) (*big.Int, error) {
	return firstSuccess(er, func(n *OneNodeReader) (*big.Int, error) {
		return n.SuggestedGasPrice(ctx)
	})
}

func (er *EthReader) EstimateGas(ctx context.Context, from, to string, value *big.Int, data []byte) (uint64, error) {
	return firstSuccess(er, func(n *OneNodeReader) (uint64, error) {
		return n.EstimateGas(ctx, from, to, value, data)
	})
}

func (er *EthReader) HeaderByNumber(ctx context.Context, number int64) (*types.Header, error) {
	return firstSuccess(er, func(n *OneNodeReader) (*types.Header, error) {
		return n.HeaderByNumber(ctx, number)
	})
}

// ReadContractToBytes executes an eth_call against the contract on all
// nodes, first success wins.
func (er *EthReader) ReadContractToBytes(ctx context.Context, caddr string, a *abi.ABI, method string, args ...interface{}) ([]byte, error) {
	return firstSuccess(er, func(n *OneNodeReader) ([]byte, error) {
		return n.ReadContractToBytes(ctx, caddr, a, method, args...)
	})
}

// ReadContract executes an eth_call and unpacks the single return value
// into result.
func (er *EthReader) ReadContract(ctx context.Context, result interface{}, caddr string, a *abi.ABI, method string, args ...interface{}) error {
	responseBytes, err := er.ReadContractToBytes(ctx, caddr, a, method, args...)
	if err != nil {
		return err
	}
	return a.UnpackIntoInterface(result, method, responseBytes)
}

func (er *EthReader) ERC20Balance(ctx context.Context, tokenAddr, owner string) (*big.Int, error) {
	result := big.NewInt(0)
	err := er.ReadContract(ctx, &result, tokenAddr, common.GetERC20ABI(), "balanceOf", common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (er *EthReader) ERC20Decimals(ctx context.Context, tokenAddr string) (uint64, error) {
	var result uint8
	err := er.ReadContract(ctx, &result, tokenAddr, common.GetERC20ABI(), "decimals")
	if err != nil {
		return 0, err
	}
	return uint64(result), nil
}

func (er *EthReader) ERC20Allowance(ctx context.Context, tokenAddr, owner, spender string) (*big.Int, error) {
	result := big.NewInt(0)
	err := er.ReadContract(ctx, &result, tokenAddr, common.GetERC20ABI(), "allowance",
		common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TxInfoFromHash classifies the current state of a tx as one of "notfound",
// "pending", "reverted" or "done".
func (er *EthReader) TxInfoFromHash(ctx context.Context, txHash string) (common.TxInfo, error) {
	tx, isPending, err := er.TransactionByHash(ctx, txHash)
	if err != nil && !errors.Is(err, ethereum.NotFound) {
		return common.TxInfo{Status: "error"}, err
	}
	if tx == nil {
		return common.TxInfo{Status: "notfound"}, nil
	}
	if isPending {
		return common.TxInfo{Status: "pending", Tx: tx}, nil
	}
	receipt, err := er.TransactionReceipt(ctx, txHash)
	if err != nil || receipt == nil {
		return common.TxInfo{Status: "pending", Tx: tx}, nil
	}
	if receipt.Status == 1 {
		return common.TxInfo{Status: "done", Tx: tx, Receipt: receipt}, nil
	}
	return common.TxInfo{Status: "reverted", Tx: tx, Receipt: receipt}, nil
}

func (er *EthReader) TransactionByHash(ctx context.Context, txHash string) (*common.Transaction, bool, error) {
	type txAndPending struct {
		tx        *common.Transaction
		isPending bool
	}
	res, err := firstSuccess(er, func(n *OneNodeReader) (txAndPending, error) {
		tx, isPending, err := n.TransactionByHash(ctx, txHash)
		return txAndPending{tx, isPending}, err
	})
	return res.tx, res.isPending, err
}

func (er *EthReader) TransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	return firstSuccess(er, func(n *OneNodeReader) (*types.Receipt, error) {
		return n.TransactionReceipt(ctx, txHash)
	})
}
