package common

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxInfo is the state of a transaction as seen from the nodes of one chain.
// Status is one of "notfound", "pending", "done", "reverted", "lost".
type TxInfo struct {
	Status  string
	Tx      *Transaction
	Receipt *types.Receipt
}

func (t *TxInfo) GasCost() *big.Int {
	return big.NewInt(0).Mul(
		big.NewInt(int64(t.Receipt.GasUsed)),
		t.Tx.GasPrice(),
	)
}

// Transaction wraps a go-ethereum transaction with the extra fields nodes
// return on eth_getTransactionByHash.
type Transaction struct {
	*types.Transaction
	Extra TxExtraInfo `json:"extra"`
}

type TxExtraInfo struct {
	BlockNumber *string         `json:"blockNumber,omitempty"`
	BlockHash   *common.Hash    `json:"blockHash,omitempty"`
	From        *common.Address `json:"from,omitempty"`
}

func (tx *Transaction) UnmarshalJSON(msg []byte) error {
	if err := json.Unmarshal(msg, &tx.Transaction); err != nil {
		return err
	}
	return json.Unmarshal(msg, &tx.Extra)
}
