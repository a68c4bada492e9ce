package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrRejected is returned when the wallet owner declines to sign. It is a
// distinct category so callers can tell a user decision apart from an
// infrastructure failure.
var ErrRejected = fmt.Errorf("signature request rejected by wallet owner")

// Signer is the wallet provider boundary. Implementations may hold a raw
// key, decrypt a keystore file or defer to an interactive device; any of
// them may return ErrRejected.
type Signer interface {
	Address() common.Address
	SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}
