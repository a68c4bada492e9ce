package transfer

import (
	"fmt"

	"github.com/cubepay/cubepay/common"
)

// TokenKind selects which token an intent pays with.
type TokenKind string

const (
	TokenNative TokenKind = "native"
	TokenStable TokenKind = "stable"
)

// Intent is a validated payment order: where the money comes from, where it
// goes and in what token. The orchestrator treats it as read only.
type Intent struct {
	SourceChainID      uint64
	DestinationChainID uint64
	Amount             string
	Token              TokenKind
	SourceAddress      string
	DestinationAddress string
}

func (i Intent) IsCrossChain() bool {
	return i.SourceChainID != i.DestinationChainID
}

// Validate checks the intent's local invariants: a parseable positive
// amount, a known token kind and both addresses present. Balance checks
// happen later against live chain state.
func (i Intent) Validate() error {
	if _, err := common.ParsePositiveAmount(i.Amount); err != nil {
		return err
	}
	if i.Token != TokenNative && i.Token != TokenStable {
		return fmt.Errorf("unknown token kind '%s'", i.Token)
	}
	if i.SourceAddress == "" {
		return fmt.Errorf("source address is required")
	}
	if i.DestinationAddress == "" {
		return fmt.Errorf("destination address is required")
	}
	return nil
}

// Result is the immutable outcome of one orchestrated transfer attempt. A
// retried transfer gets a fresh TransferID.
type Result struct {
	TransferID        string
	Status            Status
	Reason            FailureReason
	SourceTxHash      string
	DestinationTxHash string
	Fee               string
}
