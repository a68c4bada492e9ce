package transfer

import (
	"errors"
	"fmt"

	"github.com/cubepay/cubepay/wallet"
)

// FailureReason classifies why a transfer ended in StatusFailed.
type FailureReason string

const (
	ReasonUserRejected      FailureReason = "user_rejected"
	ReasonInsufficientFunds FailureReason = "insufficient_funds"
	ReasonNetworkError      FailureReason = "network_error"
	ReasonUnknown           FailureReason = "unknown"
)

var (
	// ErrInsufficientFunds marks a preflight or on-chain balance check
	// failure. Recoverable by adjusting the amount.
	ErrInsufficientFunds = fmt.Errorf("balance is lower than the requested amount")
	// ErrNetwork marks an RPC, broadcast or confirmation failure. The whole
	// operation may be retried by the caller.
	ErrNetwork = fmt.Errorf("network failure")
)

// classify maps an underlying error to the failure category surfaced to
// callers. Unrecognized errors stay ReasonUnknown and keep their message.
func classify(err error) FailureReason {
	switch {
	case errors.Is(err, wallet.ErrRejected):
		return ReasonUserRejected
	case errors.Is(err, ErrInsufficientFunds):
		return ReasonInsufficientFunds
	case errors.Is(err, ErrNetwork):
		return ReasonNetworkError
	default:
		return ReasonUnknown
	}
}
