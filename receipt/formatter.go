package receipt

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/cubepay/cubepay/common"
	"github.com/cubepay/cubepay/networks"
	"github.com/cubepay/cubepay/transfer"
)

// UnknownChainLabel is shown when a receipt references a chain the registry
// doesn't know. The formatter never substitutes a default explorer for an
// unknown chain.
const UnknownChainLabel = "unknown chain"

// DisplayReceipt is a display-ready summary of a completed transfer.
// Everything is precomputed so view code does no logic.
type DisplayReceipt struct {
	TransferID    string
	Status        string
	AmountLabel   string
	FeeLabel      string
	TokenSymbol   string
	From          string
	To            string
	SourceChain   string
	DestChain     string
	ExplorerTxURL string
	ExplorerKnown bool
	CrossChain    bool
	SourceTxHash  string
}

// Formatter derives display receipts. Pure and deterministic given its
// inputs.
type Formatter struct {
	registry *networks.Registry
	printer  *message.Printer
}

func NewFormatter(registry *networks.Registry) *Formatter {
	return &Formatter{
		registry: registry,
		printer:  message.NewPrinter(language.English),
	}
}

// Format builds the receipt for a finished transfer.
func (f *Formatter) Format(result *transfer.Result, intent transfer.Intent) DisplayReceipt {
	r := DisplayReceipt{
		TransferID:   result.TransferID,
		Status:       string(result.Status),
		AmountLabel:  f.localizeAmount(intent.Amount),
		FeeLabel:     f.localizeAmount(result.Fee),
		From:         common.ShortenAddress(intent.SourceAddress),
		To:           common.ShortenAddress(intent.DestinationAddress),
		SourceChain:  f.chainLabel(intent.SourceChainID),
		DestChain:    f.chainLabel(intent.DestinationChainID),
		CrossChain:   intent.IsCrossChain(),
		SourceTxHash: result.SourceTxHash,
	}

	if chain, err := f.registry.ByID(intent.SourceChainID); err == nil {
		if intent.Token == transfer.TokenStable {
			r.TokenSymbol = chain.StableTokenSymbol
		} else {
			r.TokenSymbol = chain.NativeSymbol
		}
	}

	if result.SourceTxHash != "" {
		if url, ok := f.registry.ExplorerTxURL(intent.SourceChainID, result.SourceTxHash); ok {
			r.ExplorerTxURL = url
			r.ExplorerKnown = true
		}
	}
	return r
}

func (f *Formatter) chainLabel(chainID uint64) string {
	chain, err := f.registry.ByID(chainID)
	if err != nil {
		return UnknownChainLabel
	}
	return chain.Name
}

// localizeAmount renders a decimal string with locale-aware grouping, e.g.
// "1234.5" -> "1,234.5" for English.
func (f *Formatter) localizeAmount(amount string) string {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return amount
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(6)))
}
