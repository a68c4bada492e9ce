package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cubepay/cubepay/config"
	"github.com/cubepay/cubepay/networks"
	"github.com/cubepay/cubepay/receipt"
	"github.com/cubepay/cubepay/resolver"
	"github.com/cubepay/cubepay/transfer"
	"github.com/cubepay/cubepay/wallet"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a payment to an address or a resolvable identity",
	Long: `Send settles a payment on the selected network, or across two networks
when --dest-network differs from --network. The recipient can be a raw
address or an identity like alice.eth, which is resolved first and checked
against the payee's published payment constraints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry()
		if err != nil {
			return err
		}
		sourceChain, err := chainByName(registry, config.Network)
		if err != nil {
			return err
		}
		destChain := sourceChain
		if config.DestNetwork != "" {
			if destChain, err = chainByName(registry, config.DestNetwork); err != nil {
				return err
			}
		}

		destAddress, err := resolveDestination(cmd, registry)
		if err != nil {
			return err
		}

		signer, err := unlockKeystore()
		if err != nil {
			return err
		}

		intent := transfer.Intent{
			SourceChainID:      sourceChain.ChainID,
			DestinationChainID: destChain.ChainID,
			Amount:             config.Amount,
			Token:              transfer.TokenKind(config.Token),
			SourceAddress:      signer.Address().Hex(),
			DestinationAddress: destAddress,
		}
		if err := intent.Validate(); err != nil {
			return err
		}

		if intent.IsCrossChain() {
			fee, err := transfer.EstimateFee(intent.Amount, true)
			if err != nil {
				return err
			}
			terminal.Warn("Cross chain transfer %s -> %s, protocol fee: %s %s",
				sourceChain.Name, destChain.Name, fee, sourceChain.StableTokenSymbol)
		}

		// interrupting the process cancels in-flight RPC work
		ctx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stopSignals()

		stop := func() {}
		orchestrator := transfer.NewOrchestrator(
			registry,
			signer,
			map[uint64]*transfer.Backend{
				sourceChain.ChainID: transfer.NewChainBackend(sourceChain),
			},
			transfer.WithStatusCallback(func(transferID string, status transfer.Status) {
				stop()
				stop = terminal.Spinner(fmt.Sprintf("[%s] %s", transferID[:8], status))
			}),
		)

		result, execErr := orchestrator.Execute(ctx, intent)
		stop()

		formatter := receipt.NewFormatter(registry)
		printReceipt(formatter.Format(result, intent))
		if execErr != nil {
			return fmt.Errorf("transfer failed (%s): %w", result.Reason, execErr)
		}
		return nil
	},
}

// resolveDestination turns --to into an address, resolving identities and
// enforcing the payee's published constraints.
func resolveDestination(cmd *cobra.Command, registry *networks.Registry) (string, error) {
	if !strings.Contains(config.To, ".") {
		return config.To, nil
	}

	res, err := buildResolver(registry)
	if err != nil {
		return "", err
	}
	stopSpin := terminal.Spinner(fmt.Sprintf("Resolving %s...", config.To))
	record, err := res.Resolve(cmd.Context(), config.To)
	stopSpin()
	if err != nil {
		return "", err
	}
	terminal.Info("%s resolves to %s", record.Identity, record.Address)

	amount, err := strconv.ParseFloat(config.Amount, 64)
	if err != nil {
		return "", fmt.Errorf("couldn't parse amount '%s': %w", config.Amount, err)
	}
	if valid, reason := resolver.ValidateAmount(amount, record); !valid {
		return "", fmt.Errorf("payment rejected by payee constraints: %s", reason)
	}
	if chain := resolver.RecommendChain(record, registry); chain != nil && chain.Name != config.Network {
		terminal.Warn("%s prefers to be paid on %s", record.Identity, chain.Name)
	}
	return record.Address, nil
}

func unlockKeystore() (wallet.Signer, error) {
	if config.KeystoreFile == "" {
		return nil, fmt.Errorf("--keystore is required")
	}
	fmt.Printf("Passphrase for %s: ", config.KeystoreFile)
	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, fmt.Errorf("couldn't read passphrase: %w", err)
	}
	return wallet.NewKeystoreSigner(config.KeystoreFile, string(passphrase))
}

func printReceipt(r receipt.DisplayReceipt) {
	rows := [][2]string{
		{"Transfer", r.TransferID},
		{"Status", r.Status},
		{"Amount", fmt.Sprintf("%s %s", r.AmountLabel, r.TokenSymbol)},
		{"Fee", fmt.Sprintf("%s %s", r.FeeLabel, r.TokenSymbol)},
		{"From", fmt.Sprintf("%s on %s", r.From, r.SourceChain)},
		{"To", fmt.Sprintf("%s on %s", r.To, r.DestChain)},
	}
	if r.ExplorerKnown {
		rows = append(rows, [2]string{"Explorer", r.ExplorerTxURL})
	} else if r.SourceTxHash != "" {
		rows = append(rows, [2]string{"Tx", r.SourceTxHash})
	}
	terminal.Card("Payment receipt", rows)
}

func init() {
	sendCmd.Flags().StringVar(&config.To, "to", "", "destination address or identity")
	sendCmd.Flags().StringVar(&config.Amount, "amount", "", "amount to send, in token units")
	sendCmd.Flags().StringVar(&config.Token, "token", string(transfer.TokenStable), "token to pay with: native or stable")
	sendCmd.Flags().StringVar(&config.KeystoreFile, "keystore", "", "path to the keystore file of the paying account")
	sendCmd.Flags().StringVar(&config.DestNetwork, "dest-network", "", "destination network for cross chain payments")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(sendCmd)
}
