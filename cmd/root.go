package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cubepay/cubepay/config"
	"github.com/cubepay/cubepay/networks"
	"github.com/cubepay/cubepay/ui"
)

var terminal = ui.NewTerminalUI()

var rootCmd = &cobra.Command{
	Use:   "cubepay",
	Short: "Resolve payees by name and settle stable token payments across chains",
	Long: `Cubepay is a command line tool to pay people by their human-readable
name. It resolves an identity (like alice.eth) to an address and the payee's
published payment preferences, then settles the payment in USDC either on
one chain or across two chains through the burn-deposit settlement contract.

Cross chain transfers pay a flat 0.1% protocol fee and wait for third party
attestation before the funds appear on the destination chain.

RPC nodes are built in for every supported chain and can be overridden per
chain with env vars (run 'cubepay networks' to see the variable names).`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "n", "mainnet", "network to operate on")
	rootCmd.PersistentFlags().StringVar(&config.CustomChainsDir, "chains-dir", "", "directory with custom chain json files")
}

func buildRegistry() (*networks.Registry, error) {
	if config.CustomChainsDir != "" {
		return networks.NewRegistryWithCustomDir(config.CustomChainsDir)
	}
	return networks.NewRegistry(), nil
}

// chainByName looks a chain up and prints did-you-mean suggestions when the
// name is unknown.
func chainByName(registry *networks.Registry, name string) (*networks.Chain, error) {
	chain, err := registry.ByName(name)
	if err != nil {
		suggestions := registry.Suggest(name)
		if len(suggestions) > 0 {
			return nil, fmt.Errorf("unknown network '%s', did you mean: %s", name, strings.Join(suggestions, ", "))
		}
		return nil, err
	}
	return chain, nil
}
