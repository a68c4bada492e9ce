package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubepay/cubepay/common"
	"github.com/cubepay/cubepay/config"
	"github.com/cubepay/cubepay/networks"
	"github.com/cubepay/cubepay/reader"
	"github.com/cubepay/cubepay/resolver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <identity>",
	Short: "Resolve a payee identity to an address and payment preferences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry()
		if err != nil {
			return err
		}
		res, err := buildResolver(registry)
		if err != nil {
			return err
		}

		stop := terminal.Spinner(fmt.Sprintf("Resolving %s...", args[0]))
		record, err := res.Resolve(cmd.Context(), args[0])
		stop()
		if err != nil {
			return err
		}

		terminal.Success("%s resolves to %s", record.Identity, record.Address)
		if record.Description != "" {
			terminal.Info("Description: %s", record.Description)
		}
		if record.Avatar != "" {
			terminal.Info("Avatar: %s", record.Avatar)
		}
		c := record.Constraints
		if c.MinAmount != nil {
			terminal.Info("Minimum payment: %g", *c.MinAmount)
		}
		if c.MaxAmount != nil {
			terminal.Info("Maximum payment: %g", *c.MaxAmount)
		}
		if c.PreferredToken != "" {
			terminal.Info("Preferred token: %s", c.PreferredToken)
		}
		if chain := resolver.RecommendChain(record, registry); chain != nil {
			terminal.Info("Preferred chain: %s (%d)", chain.Name, chain.ChainID)
		} else if c.PreferredChain != "" {
			terminal.Warn("Preferred chain '%s' is not a known network", c.PreferredChain)
		}
		return nil
	},
}

// buildResolver wires an ENS backed resolver over the chain that hosts the
// name service.
func buildResolver(registry *networks.Registry) (*resolver.Resolver, error) {
	chain, err := nameServiceChain(registry)
	if err != nil {
		return nil, err
	}
	r := reader.NewEthReader(chain.ChainID, chain.Nodes())
	ens := resolver.NewENSClient(r, chain.NameServiceAddress)
	return resolver.NewResolver(ens, resolver.NewCache(resolver.DefaultCacheTTL)), nil
}

// nameServiceChain prefers the selected network when it hosts a registry
// and falls back to the first chain that does.
func nameServiceChain(registry *networks.Registry) (*networks.Chain, error) {
	if chain, err := registry.ByName(config.Network); err == nil && !common.IsZeroAddress(chain.NameServiceAddress) {
		return chain, nil
	}
	for _, chain := range registry.Chains() {
		if !common.IsZeroAddress(chain.NameServiceAddress) {
			return chain, nil
		}
	}
	return nil, fmt.Errorf("no chain in the registry hosts a name service")
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
