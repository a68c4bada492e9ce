package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/cubepay/cubepay/common"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List the supported networks and their settlement status",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry()
		if err != nil {
			return err
		}
		chains := registry.Chains()
		sort.Slice(chains, func(i, j int) bool { return chains[i].ChainID < chains[j].ChainID })

		for _, chain := range chains {
			if registry.IsSupported(chain.ChainID) {
				terminal.Success("%s (%d): settles %s at %s", chain.Name, chain.ChainID,
					chain.StableTokenSymbol, common.ShortenAddress(chain.StableTokenAddress))
			} else {
				terminal.Warn("%s (%d): display only, no stable token deployment", chain.Name, chain.ChainID)
			}
			if chain.NodeVarName != "" {
				terminal.Info("  node override env var: %s", chain.NodeVarName)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(networksCmd)
}
