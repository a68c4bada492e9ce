package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Chain describes one supported chain: its identity, native token, stable
// token deployment and the infrastructure endpoints the rest of the system
// needs to talk to it. A chain with no stable token address (or the zero
// address placeholder) is registered for display purposes but can not settle
// payments.
type Chain struct {
	ChainID        uint64        `json:"chain_id"`
	Name           string        `json:"name"`
	AltNames       []string      `json:"alt_names,omitempty"`
	NativeSymbol   string        `json:"native_symbol"`
	NativeDecimals uint64        `json:"native_decimals"`
	BlockTime      time.Duration `json:"block_time"`

	StableTokenAddress  string `json:"stable_token_address,omitempty"`
	StableTokenSymbol   string `json:"stable_token_symbol,omitempty"`
	StableTokenDecimals uint64 `json:"stable_token_decimals,omitempty"`

	// SettlementAddress is the burn-deposit contract used for cross chain
	// transfers. SettlementDomain is its wire identifier for the destination
	// chain.
	SettlementAddress string `json:"settlement_address,omitempty"`
	SettlementDomain  uint32 `json:"settlement_domain,omitempty"`

	// NameServiceAddress is the on-chain name registry used for identity
	// resolution, when this chain hosts one.
	NameServiceAddress string `json:"name_service_address,omitempty"`

	NodeVarName  string            `json:"node_var_name,omitempty"`
	DefaultNodes map[string]string `json:"default_nodes"`

	ExplorerURL string `json:"explorer_url,omitempty"`
}

// Nodes returns the RPC endpoints for this chain. When the chain's env var
// is set it takes precedence over the built-in defaults so operators can
// point a chain at their own node without a config file.
func (c *Chain) Nodes() map[string]string {
	if c.NodeVarName != "" {
		if custom := strings.Trim(os.Getenv(c.NodeVarName), " "); custom != "" {
			return map[string]string{fmt.Sprintf("%s-custom", c.Name): custom}
		}
	}
	return c.DefaultNodes
}

func (c *Chain) MarshalJSON() ([]byte, error) {
	type alias Chain
	return json.MarshalIndent((*alias)(c), "", "  ")
}
