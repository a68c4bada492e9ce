package networks_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubepay/cubepay/networks"
)

func TestRegistryLookupByIDAndName(t *testing.T) {
	registry := networks.NewRegistry()

	chain, err := registry.ByID(8453)
	require.NoError(t, err)
	assert.Equal(t, "base", chain.Name)

	chain, err = registry.ByName("Avax")
	require.NoError(t, err)
	assert.Equal(t, uint64(43114), chain.ChainID)

	_, err = registry.ByID(424242)
	assert.ErrorIs(t, err, networks.ErrChainNotFound)
	_, err = registry.ByName("gondor")
	assert.ErrorIs(t, err, networks.ErrChainNotFound)
}

func TestRegistryIsSupported(t *testing.T) {
	registry := networks.NewRegistry()

	assert.True(t, registry.IsSupported(1))
	assert.True(t, registry.IsSupported(11155111))

	// hedera testnet is registered but its stable token address is the
	// zero placeholder
	assert.False(t, registry.IsSupported(296))
	assert.False(t, registry.IsSupported(424242))
}

func TestRegistryStableTokenAddress(t *testing.T) {
	registry := networks.NewRegistry()

	addr, err := registry.StableTokenAddress(1)
	require.NoError(t, err)
	assert.Equal(t, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", addr)

	_, err = registry.StableTokenAddress(296)
	assert.ErrorIs(t, err, networks.ErrUnsupportedChain)
	_, err = registry.StableTokenAddress(424242)
	assert.ErrorIs(t, err, networks.ErrUnsupportedChain)
}

func TestRegistryNodesFailClosedOnUnknownChain(t *testing.T) {
	registry := networks.NewRegistry()

	nodes, err := registry.Nodes(1)
	require.NoError(t, err)
	assert.NotEmpty(t, nodes)

	_, err = registry.Nodes(424242)
	assert.ErrorIs(t, err, networks.ErrUnsupportedChain)
}

func TestRegistryExplorerTxURL(t *testing.T) {
	registry := networks.NewRegistry()

	url, ok := registry.ExplorerTxURL(1, "0xabc")
	assert.True(t, ok)
	assert.Equal(t, "https://etherscan.io/tx/0xabc", url)

	// no silent mainnet fallback for unknown chains
	_, ok = registry.ExplorerTxURL(424242, "0xabc")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	chains := []*networks.Chain{
		{ChainID: 10, Name: "ten", BlockTime: time.Second},
		{ChainID: 10, Name: "ten-again", BlockTime: time.Second},
	}
	assert.Panics(t, func() { networks.NewRegistryWithChains(chains) })
}

func TestRegistrySuggest(t *testing.T) {
	registry := networks.NewRegistry()
	suggestions := registry.Suggest("sepola")
	assert.Contains(t, suggestions, "sepolia")
}

func TestNewChainFromJSON(t *testing.T) {
	content := []byte(`{
		"chain_id": 59144,
		"name": "linea",
		"native_symbol": "ETH",
		"native_decimals": 18,
		"default_nodes": {"linea-official": "https://rpc.linea.build"}
	}`)
	chain, err := networks.NewChainFromJSON(content)
	require.NoError(t, err)
	assert.Equal(t, uint64(59144), chain.ChainID)
	assert.Equal(t, "linea", chain.Name)

	_, err = networks.NewChainFromJSON([]byte(`{"name": "no-id"}`))
	assert.Error(t, err)
}
