package networks

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/cubepay/cubepay/common"
)

var (
	ErrChainNotFound    = fmt.Errorf("chain not found")
	ErrUnsupportedChain = fmt.Errorf("chain is not supported for settlement")
)

// Registry is the static table of chains the system knows about. It is
// constructed once at startup and handed to the components that need it;
// the content is immutable afterwards.
type Registry struct {
	chains     map[string]*Chain
	chainsByID map[uint64]*Chain
}

// NewRegistry builds a registry over the built-in chain table.
func NewRegistry() *Registry {
	return NewRegistryWithChains(builtinChains)
}

// NewRegistryWithChains builds a registry over an explicit chain list.
// It panics on duplicate chain ids or names since the table is static
// configuration and a duplicate is a programming error.
func NewRegistryWithChains(chains []*Chain) *Registry {
	result := &Registry{
		chains:     map[string]*Chain{},
		chainsByID: map[uint64]*Chain{},
	}
	for _, c := range chains {
		if _, found := result.chainsByID[c.ChainID]; found {
			panic(fmt.Errorf("chain with id %d already exists", c.ChainID))
		}
		if _, found := result.chains[c.Name]; found {
			panic(fmt.Errorf("chain with name or alternative name of '%s' already exists", c.Name))
		}
		result.chains[c.Name] = c
		result.chainsByID[c.ChainID] = c
		for _, an := range c.AltNames {
			if _, found := result.chains[an]; found {
				panic(fmt.Errorf("chain with name or alternative name of '%s' already exists", an))
			}
			result.chains[an] = c
		}
	}
	return result
}

func (r *Registry) ByID(id uint64) (*Chain, error) {
	res, found := r.chainsByID[id]
	if !found {
		return nil, fmt.Errorf("chain id %d: %w", id, ErrChainNotFound)
	}
	return res, nil
}

func (r *Registry) ByName(name string) (*Chain, error) {
	res, found := r.chains[strings.ToLower(name)]
	if !found {
		return nil, fmt.Errorf("chain name '%s': %w", name, ErrChainNotFound)
	}
	return res, nil
}

// IsSupported reports whether payments can settle on the chain, which
// requires a registered, non-zero stable token address.
func (r *Registry) IsSupported(id uint64) bool {
	c, found := r.chainsByID[id]
	if !found {
		return false
	}
	return !common.IsZeroAddress(c.StableTokenAddress)
}

// StableTokenAddress returns the stable token contract for the chain or
// ErrUnsupportedChain when the chain is unknown or has no deployment.
func (r *Registry) StableTokenAddress(id uint64) (string, error) {
	c, found := r.chainsByID[id]
	if !found || common.IsZeroAddress(c.StableTokenAddress) {
		return "", fmt.Errorf("chain id %d: %w", id, ErrUnsupportedChain)
	}
	return c.StableTokenAddress, nil
}

// Nodes returns the RPC endpoints for the chain. Unknown chains fail with
// ErrUnsupportedChain instead of falling back to a default chain: routing a
// query to the wrong network silently is worse than failing loudly.
func (r *Registry) Nodes(id uint64) (map[string]string, error) {
	c, found := r.chainsByID[id]
	if !found {
		return nil, fmt.Errorf("chain id %d: %w", id, ErrUnsupportedChain)
	}
	return c.Nodes(), nil
}

// ExplorerTxURL builds an explorer link for a tx hash. ok is false when the
// chain is unknown or has no explorer configured; callers are expected to
// render an explicit unknown state rather than a wrong-network link.
func (r *Registry) ExplorerTxURL(id uint64, txHash string) (string, bool) {
	c, found := r.chainsByID[id]
	if !found || c.ExplorerURL == "" {
		return "", false
	}
	return fmt.Sprintf("%s/tx/%s", c.ExplorerURL, txHash), true
}

func (r *Registry) Chains() []*Chain {
	res := []*Chain{}
	for _, c := range r.chainsByID {
		res = append(res, c)
	}
	return res
}

func (r *Registry) Names() []string {
	res := []string{}
	for name := range r.chains {
		res = append(res, name)
	}
	return res
}

// Suggest returns the registered chain names closest to input, for
// did-you-mean output when a name lookup fails.
func (r *Registry) Suggest(input string) []string {
	names := r.Names()
	matches := fuzzy.Find(strings.Replace(strings.ToLower(input), " ", "-", -1), names)
	res := []string{}
	for i, m := range matches {
		if i >= 3 {
			break
		}
		res = append(res, m.Str)
	}
	return res
}
