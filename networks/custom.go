package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// NewChainFromJSON parses a chain descriptor from its JSON form, as written
// by Chain.MarshalJSON.
func NewChainFromJSON(content []byte) (*Chain, error) {
	c := Chain{}
	if err := json.Unmarshal(content, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chain config: %w", err)
	}
	if c.ChainID == 0 {
		return nil, fmt.Errorf("chain config is missing chain_id")
	}
	if c.Name == "" {
		return nil, fmt.Errorf("chain config is missing name")
	}
	return &c, nil
}

// LoadCustomChains reads extra chain descriptors from *.json files in dir.
// Files that fail to parse are skipped with a note so one bad file doesn't
// take the whole table down.
func LoadCustomChains(dir string) ([]*Chain, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}

	chains := []*Chain{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}
		chain, err := NewChainFromJSON(content)
		if err != nil {
			fmt.Printf("failed to parse chain from file %s: %s. Ignore and continue with other custom chains.\n", file, err)
			continue
		}
		chains = append(chains, chain)
	}
	return chains, nil
}

// NewRegistryWithCustomDir builds a registry over the built-in table plus
// any custom chains found in dir. Custom chains may override built-ins by
// id or name.
func NewRegistryWithCustomDir(dir string) (*Registry, error) {
	custom, err := LoadCustomChains(dir)
	if err != nil {
		return nil, err
	}
	merged := []*Chain{}
	replaced := map[uint64]bool{}
	for _, c := range custom {
		replaced[c.ChainID] = true
	}
	for _, c := range builtinChains {
		if !replaced[c.ChainID] {
			merged = append(merged, c)
		}
	}
	merged = append(merged, custom...)
	return NewRegistryWithChains(merged), nil
}
