package resolver

import (
	"context"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/cubepay/cubepay/common"
	"github.com/cubepay/cubepay/reader"
)

// RegistryClient is the naming registry boundary: forward resolution of a
// name to an address and arbitrary text record reads. Each read may return
// an empty value for explicit absence.
type RegistryClient interface {
	Addr(ctx context.Context, name string) (string, error)
	Text(ctx context.Context, name string, key string) (string, error)
}

// ENSClient reads the on-chain ENS registry and the resolver contracts it
// points at.
type ENSClient struct {
	reader       *reader.EthReader
	registryAddr string
}

func NewENSClient(r *reader.EthReader, registryAddr string) *ENSClient {
	return &ENSClient{
		reader:       r,
		registryAddr: registryAddr,
	}
}

// resolverFor looks up the resolver contract registered for the name.
func (c *ENSClient) resolverFor(ctx context.Context, name string) (string, error) {
	node := common.Namehash(name)
	var resolverAddr ethcommon.Address
	err := c.reader.ReadContract(ctx, &resolverAddr, c.registryAddr, common.GetENSRegistryABI(), "resolver", node)
	if err != nil {
		return "", fmt.Errorf("couldn't read resolver for '%s': %w", name, err)
	}
	if resolverAddr == (ethcommon.Address{}) {
		return "", nil
	}
	return resolverAddr.Hex(), nil
}

// Addr forward-resolves a name. An empty string means the name has no
// resolver or no address record.
func (c *ENSClient) Addr(ctx context.Context, name string) (string, error) {
	resolverAddr, err := c.resolverFor(ctx, name)
	if err != nil {
		return "", err
	}
	if resolverAddr == "" {
		return "", nil
	}
	node := common.Namehash(name)
	var addr ethcommon.Address
	err = c.reader.ReadContract(ctx, &addr, resolverAddr, common.GetENSResolverABI(), "addr", node)
	if err != nil {
		return "", fmt.Errorf("couldn't read addr record for '%s': %w", name, err)
	}
	if addr == (ethcommon.Address{}) {
		return "", nil
	}
	return addr.Hex(), nil
}

// Text reads one text record. An empty string means the record is absent.
func (c *ENSClient) Text(ctx context.Context, name string, key string) (string, error) {
	resolverAddr, err := c.resolverFor(ctx, name)
	if err != nil {
		return "", err
	}
	if resolverAddr == "" {
		return "", nil
	}
	node := common.Namehash(name)
	var value string
	err = c.reader.ReadContract(ctx, &value, resolverAddr, common.GetENSResolverABI(), "text", node, key)
	if err != nil {
		return "", fmt.Errorf("couldn't read text record '%s' for '%s': %w", key, name, err)
	}
	return value, nil
}
