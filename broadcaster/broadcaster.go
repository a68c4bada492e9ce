package broadcaster

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/cubepay/cubepay/common"
)

const broadcastTimeout = 4 * time.Second

// Broadcaster takes a signed tx and tries to push it to all nodes that it
// manages as fast as possible. It returns the local tx hash and a bool
// indicating that the tx reached at least 1 node.
type Broadcaster struct {
	clients map[string]*rpc.Client
}

func NewBroadcaster(nodes map[string]string) *Broadcaster {
	clients := map[string]*rpc.Client{}
	for name, url := range nodes {
		client, err := rpc.Dial(url)
		if err != nil {
			log.Printf("Couldn't connect to: %s - %v", url, err)
		} else {
			clients[name] = client
		}
	}
	return &Broadcaster{
		clients: clients,
	}
}

func (b *Broadcaster) broadcast(ctx context.Context, client *rpc.Client, data string) error {
	return client.CallContext(ctx, nil, "eth_sendRawTransaction", data)
}

func (b *Broadcaster) BroadcastTx(ctx context.Context, tx *types.Transaction) (string, bool, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return "", false, fmt.Errorf("tx is not valid, couldn't use rlp to encode it: %w", err)
	}
	return b.Broadcast(ctx, hexutil.Encode(data))
}

// Broadcast pushes a hex encoded signed tx to every node in parallel. The
// returned hash is derived locally so it is available even when no node
// answered yet.
func (b *Broadcaster) Broadcast(ctx context.Context, data string) (string, bool, error) {
	timeout, cancel := context.WithTimeout(ctx, broadcastTimeout)
	defer cancel()

	parallelTasks := []func() error{}
	for id := range b.clients {
		cli := b.clients[id]
		parallelTasks = append(parallelTasks, func() error {
			return b.broadcast(timeout, cli, data)
		})
	}
	err, numErrs := common.RunParallel(parallelTasks...)
	if len(b.clients) == 0 {
		return common.RawTxToHash(data), false, fmt.Errorf("no nodes to broadcast to")
	}
	if numErrs == len(b.clients) {
		return common.RawTxToHash(data), false, err
	}
	return common.RawTxToHash(data), true, nil
}
