package monitor

import (
	"context"
	"time"

	"github.com/cubepay/cubepay/common"
	"github.com/cubepay/cubepay/reader"
)

const (
	checkInterval = 5 * time.Second
	lostTimeout   = 3 * time.Minute
)

// TxMonitor polls a chain until a tx settles. A tx that no node has seen
// after lostTimeout is reported as lost.
type TxMonitor struct {
	reader *reader.EthReader
}

func NewTxMonitor(r *reader.EthReader) *TxMonitor {
	return &TxMonitor{r}
}

func (m *TxMonitor) periodicCheck(ctx context.Context, tx string, info chan common.TxInfo) {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	startTime := time.Now()
	isOnNode := false
	for {
		select {
		case <-ctx.Done():
			info <- common.TxInfo{Status: "lost"}
			return
		case t := <-ticker.C:
			txinfo, _ := m.reader.TxInfoFromHash(ctx, tx)
			switch txinfo.Status {
			case "error":
				continue
			case "notfound":
				if t.Sub(startTime) > lostTimeout && !isOnNode {
					info <- common.TxInfo{Status: "lost"}
					return
				}
				continue
			case "pending":
				isOnNode = true
				continue
			case "reverted", "done":
				info <- txinfo
				return
			}
		}
	}
}

// MakeWaitChannel starts polling in the background and returns a channel
// that will deliver the terminal TxInfo.
func (m *TxMonitor) MakeWaitChannel(ctx context.Context, tx string) <-chan common.TxInfo {
	result := make(chan common.TxInfo, 1)
	go m.periodicCheck(ctx, tx, result)
	return result
}

// BlockingWait waits until the tx settles, the caller cancels, or the tx is
// declared lost.
func (m *TxMonitor) BlockingWait(ctx context.Context, tx string) common.TxInfo {
	return <-m.MakeWaitChannel(ctx, tx)
}
