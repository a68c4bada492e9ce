package transfer

// Status is one step of a transfer's lifecycle. Within one Execute call the
// transitions are strictly sequential; cross chain transfers loop back to
// StatusAwaitingSignature once after the approval step.
type Status string

const (
	StatusIdle              Status = "idle"
	StatusAwaitingSignature Status = "awaiting_signature"
	StatusApproving         Status = "approving"
	StatusBroadcasting      Status = "broadcasting"
	StatusConfirming        Status = "confirming"
	StatusCompleted         Status = "completed"
	StatusFailed            Status = "failed"
)

// StatusCallback receives every status transition of a transfer together
// with the transfer id, so UIs can correlate updates before a tx hash
// exists.
type StatusCallback func(transferID string, status Status)
