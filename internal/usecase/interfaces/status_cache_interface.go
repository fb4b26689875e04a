package interfaces

import "context"

// IStatusCache is an optional read-through cache for charge status polls.
// Implementations must tolerate a nil receiver so the wiring can always pass one.
type IStatusCache interface {
	Get(ctx context.Context, id string) (status string, ok bool)
	Set(ctx context.Context, id, status string)
}
