package interfaces

import (
	"context"
	"encoding/json"
)

// IPrintForwarder delivers a completed-order snapshot to the kitchen print sink.
type IPrintForwarder interface {
	Forward(ctx context.Context, payload json.RawMessage) error
}
