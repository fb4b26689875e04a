package interfaces

import (
	"context"

	"forneiro_pix/internal/domain/entities"
)

// IChargeRepository abstracts charge persistence (JSON file or DynamoDB).
//
// Upsert merges the patch into any existing record, creating one when absent,
// and stamps UpdatedAt. GetByID returns a zero-value Charge (empty ID) when the
// id is unknown; callers check ID == "".
type IChargeRepository interface {
	Upsert(ctx context.Context, id string, patch entities.ChargePatch) (entities.Charge, error)
	GetByID(ctx context.Context, id string) (entities.Charge, error)
}
