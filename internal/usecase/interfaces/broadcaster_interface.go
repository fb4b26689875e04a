package interfaces

import "forneiro_pix/internal/domain/entities"

// IChargeBroadcaster fans a status change out to every connected realtime
// subscriber. Delivery is best-effort; a failed send must not affect other
// subscribers or the triggering operation, so Publish returns nothing.
type IChargeBroadcaster interface {
	Publish(update entities.PaymentUpdate)
}
