package interfaces

import (
	"context"

	"forneiro_pix/internal/domain/entities"
)

// IPaymentGateway abstracts the outbound Mercado Pago calls.
//
// CreatePixCharge must return a result carrying a QR image or a copy-paste code;
// a 2xx without either is surfaced as an error. FetchCharge reads canonical
// charge state by provider id. ValidateCredential is called once at startup and
// a failure there is fatal.
type IPaymentGateway interface {
	CreatePixCharge(ctx context.Context, req entities.PixChargeRequest) (entities.ProviderCharge, error)
	FetchCharge(ctx context.Context, id string) (entities.ProviderCharge, error)
	ValidateCredential(ctx context.Context) error
}
