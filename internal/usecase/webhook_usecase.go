package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log"

	"forneiro_pix/internal/domain/entities"
	"forneiro_pix/internal/usecase/interfaces"
)

// IWebhookUseCase processes provider push notifications. The HTTP layer has
// already authenticated the request; whatever happens here, the provider gets
// a 200 so it does not retry indefinitely over a problem on our side.
type IWebhookUseCase interface {
	ProcessNotification(ctx context.Context, body []byte) error
}

type WebhookUseCase struct {
	repo        interfaces.IChargeRepository
	gateway     interfaces.IPaymentGateway
	broadcaster interfaces.IChargeBroadcaster
	printer     interfaces.IPrintForwarder
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

// NewWebhookUseCase wires the webhook pipeline. printer may be nil when no
// print sink is configured.
func NewWebhookUseCase(repo interfaces.IChargeRepository, gateway interfaces.IPaymentGateway, broadcaster interfaces.IChargeBroadcaster, printer interfaces.IPrintForwarder) *WebhookUseCase {
	return &WebhookUseCase{repo: repo, gateway: gateway, broadcaster: broadcaster, printer: printer}
}

// ProcessNotification runs the webhook state machine: extract a charge id,
// re-fetch canonical state (the webhook body's own status is never trusted),
// persist, fan out, and conditionally forward the order to the print sink.
// Every outcome returns nil; failures are logged.
func (u *WebhookUseCase) ProcessNotification(ctx context.Context, body []byte) error {
	id, ok := extractChargeID(body)
	if !ok {
		// The provider pushes notification types outside this domain; that is
		// a normal no-op, not an error.
		log.Printf("[pix][webhook] notification without charge id, ignoring body_len=%d", len(body))
		return nil
	}
	if entities.IsDevChargeID(id) {
		log.Printf("[pix][webhook] ignoring notification for development charge payment_id=%s", id)
		return nil
	}
	if u.gateway == nil {
		// Without provider credentials there is no canonical state to fetch.
		log.Printf("[pix][webhook] no payment gateway configured, ignoring payment_id=%s", id)
		return nil
	}
	log.Printf("[pix][webhook] notification received payment_id=%s", id)

	pc, err := u.gateway.FetchCharge(ctx, id)
	if err != nil {
		log.Printf("[pix][webhook] canonical fetch failed payment_id=%s err=%v", id, err)
		return nil
	}

	status := entities.ChargeStatus(pc.Status)
	stored, err := u.repo.Upsert(ctx, id, entities.ChargePatch{Status: &status, ProviderPayloadRaw: pc.Raw})
	if err != nil {
		log.Printf("[pix][webhook] persist failed payment_id=%s err=%v", id, err)
	}
	u.broadcaster.Publish(entities.PaymentUpdate{ID: id, OrderID: stored.OrderID, Status: pc.Status, Raw: pc.Raw})

	u.maybeForwardToPrint(ctx, stored, pc.Status)
	return nil
}

// maybeForwardToPrint sends the order snapshot to the print sink at most once
// per charge. The forwarded flag is persisted before the POST, so a provider
// webhook retry can never print the same order twice; a sink failure is an
// operational concern, logged only.
func (u *WebhookUseCase) maybeForwardToPrint(ctx context.Context, stored entities.Charge, status string) {
	if u.printer == nil || !entities.IsCompletedStatus(status) {
		return
	}
	if len(stored.OrderData) == 0 || stored.PrintForwarded {
		return
	}

	forwarded := true
	if _, err := u.repo.Upsert(ctx, stored.ID, entities.ChargePatch{PrintForwarded: &forwarded}); err != nil {
		log.Printf("[pix][webhook] failed to mark order as forwarded payment_id=%s err=%v", stored.ID, err)
	}
	if err := u.printer.Forward(ctx, stored.OrderData); err != nil {
		log.Printf("[pix][webhook] print forward failed payment_id=%s order_id=%s err=%v", stored.ID, stored.OrderID, err)
		return
	}
	log.Printf("[pix][webhook] order forwarded to print sink payment_id=%s order_id=%s", stored.ID, stored.OrderID)
}

// extractChargeID supports the two known notification shapes, {data:{id}} and
// {id}. The provider sends ids both as strings and as numbers; numeric ids are
// kept as their literal decimal text.
func extractChargeID(body []byte) (string, bool) {
	var payload struct {
		Data struct {
			ID any `json:"id"`
		} `json:"data"`
		ID any `json:"id"`
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return "", false
	}
	if id, ok := coerceID(payload.Data.ID); ok {
		return id, true
	}
	return coerceID(payload.ID)
}

func coerceID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case json.Number:
		return id.String(), id.String() != ""
	}
	return "", false
}
