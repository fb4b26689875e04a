package entities

import (
	"encoding/json"
	"strings"
	"time"
)

// ChargeStatus carries the Mercado Pago status vocabulary verbatim; the service
// does not invent its own states.
type ChargeStatus string

const (
	ChargeStatusPending   ChargeStatus = "pending"
	ChargeStatusApproved  ChargeStatus = "approved"
	ChargeStatusRejected  ChargeStatus = "rejected"
	ChargeStatusCancelled ChargeStatus = "cancelled"
)

// Terminal reports whether the status ends the charge lifecycle. Further
// identical notifications for a terminal charge are business-level no-ops.
func (s ChargeStatus) Terminal() bool {
	switch s {
	case ChargeStatusApproved, ChargeStatusRejected, ChargeStatusCancelled:
		return true
	}
	return false
}

// IsCompletedStatus matches the provider spellings that mean "paid".
func IsCompletedStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "paid", "success":
		return true
	}
	return false
}

// DevChargeIDPrefix marks charges synthesized locally when no live provider
// credential is configured.
const DevChargeIDPrefix = "DEV-"

func IsDevChargeID(id string) bool {
	return strings.HasPrefix(id, DevChargeIDPrefix)
}

// Charge is the persisted payment record.
//
// Storage model:
//   - file store: one JSON object keyed by id, rewritten wholesale on update
//   - DynamoDB store: PK id (charges table)
//
// ProviderPayloadRaw keeps the last provider response body for traceability/audit.
// OrderData is the originating order snapshot, present only when the order should
// reach the print sink on completion. PrintForwarded guards that forward so a
// retried webhook cannot print the same order twice.
type Charge struct {
	ID      string       `json:"id"`
	OrderID string       `json:"order_id"`
	Amount  float64      `json:"amount"`
	Status  ChargeStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
	OrderData          json.RawMessage `json:"order_data,omitempty"`
	PrintForwarded     bool            `json:"print_forwarded,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChargePatch is a partial update merged into a stored charge. Nil fields are
// left untouched.
type ChargePatch struct {
	OrderID            *string
	Amount             *float64
	Status             *ChargeStatus
	ProviderPayloadRaw json.RawMessage
	OrderData          json.RawMessage
	PrintForwarded     *bool
}

// Apply merges the patch into the charge. UpdatedAt is stamped by the repository.
func (c *Charge) Apply(p ChargePatch) {
	if p.OrderID != nil {
		c.OrderID = *p.OrderID
	}
	if p.Amount != nil {
		c.Amount = *p.Amount
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if len(p.ProviderPayloadRaw) > 0 {
		c.ProviderPayloadRaw = p.ProviderPayloadRaw
	}
	if len(p.OrderData) > 0 {
		c.OrderData = p.OrderData
	}
	if p.PrintForwarded != nil {
		c.PrintForwarded = *p.PrintForwarded
	}
}

// ProviderCharge is the normalized result of a provider call (create or fetch).
type ProviderCharge struct {
	ID           string
	Status       string
	StatusDetail string
	Amount       float64

	QRCode       string
	QRCodeBase64 string
	TicketURL    string

	DateApproved *time.Time

	Raw json.RawMessage
}

// PixChargeRequest is the outbound create-charge payload handed to the gateway.
type PixChargeRequest struct {
	Amount         float64
	Description    string
	OrderID        string
	IdempotencyKey string
	Payer          Payer
}

// Payer mirrors the provider's required payer fields. Email is mandatory
// provider-side; the usecase synthesizes one when the order has none.
type Payer struct {
	Email     string
	FirstName string
	LastName  string
}

// PaymentUpdate is the fan-out event pushed to every connected subscriber.
// Clients filter by id or orderId on their side.
type PaymentUpdate struct {
	ID      string          `json:"id"`
	OrderID string          `json:"orderId,omitempty"`
	Status  string          `json:"status"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}
