package request

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"forneiro_pix/internal/usecase"
)

var ErrUnrecognizedShape = errors.New("body matches neither {amount, orderId} nor {transaction_amount, description}")

// PixChargeCreateRequest accepts the two body shapes the storefront has
// historically sent: `{amount, orderId, orderData?}` and
// `{transaction_amount, description, orderData?}`. Normalize collapses them
// into one input at the boundary; anything matching neither shape is rejected.
type PixChargeCreateRequest struct {
	Amount  *float64 `json:"amount"`
	OrderID string   `json:"orderId"`

	TransactionAmount *float64 `json:"transaction_amount"`
	Description       string   `json:"description"`

	OrderData json.RawMessage `json:"orderData"`
}

var descriptionOrderID = regexp.MustCompile(`#\s*([A-Za-z0-9_-]+)`)

func ParsePixChargeCreate(raw []byte) (usecase.CreateChargeInput, error) {
	var req PixChargeCreateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return usecase.CreateChargeInput{}, errors.New("request body is not valid json")
	}
	return req.Normalize()
}

func (r PixChargeCreateRequest) Normalize() (usecase.CreateChargeInput, error) {
	in := usecase.CreateChargeInput{
		OrderID:     strings.TrimSpace(r.OrderID),
		Description: strings.TrimSpace(r.Description),
		OrderData:   r.OrderData,
	}

	switch {
	case r.Amount != nil:
		in.Amount = *r.Amount
	case r.TransactionAmount != nil:
		in.Amount = *r.TransactionAmount
	default:
		return usecase.CreateChargeInput{}, ErrUnrecognizedShape
	}

	// The transaction_amount shape carries the order id inside the description
	// ("Pedido #1001").
	if in.OrderID == "" && in.Description != "" {
		if m := descriptionOrderID.FindStringSubmatch(in.Description); m != nil {
			in.OrderID = m[1]
		}
	}
	if in.OrderID == "" {
		return usecase.CreateChargeInput{}, ErrUnrecognizedShape
	}

	in.Customer = customerFromOrderData(r.OrderData)
	return in, nil
}

// customerFromOrderData pulls payer details out of the order snapshot. The
// snapshot is otherwise treated as opaque; only the customer block matters for
// building the provider payer.
func customerFromOrderData(orderData json.RawMessage) usecase.CustomerInfo {
	if len(orderData) == 0 {
		return usecase.CustomerInfo{}
	}
	var snapshot struct {
		Customer struct {
			Name     string `json:"name"`
			Nome     string `json:"nome"`
			Phone    string `json:"phone"`
			Telefone string `json:"telefone"`
			Email    string `json:"email"`
		} `json:"customer"`
	}
	if err := json.Unmarshal(orderData, &snapshot); err != nil {
		return usecase.CustomerInfo{}
	}

	c := usecase.CustomerInfo{
		Name:  snapshot.Customer.Name,
		Phone: snapshot.Customer.Phone,
		Email: snapshot.Customer.Email,
	}
	if c.Name == "" {
		c.Name = snapshot.Customer.Nome
	}
	if c.Phone == "" {
		c.Phone = snapshot.Customer.Telefone
	}
	return c
}
