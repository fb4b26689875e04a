package response

import (
	"time"

	"forneiro_pix/internal/usecase"
)

// PixChargeResponse is the normalized create-charge payload the payment widget
// consumes. Field names match what the storefront already parses.
type PixChargeResponse struct {
	QRCodeBase64  string `json:"qrCodeBase64"`
	PixCopiaECola string `json:"pixCopiaECola"`
	PaymentID     string `json:"paymentId"`
	Status        string `json:"status,omitempty"`
}

func FromCreatedCharge(c usecase.CreatedCharge) PixChargeResponse {
	return PixChargeResponse{
		QRCodeBase64:  c.QRCodeBase64,
		PixCopiaECola: c.PixCopiaECola,
		PaymentID:     c.ChargeID,
		Status:        c.Status,
	}
}

type ChargeStatusResponse struct {
	Status string `json:"status"`
}

type ChargeStatusDetailResponse struct {
	Status       string     `json:"status"`
	StatusDetail string     `json:"status_detail"`
	DateApproved *time.Time `json:"date_approved,omitempty"`
}

func FromStatusDetail(d usecase.StatusDetailResult) ChargeStatusDetailResponse {
	return ChargeStatusDetailResponse{
		Status:       d.Status,
		StatusDetail: d.StatusDetail,
		DateApproved: d.DateApproved,
	}
}
