package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"forneiro_pix/internal/domain/entities"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrPixTransactionDataMissing = errors.New("provider response has no pix qr code or copy-paste code")

const defaultBaseURL = "https://api.mercadopago.com"

// GatewayError is a non-2xx provider response, with the upstream body attached
// for debugging and for error classification by the usecase.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("mercado pago returned status %d: %s", e.StatusCode, e.Body)
}

// MercadoPagoGateway wraps Mercado Pago for PIX charges. Creates talk to the
// REST API directly so the caller's idempotency key reaches the provider;
// fetches go through the SDK with one fallback attempt over the lower-level
// HTTP transport, no retry loop beyond that.
type MercadoPagoGateway struct {
	client      payment.Client
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		log.Printf("[pix][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[pix][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[pix][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		client:      payment.NewClient(cfg),
		accessToken: accessToken,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// CreatePixCharge creates a PIX payment. req.Amount must already be rounded to
// 2 digits and req.Payer.Email must be non-empty; the provider rejects both.
//
// The SDK stamps every create with a freshly generated X-Idempotency-Key, so a
// retried create with the same caller key would open a second charge. Creates
// therefore always go over the HTTP transport, where the caller's key is sent.
func (g *MercadoPagoGateway) CreatePixCharge(ctx context.Context, req entities.PixChargeRequest) (entities.ProviderCharge, error) {
	if req.Amount <= 0 {
		return entities.ProviderCharge{}, fmt.Errorf("invalid amount %v", req.Amount)
	}
	log.Printf("[pix][gateway] create start order_id=%s amount=%.2f", req.OrderID, req.Amount)
	return g.createViaHTTP(ctx, req)
}

// FetchCharge reads canonical charge state by provider id.
func (g *MercadoPagoGateway) FetchCharge(ctx context.Context, id string) (entities.ProviderCharge, error) {
	log.Printf("[pix][gateway] fetch start provider_payment_id=%s", id)

	if g.client != nil {
		if numericID, err := strconv.Atoi(id); err == nil {
			resp, err := g.client.Get(ctx, numericID)
			if err == nil {
				pc, convErr := fromSDKResponseLoose(resp)
				if convErr != nil {
					return entities.ProviderCharge{}, convErr
				}
				log.Printf("[pix][gateway] fetch success provider_payment_id=%s provider_status=%s", pc.ID, pc.Status)
				return pc, nil
			}
			log.Printf("[pix][gateway] sdk fetch failed, trying http fallback provider_payment_id=%s err=%v", id, err)
		}
	}

	return g.fetchViaHTTP(ctx, id)
}

// ValidateCredential checks the configured access token against /users/me.
// Called once at process start; the caller treats a failure as fatal so the
// process never runs with silently broken payments.
func (g *MercadoPagoGateway) ValidateCredential(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/users/me", nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("credential validation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &GatewayError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	log.Printf("[pix][gateway] credential validated")
	return nil
}

// mpPaymentBody is the subset of the /v1/payments response the fallback
// transport needs.
type mpPaymentBody struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	StatusDetail       string      `json:"status_detail"`
	TransactionAmount  float64     `json:"transaction_amount"`
	DateApproved       *time.Time  `json:"date_approved"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
			TicketURL    string `json:"ticket_url"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

func (g *MercadoPagoGateway) createViaHTTP(ctx context.Context, req entities.PixChargeRequest) (entities.ProviderCharge, error) {
	body := map[string]any{
		"transaction_amount": req.Amount,
		"description":        req.Description,
		"payment_method_id":  "pix",
		"external_reference": req.OrderID,
		"payer": map[string]any{
			"email":      req.Payer.Email,
			"first_name": req.Payer.FirstName,
			"last_name":  req.Payer.LastName,
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return entities.ProviderCharge{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payments", bytes.NewReader(b))
	if err != nil {
		return entities.ProviderCharge{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.accessToken)
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("X-Idempotency-Key", req.IdempotencyKey)
	}

	pc, err := g.doPaymentRequest(httpReq)
	if err != nil {
		return entities.ProviderCharge{}, err
	}
	if pc.QRCode == "" && pc.QRCodeBase64 == "" {
		return entities.ProviderCharge{}, ErrPixTransactionDataMissing
	}
	log.Printf("[pix][gateway] create success provider_payment_id=%s provider_status=%s", pc.ID, pc.Status)
	return pc, nil
}

func (g *MercadoPagoGateway) fetchViaHTTP(ctx context.Context, id string) (entities.ProviderCharge, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/payments/"+id, nil)
	if err != nil {
		return entities.ProviderCharge{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.accessToken)

	pc, err := g.doPaymentRequest(httpReq)
	if err != nil {
		return entities.ProviderCharge{}, err
	}
	log.Printf("[pix][gateway] fetch success (http fallback) provider_payment_id=%s provider_status=%s", pc.ID, pc.Status)
	return pc, nil
}

func (g *MercadoPagoGateway) doPaymentRequest(httpReq *http.Request) (entities.ProviderCharge, error) {
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return entities.ProviderCharge{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.ProviderCharge{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entities.ProviderCharge{}, &GatewayError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed mpPaymentBody
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return entities.ProviderCharge{}, fmt.Errorf("unparseable provider response: %w", err)
	}
	return entities.ProviderCharge{
		ID:           parsed.ID.String(),
		Status:       parsed.Status,
		StatusDetail: parsed.StatusDetail,
		Amount:       parsed.TransactionAmount,
		QRCode:       parsed.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64: parsed.PointOfInteraction.TransactionData.QRCodeBase64,
		TicketURL:    parsed.PointOfInteraction.TransactionData.TicketURL,
		DateApproved: parsed.DateApproved,
		Raw:          json.RawMessage(raw),
	}, nil
}

func fromSDKResponseLoose(resp *payment.Response) (entities.ProviderCharge, error) {
	if resp == nil || resp.ID == 0 {
		return entities.ProviderCharge{}, errors.New("provider returned no payment id")
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return entities.ProviderCharge{}, err
	}

	pc := entities.ProviderCharge{
		ID:           strconv.Itoa(resp.ID),
		Status:       resp.Status,
		StatusDetail: resp.StatusDetail,
		Amount:       resp.TransactionAmount,
		QRCode:       resp.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64: resp.PointOfInteraction.TransactionData.QRCodeBase64,
		TicketURL:    resp.PointOfInteraction.TransactionData.TicketURL,
		Raw:          raw,
	}
	if !resp.DateApproved.IsZero() {
		approved := resp.DateApproved
		pc.DateApproved = &approved
	}
	return pc, nil
}
