package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"forneiro_pix/internal/domain/entities"
	"forneiro_pix/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount              = errors.New("invalid amount")
	ErrMissingOrderID             = errors.New("missing order id")
	ErrChargeNotFound             = errors.New("charge not found")
	ErrPixNotEnabled              = errors.New("merchant account not enabled for pix")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
)

// CreateChargeInput is the normalized create-charge request, after the HTTP
// layer has collapsed the two accepted body shapes into one.
type CreateChargeInput struct {
	Amount         float64
	OrderID        string
	Description    string
	IdempotencyKey string
	OrderData      json.RawMessage
	Customer       CustomerInfo
}

// CustomerInfo is what the order snapshot knows about the payer. Email is
// usually absent; the storefront never collects one.
type CustomerInfo struct {
	Name  string
	Phone string
	Email string
}

// CreatedCharge is the normalized create-charge result handed back to the widget.
type CreatedCharge struct {
	ChargeID      string
	Status        string
	QRCodeBase64  string
	PixCopiaECola string
}

// StatusDetailResult backs the GET /status-pagamento/:id response.
type StatusDetailResult struct {
	Status       string
	StatusDetail string
	DateApproved *time.Time
}

// IPixChargeUseCase encapsulates charge creation and status checks.
type IPixChargeUseCase interface {
	CreateCharge(ctx context.Context, in CreateChargeInput) (CreatedCharge, error)
	CheckStatus(ctx context.Context, id string) (string, error)
	StatusDetail(ctx context.Context, id string) (StatusDetailResult, error)
}

// PixChargeOptions is the env-derived behavior of the usecase.
//
// DevMode bypasses the provider entirely and synthesizes DEV- charges; it is on
// when no live credential is configured. AutoApproveDelay, when positive, flips
// a development charge to approved after the delay so the storefront flow can
// be exercised end to end without a real payment. LocalFallback degrades to the
// development path when the merchant account is not enabled for PIX.
type PixChargeOptions struct {
	DevMode          bool
	AutoApproveDelay time.Duration
	LocalFallback    bool
}

type PixChargeUseCase struct {
	repo        interfaces.IChargeRepository
	gateway     interfaces.IPaymentGateway
	broadcaster interfaces.IChargeBroadcaster
	statusCache interfaces.IStatusCache
	opts        PixChargeOptions

	// Simulated development charge statuses. Owned here, not module-global.
	mu          sync.Mutex
	devStatuses map[string]entities.ChargeStatus
}

var _ IPixChargeUseCase = (*PixChargeUseCase)(nil)

func NewPixChargeUseCase(repo interfaces.IChargeRepository, gateway interfaces.IPaymentGateway, broadcaster interfaces.IChargeBroadcaster, statusCache interfaces.IStatusCache, opts PixChargeOptions) *PixChargeUseCase {
	return &PixChargeUseCase{
		repo:        repo,
		gateway:     gateway,
		broadcaster: broadcaster,
		statusCache: statusCache,
		opts:        opts,
		devStatuses: map[string]entities.ChargeStatus{},
	}
}

func (u *PixChargeUseCase) CreateCharge(ctx context.Context, in CreateChargeInput) (CreatedCharge, error) {
	in.OrderID = strings.TrimSpace(in.OrderID)
	log.Printf("[pix][usecase] create start order_id=%q amount=%v dev_mode=%v", in.OrderID, in.Amount, u.opts.DevMode)

	if in.OrderID == "" {
		return CreatedCharge{}, ErrMissingOrderID
	}
	if in.Amount <= 0 {
		return CreatedCharge{}, ErrInvalidAmount
	}
	amount := roundAmount(in.Amount)
	if in.Description == "" {
		in.Description = fmt.Sprintf("Pedido #%s", in.OrderID)
	}

	if u.opts.DevMode {
		return u.createDevCharge(ctx, in, amount)
	}

	req := entities.PixChargeRequest{
		Amount:         amount,
		Description:    in.Description,
		OrderID:        in.OrderID,
		IdempotencyKey: idempotencyKey(in),
		Payer:          buildPayer(in.Customer),
	}

	pc, err := u.gateway.CreatePixCharge(ctx, req)
	if err != nil {
		log.Printf("[pix][usecase] gateway create failed order_id=%s err=%v", in.OrderID, err)
		if isGatewayPixNotEnabled(err) {
			if u.opts.LocalFallback {
				log.Printf("[pix][usecase] pix not enabled for merchant; degrading to local qr order_id=%s", in.OrderID)
				return u.createDevCharge(ctx, in, amount)
			}
			return CreatedCharge{}, ErrPixNotEnabled
		}
		if isGatewayUnauthorized(err) {
			return CreatedCharge{}, ErrPaymentGatewayUnauthorized
		}
		if isGatewayBadRequest(err) {
			return CreatedCharge{}, ErrPaymentGatewayBadRequest
		}
		return CreatedCharge{}, err
	}

	status := entities.ChargeStatus(pc.Status)
	u.persistCharge(ctx, pc.ID, entities.ChargePatch{
		OrderID:            &in.OrderID,
		Amount:             &amount,
		Status:             &status,
		ProviderPayloadRaw: pc.Raw,
		OrderData:          in.OrderData,
	})
	u.broadcaster.Publish(entities.PaymentUpdate{ID: pc.ID, OrderID: in.OrderID, Status: pc.Status, Raw: pc.Raw})

	log.Printf("[pix][usecase] create success order_id=%s payment_id=%s status=%s", in.OrderID, pc.ID, pc.Status)
	return CreatedCharge{
		ChargeID:      pc.ID,
		Status:        pc.Status,
		QRCodeBase64:  pc.QRCodeBase64,
		PixCopiaECola: pc.QRCode,
	}, nil
}

func (u *PixChargeUseCase) CheckStatus(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrChargeNotFound
	}

	if entities.IsDevChargeID(id) {
		return u.devChargeStatus(ctx, id)
	}

	if u.statusCache != nil {
		if status, ok := u.statusCache.Get(ctx, id); ok {
			return status, nil
		}
	}

	pc, err := u.observeCharge(ctx, id)
	if err != nil {
		return "", err
	}
	return pc.Status, nil
}

func (u *PixChargeUseCase) StatusDetail(ctx context.Context, id string) (StatusDetailResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return StatusDetailResult{}, ErrChargeNotFound
	}

	if entities.IsDevChargeID(id) {
		status, err := u.devChargeStatus(ctx, id)
		if err != nil {
			return StatusDetailResult{}, err
		}
		res := StatusDetailResult{Status: status, StatusDetail: "pending_waiting_transfer"}
		if entities.IsCompletedStatus(status) {
			res.StatusDetail = "accredited"
			now := time.Now().UTC()
			res.DateApproved = &now
		}
		return res, nil
	}

	pc, err := u.observeCharge(ctx, id)
	if err != nil {
		return StatusDetailResult{}, err
	}
	return StatusDetailResult{Status: pc.Status, StatusDetail: pc.StatusDetail, DateApproved: pc.DateApproved}, nil
}

// observeCharge fetches canonical state from the provider, persists it, fans it
// out and feeds the cache. Every status observation goes through here so the
// store always reflects the most recently fetched provider state.
func (u *PixChargeUseCase) observeCharge(ctx context.Context, id string) (entities.ProviderCharge, error) {
	if u.gateway == nil {
		// No provider credential: only local development charges exist, and
		// those never reach this path.
		return entities.ProviderCharge{}, ErrChargeNotFound
	}

	pc, err := u.gateway.FetchCharge(ctx, id)
	if err != nil {
		log.Printf("[pix][usecase] gateway fetch failed payment_id=%s err=%v", id, err)
		if isGatewayUnauthorized(err) {
			return entities.ProviderCharge{}, ErrPaymentGatewayUnauthorized
		}
		return entities.ProviderCharge{}, err
	}

	status := entities.ChargeStatus(pc.Status)
	stored := u.persistCharge(ctx, id, entities.ChargePatch{Status: &status, ProviderPayloadRaw: pc.Raw})
	u.broadcaster.Publish(entities.PaymentUpdate{ID: id, OrderID: stored.OrderID, Status: pc.Status, Raw: pc.Raw})

	if u.statusCache != nil && status.Terminal() {
		u.statusCache.Set(ctx, id, pc.Status)
	}
	return pc, nil
}

func (u *PixChargeUseCase) createDevCharge(ctx context.Context, in CreateChargeInput, amount float64) (CreatedCharge, error) {
	id := entities.DevChargeIDPrefix + uuid.NewString()
	payCode := devPixCode(id, amount)
	qrBase64 := base64.StdEncoding.EncodeToString([]byte(payCode))

	u.setDevStatus(id, entities.ChargeStatusPending)
	status := entities.ChargeStatusPending
	u.persistCharge(ctx, id, entities.ChargePatch{
		OrderID:   &in.OrderID,
		Amount:    &amount,
		Status:    &status,
		OrderData: in.OrderData,
	})
	u.broadcaster.Publish(entities.PaymentUpdate{ID: id, OrderID: in.OrderID, Status: string(status)})

	if u.opts.AutoApproveDelay > 0 {
		orderID := in.OrderID
		time.AfterFunc(u.opts.AutoApproveDelay, func() { u.approveDevCharge(id, orderID) })
	}

	log.Printf("[pix][usecase] development charge created order_id=%s payment_id=%s auto_approve=%s", in.OrderID, id, u.opts.AutoApproveDelay)
	return CreatedCharge{
		ChargeID:      id,
		Status:        string(status),
		QRCodeBase64:  qrBase64,
		PixCopiaECola: payCode,
	}, nil
}

func (u *PixChargeUseCase) approveDevCharge(id, orderID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u.setDevStatus(id, entities.ChargeStatusApproved)
	status := entities.ChargeStatusApproved
	u.persistCharge(ctx, id, entities.ChargePatch{Status: &status})
	u.broadcaster.Publish(entities.PaymentUpdate{ID: id, OrderID: orderID, Status: string(status)})
	log.Printf("[pix][usecase] development charge auto-approved payment_id=%s order_id=%s", id, orderID)
}

func (u *PixChargeUseCase) devChargeStatus(ctx context.Context, id string) (string, error) {
	u.mu.Lock()
	status, ok := u.devStatuses[id]
	u.mu.Unlock()
	if ok {
		return string(status), nil
	}

	// A restart lost the simulated state; the store may still have the record.
	c, err := u.repo.GetByID(ctx, id)
	if err == nil && c.ID != "" {
		return string(c.Status), nil
	}
	return "", ErrChargeNotFound
}

func (u *PixChargeUseCase) setDevStatus(id string, status entities.ChargeStatus) {
	u.mu.Lock()
	u.devStatuses[id] = status
	u.mu.Unlock()
}

// persistCharge is best-effort: a store failure is logged and never prevents
// returning the already-obtained provider response.
func (u *PixChargeUseCase) persistCharge(ctx context.Context, id string, patch entities.ChargePatch) entities.Charge {
	stored, err := u.repo.Upsert(ctx, id, patch)
	if err != nil {
		log.Printf("[pix][usecase] persist failed payment_id=%s err=%v", id, err)
	}
	return stored
}

func roundAmount(amount float64) float64 {
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return rounded
}

func idempotencyKey(in CreateChargeInput) string {
	if in.IdempotencyKey != "" {
		return in.IdempotencyKey
	}
	return fmt.Sprintf("%s-%d", in.OrderID, time.Now().Unix())
}

// buildPayer fills the provider-required payer fields. When the order carries
// no email, a deterministic pseudo-email is derived from the customer's first
// name and phone digits so the provider does not reject the charge; no real
// email is collected or stored.
func buildPayer(c CustomerInfo) entities.Payer {
	first, last := splitName(c.Name)
	email := strings.TrimSpace(c.Email)
	if email == "" {
		email = synthesizePayerEmail(first, c.Phone)
	}
	return entities.Payer{Email: email, FirstName: first, LastName: last}
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(name))
	switch len(parts) {
	case 0:
		return "Cliente", "Forneiro"
	case 1:
		return parts[0], "Forneiro"
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func synthesizePayerEmail(firstName, phone string) string {
	name := strings.Builder{}
	for _, r := range strings.ToLower(firstName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			name.WriteRune(r)
		}
	}
	local := name.String()
	if local == "" {
		local = "cliente"
	}

	digits := strings.Builder{}
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	suffix := digits.String()
	if suffix == "" {
		suffix = "0000"
	}
	return fmt.Sprintf("%s.%s@cliente.pix", local, suffix)
}

// devPixCode builds a copy-paste payload that looks like an EMV pix string but
// is clearly fake; only development charges ever carry it.
func devPixCode(id string, amount float64) string {
	return fmt.Sprintf("00020126DEV0014BR.GOV.BCB.PIX01%s5303986540%.2f5802BR6304FAKE", id, amount)
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "status 400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "status 401")
}

func isGatewayPixNotEnabled(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "without key enabled") || strings.Contains(msg, "collector user without key")
}
