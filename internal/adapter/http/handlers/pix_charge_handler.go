package handlers

import (
	"errors"
	"log"
	"net/http"

	"forneiro_pix/internal/adapter/http/dto/request"
	"forneiro_pix/internal/adapter/http/dto/response"
	"forneiro_pix/internal/usecase"
	"forneiro_pix/pkg"

	"github.com/gin-gonic/gin"
)

// PixChargeHandler handles charge creation and status polling.
type PixChargeHandler struct {
	usecase usecase.IPixChargeUseCase
}

func NewPixChargeHandler(uc usecase.IPixChargeUseCase) *PixChargeHandler {
	return &PixChargeHandler{usecase: uc}
}

// GeneratePix creates a PIX charge for a storefront order.
//
// @Summary      Create a PIX charge
// @Description  Accepts {amount, orderId, orderData?} or {transaction_amount, description, orderData?}.
// @Accept       json
// @Produce      json
// @Success      200 {object} response.PixChargeResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      502 {object} pkg.HTTPError
// @Router       /api/generate-pix [post]
func (h *PixChargeHandler) GeneratePix(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[pix][handler] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request body", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	in, err := request.ParsePixChargeCreate(raw)
	if err != nil {
		log.Printf("[pix][handler] unrecognized request shape err=%v", err)
		appErr := pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	in.IdempotencyKey = c.GetHeader("X-Idempotency-Key")

	created, err := h.usecase.CreateCharge(c.Request.Context(), in)
	if err != nil {
		log.Printf("[pix][handler] create failed order_id=%s err=%v", in.OrderID, err)
		appErr := mapPixChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[pix][handler] create success order_id=%s payment_id=%s status=%s", in.OrderID, created.ChargeID, created.Status)

	c.JSON(http.StatusOK, response.FromCreatedCharge(created))
}

// CheckPayment returns the current charge status, re-fetched from the provider
// for real charges.
//
// @Summary      Check charge status
// @Produce      json
// @Param        id path string true "charge id"
// @Success      200 {object} response.ChargeStatusResponse
// @Failure      404 {object} pkg.HTTPError
// @Router       /api/check-payment/{id} [get]
func (h *PixChargeHandler) CheckPayment(c *gin.Context) {
	id := c.Param("id")

	status, err := h.usecase.CheckStatus(c.Request.Context(), id)
	if err != nil {
		log.Printf("[pix][handler] status check failed payment_id=%s err=%v", id, err)
		appErr := mapPixChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.ChargeStatusResponse{Status: status})
}

// StatusPagamento is the storefront's detailed status route.
//
// @Summary      Detailed charge status
// @Produce      json
// @Param        id path string true "charge id"
// @Success      200 {object} response.ChargeStatusDetailResponse
// @Failure      404 {object} pkg.HTTPError
// @Router       /status-pagamento/{id} [get]
func (h *PixChargeHandler) StatusPagamento(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.usecase.StatusDetail(c.Request.Context(), id)
	if err != nil {
		log.Printf("[pix][handler] status detail failed payment_id=%s err=%v", id, err)
		appErr := mapPixChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromStatusDetail(detail))
}

func mapPixChargeError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amount must be a number greater than zero", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingOrderID):
		return pkg.NewDomainErrorSimple("MISSING_ORDER_ID", "An order id is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPixNotEnabled):
		return pkg.NewDomainErrorSimple("PIX_NOT_ENABLED", "Merchant account is not enabled for PIX payments", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Payment provider rejected the request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrChargeNotFound):
		return pkg.NewDomainErrorSimple("CHARGE_NOT_FOUND", "Charge not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider request failed", err, http.StatusBadGateway)
	}
}
