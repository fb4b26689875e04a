package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"forneiro_pix/internal/adapter/http/handlers/mocks"
	"forneiro_pix/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestPixChargeHandler_GeneratePix(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unrecognized body shape", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		h := NewPixChargeHandler(uc)

		r := gin.New()
		r.POST("/api/generate-pix", h.GeneratePix)

		req := httptest.NewRequest(http.MethodPost, "/api/generate-pix", bytes.NewBufferString(`{"foo":"bar"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "INVALID_REQUEST" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("usecase mapped errors", func(t *testing.T) {
		cases := []struct {
			err  error
			want int
			code string
		}{
			{usecase.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
			{usecase.ErrMissingOrderID, http.StatusBadRequest, "MISSING_ORDER_ID"},
			{usecase.ErrPixNotEnabled, http.StatusBadRequest, "PIX_NOT_ENABLED"},
			{usecase.ErrPaymentGatewayBadRequest, http.StatusBadRequest, "INVALID_REQUEST"},
			{usecase.ErrPaymentGatewayUnauthorized, http.StatusUnauthorized, "PAYMENT_PROVIDER_UNAUTHORIZED"},
			{errors.New("network down"), http.StatusBadGateway, "PAYMENT_PROVIDER_ERROR"},
		}

		for _, tc := range cases {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIPixChargeUseCase(ctrl)
			h := NewPixChargeHandler(uc)

			r := gin.New()
			r.POST("/api/generate-pix", h.GeneratePix)

			uc.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).Return(usecase.CreatedCharge{}, tc.err)

			req := httptest.NewRequest(http.MethodPost, "/api/generate-pix", bytes.NewBufferString(`{"amount":10,"orderId":"ord-1"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("for err %v expected %d, got %d", tc.err, tc.want, w.Code)
			}
			var body map[string]any
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body["code"] != tc.code {
				t.Fatalf("for err %v expected code %s, got %s", tc.err, tc.code, w.Body.String())
			}
			ctrl.Finish()
		}
	})

	t.Run("success with widget aliases", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		h := NewPixChargeHandler(uc)

		r := gin.New()
		r.POST("/api/generate-pix", h.GeneratePix)

		uc.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in usecase.CreateChargeInput) (usecase.CreatedCharge, error) {
				if in.Amount != 55.9 || in.OrderID != "ord-9" {
					t.Fatalf("unexpected input: %+v", in)
				}
				if in.IdempotencyKey != "idem-1" {
					t.Fatalf("expected idempotency key header pass-through, got %q", in.IdempotencyKey)
				}
				return usecase.CreatedCharge{ChargeID: "12345", Status: "pending", QRCodeBase64: "cXI=", PixCopiaECola: "copia"}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/api/generate-pix", bytes.NewBufferString(`{"amount":55.9,"orderId":"ord-9"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Idempotency-Key", "idem-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["paymentId"] != "12345" || body["qrCodeBase64"] != "cXI=" || body["pixCopiaECola"] != "copia" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("checkout shape", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		h := NewPixChargeHandler(uc)

		r := gin.New()
		r.POST("/api/generate-pix", h.GeneratePix)

		uc.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in usecase.CreateChargeInput) (usecase.CreatedCharge, error) {
				if in.Amount != 31.5 || in.OrderID != "A12" {
					t.Fatalf("unexpected input: %+v", in)
				}
				return usecase.CreatedCharge{ChargeID: "999", Status: "pending", PixCopiaECola: "copia"}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/api/generate-pix", bytes.NewBufferString(`{"transaction_amount":31.5,"description":"Pedido #A12"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestPixChargeHandler_CheckPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		h := NewPixChargeHandler(uc)

		r := gin.New()
		r.GET("/api/check-payment/:id", h.CheckPayment)

		uc.EXPECT().CheckStatus(gomock.Any(), "missing").Return("", usecase.ErrChargeNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/check-payment/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		h := NewPixChargeHandler(uc)

		r := gin.New()
		r.GET("/api/check-payment/:id", h.CheckPayment)

		uc.EXPECT().CheckStatus(gomock.Any(), "12345").Return("approved", nil)

		req := httptest.NewRequest(http.MethodGet, "/api/check-payment/12345", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "approved" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPixChargeHandler_StatusPagamento(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		h := NewPixChargeHandler(uc)

		r := gin.New()
		r.GET("/status-pagamento/:id", h.StatusPagamento)

		uc.EXPECT().StatusDetail(gomock.Any(), "12345").Return(usecase.StatusDetailResult{Status: "pending", StatusDetail: "pending_waiting_transfer"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/status-pagamento/12345", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "pending" || body["status_detail"] != "pending_waiting_transfer" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if _, present := body["date_approved"]; present {
			t.Fatalf("date_approved should be omitted while pending: %s", w.Body.String())
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		h := NewPixChargeHandler(uc)

		r := gin.New()
		r.GET("/status-pagamento/:id", h.StatusPagamento)

		uc.EXPECT().StatusDetail(gomock.Any(), "12345").Return(usecase.StatusDetailResult{}, errors.New("boom"))

		req := httptest.NewRequest(http.MethodGet, "/status-pagamento/12345", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}
