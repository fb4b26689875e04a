package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"forneiro_pix/internal/domain/entities"
	mock_interfaces "forneiro_pix/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestWebhookUseCase_ProcessNotification_Ignored(t *testing.T) {
	t.Run("no charge id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(nil, gateway, nil, nil)

		if err := uc.ProcessNotification(context.Background(), []byte(`{"action":"test"}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(nil, gateway, nil, nil)

		if err := uc.ProcessNotification(context.Background(), []byte(`{not json`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("development charge id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(nil, gateway, nil, nil)

		if err := uc.ProcessNotification(context.Background(), []byte(`{"data":{"id":"DEV-123"}}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no gateway configured", func(t *testing.T) {
		// Without provider credentials every collaborator is absent; a
		// notification for a provider id must still be acknowledged, not panic.
		uc := NewWebhookUseCase(nil, nil, nil, nil)

		if err := uc.ProcessNotification(context.Background(), []byte(`{"data":{"id":"12345"}}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("canonical fetch failure still returns nil", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(nil, gateway, nil, nil)

		gateway.EXPECT().FetchCharge(gomock.Any(), "12345").Return(entities.ProviderCharge{}, errors.New("mercado pago returned status 500: {}"))

		if err := uc.ProcessNotification(context.Background(), []byte(`{"data":{"id":12345}}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestWebhookUseCase_ProcessNotification_ApprovedForwardsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIChargeRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	broadcaster := mock_interfaces.NewMockIChargeBroadcaster(ctrl)
	printer := mock_interfaces.NewMockIPrintForwarder(ctrl)
	uc := NewWebhookUseCase(repo, gateway, broadcaster, printer)

	orderData := json.RawMessage(`{"items":[{"name":"Margherita","qty":1}],"customer":{"name":"Maria"}}`)
	raw := json.RawMessage(`{"id":12345,"status":"approved"}`)
	stored := entities.Charge{ID: "12345", OrderID: "ord-1", Status: entities.ChargeStatusApproved, OrderData: orderData}

	gateway.EXPECT().FetchCharge(gomock.Any(), "12345").Return(entities.ProviderCharge{ID: "12345", Status: "approved", Raw: raw}, nil).Times(2)
	broadcaster.EXPECT().Publish(gomock.Any()).Do(func(u entities.PaymentUpdate) {
		if u.ID != "12345" || u.OrderID != "ord-1" || u.Status != "approved" {
			t.Fatalf("unexpected update: %+v", u)
		}
	}).Times(2)

	// First notification: status upsert, then the forwarded-flag upsert before
	// the sink POST.
	statusUpsert := repo.EXPECT().Upsert(gomock.Any(), "12345", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, patch entities.ChargePatch) (entities.Charge, error) {
			if patch.Status == nil || *patch.Status != entities.ChargeStatusApproved {
				t.Fatalf("expected approved status patch, got %+v", patch)
			}
			return stored, nil
		})
	flagged := stored
	flagged.PrintForwarded = true
	repo.EXPECT().Upsert(gomock.Any(), "12345", gomock.Any()).After(statusUpsert).DoAndReturn(
		func(_ context.Context, _ string, patch entities.ChargePatch) (entities.Charge, error) {
			if patch.PrintForwarded == nil || !*patch.PrintForwarded {
				t.Fatalf("expected forwarded-flag patch, got %+v", patch)
			}
			return flagged, nil
		})
	forwarded := printer.EXPECT().Forward(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, payload json.RawMessage) error {
			if string(payload) != string(orderData) {
				t.Fatalf("expected order snapshot, got %s", payload)
			}
			return nil
		})

	if err := uc.ProcessNotification(context.Background(), []byte(`{"data":{"id":"12345"}}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Retry of the same notification: flag already set, no second print.
	repo.EXPECT().Upsert(gomock.Any(), "12345", gomock.Any()).After(forwarded).Return(flagged, nil)

	if err := uc.ProcessNotification(context.Background(), []byte(`{"data":{"id":"12345"}}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWebhookUseCase_ProcessNotification_PrintRules(t *testing.T) {
	t.Run("pending status never prints", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIChargeRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		broadcaster := mock_interfaces.NewMockIChargeBroadcaster(ctrl)
		printer := mock_interfaces.NewMockIPrintForwarder(ctrl)
		uc := NewWebhookUseCase(repo, gateway, broadcaster, printer)

		gateway.EXPECT().FetchCharge(gomock.Any(), "12345").Return(entities.ProviderCharge{ID: "12345", Status: "pending"}, nil)
		repo.EXPECT().Upsert(gomock.Any(), "12345", gomock.Any()).Return(entities.Charge{ID: "12345", OrderData: json.RawMessage(`{"items":[]}`)}, nil)
		broadcaster.EXPECT().Publish(gomock.Any())

		if err := uc.ProcessNotification(context.Background(), []byte(`{"data":{"id":"12345"}}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no order snapshot never prints", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIChargeRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		broadcaster := mock_interfaces.NewMockIChargeBroadcaster(ctrl)
		printer := mock_interfaces.NewMockIPrintForwarder(ctrl)
		uc := NewWebhookUseCase(repo, gateway, broadcaster, printer)

		gateway.EXPECT().FetchCharge(gomock.Any(), "12345").Return(entities.ProviderCharge{ID: "12345", Status: "approved"}, nil)
		repo.EXPECT().Upsert(gomock.Any(), "12345", gomock.Any()).Return(entities.Charge{ID: "12345", Status: entities.ChargeStatusApproved}, nil)
		broadcaster.EXPECT().Publish(gomock.Any())

		if err := uc.ProcessNotification(context.Background(), []byte(`{"data":{"id":"12345"}}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("nil printer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIChargeRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		broadcaster := mock_interfaces.NewMockIChargeBroadcaster(ctrl)
		uc := NewWebhookUseCase(repo, gateway, broadcaster, nil)

		gateway.EXPECT().FetchCharge(gomock.Any(), "12345").Return(entities.ProviderCharge{ID: "12345", Status: "approved"}, nil)
		repo.EXPECT().Upsert(gomock.Any(), "12345", gomock.Any()).Return(entities.Charge{ID: "12345", Status: entities.ChargeStatusApproved, OrderData: json.RawMessage(`{"items":[]}`)}, nil)
		broadcaster.EXPECT().Publish(gomock.Any())

		if err := uc.ProcessNotification(context.Background(), []byte(`{"data":{"id":"12345"}}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("sink failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIChargeRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		broadcaster := mock_interfaces.NewMockIChargeBroadcaster(ctrl)
		printer := mock_interfaces.NewMockIPrintForwarder(ctrl)
		uc := NewWebhookUseCase(repo, gateway, broadcaster, printer)

		stored := entities.Charge{ID: "12345", OrderID: "ord-1", Status: entities.ChargeStatusApproved, OrderData: json.RawMessage(`{"items":[]}`)}
		gateway.EXPECT().FetchCharge(gomock.Any(), "12345").Return(entities.ProviderCharge{ID: "12345", Status: "approved"}, nil)
		repo.EXPECT().Upsert(gomock.Any(), "12345", gomock.Any()).Return(stored, nil).Times(2)
		broadcaster.EXPECT().Publish(gomock.Any())
		printer.EXPECT().Forward(gomock.Any(), gomock.Any()).Return(errors.New("sink down"))

		if err := uc.ProcessNotification(context.Background(), []byte(`{"data":{"id":"12345"}}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestExtractChargeID(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{"data string id", `{"data":{"id":"12345"}}`, "12345", true},
		{"data numeric id", `{"data":{"id":12345}}`, "12345", true},
		{"top-level string id", `{"id":"67890"}`, "67890", true},
		{"top-level numeric id", `{"id":67890}`, "67890", true},
		{"data wins over top-level", `{"id":"top","data":{"id":"nested"}}`, "nested", true},
		{"empty body", `{}`, "", false},
		{"empty id", `{"data":{"id":""}}`, "", false},
		{"unrelated shape", `{"action":"payment.created","type":"payment"}`, "", false},
		{"not json", `garbage`, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractChargeID([]byte(tc.body))
			if got != tc.want || ok != tc.ok {
				t.Fatalf("extractChargeID(%s) = %q,%v want %q,%v", tc.body, got, ok, tc.want, tc.ok)
			}
		})
	}
}

// Polling and webhook observations land in the same store; whichever usecase
// fetched the provider last decides the persisted status.
func TestChargeStatus_LastFetchedWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIChargeRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	broadcaster := mock_interfaces.NewMockIChargeBroadcaster(ctrl)

	store := map[string]entities.Charge{}
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, patch entities.ChargePatch) (entities.Charge, error) {
			c, ok := store[id]
			if !ok {
				c = entities.Charge{ID: id, OrderID: "ord-1", Status: entities.ChargeStatusPending}
			}
			c.Apply(patch)
			store[id] = c
			return c, nil
		}).AnyTimes()
	broadcaster.EXPECT().Publish(gomock.Any()).AnyTimes()

	poller := NewPixChargeUseCase(repo, gateway, broadcaster, nil, PixChargeOptions{})
	webhook := NewWebhookUseCase(repo, gateway, broadcaster, nil)

	fetch := func(status string) {
		gateway.EXPECT().FetchCharge(gomock.Any(), "12345").Return(entities.ProviderCharge{ID: "12345", Status: status}, nil)
	}

	fetch("pending")
	if status, err := poller.CheckStatus(context.Background(), "12345"); err != nil || status != "pending" {
		t.Fatalf("expected pending poll, got %q err=%v", status, err)
	}
	if store["12345"].Status != entities.ChargeStatusPending {
		t.Fatalf("unexpected stored status after poll: %+v", store["12345"])
	}

	fetch("approved")
	if err := webhook.ProcessNotification(context.Background(), []byte(`{"data":{"id":"12345"}}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store["12345"].Status != entities.ChargeStatusApproved {
		t.Fatalf("webhook observation did not win: %+v", store["12345"])
	}

	fetch("approved")
	if status, err := poller.CheckStatus(context.Background(), "12345"); err != nil || status != "approved" {
		t.Fatalf("expected approved poll, got %q err=%v", status, err)
	}
	if store["12345"].Status != entities.ChargeStatusApproved {
		t.Fatalf("unexpected stored status after second poll: %+v", store["12345"])
	}
}
