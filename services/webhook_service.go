package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/djdiegocosta/ticketbuy/models"
	"github.com/djdiegocosta/ticketbuy/monitoring"
	"github.com/djdiegocosta/ticketbuy/store"
)

// WebhookResult is serialized back to the payment provider.
type WebhookResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	SaleID  string `json:"sale_id,omitempty"`
}

// WebhookService applies external payment status notifications to the sale
// record and propagates them to any live checkout session.
type WebhookService struct {
	store    store.Store
	checkout *CheckoutService
}

func NewWebhookService(st store.Store, checkout *CheckoutService) *WebhookService {
	return &WebhookService{store: st, checkout: checkout}
}

// Process looks up the sale by the provider's payment id and records the new
// status. On "paid" it also marks the sale's tickets; a ticket update
// failure is logged but does not undo the sale update, the sale record is
// authoritative.
func (s *WebhookService) Process(ctx context.Context, paymentID, newStatus string) WebhookResult {
	paymentID = strings.TrimSpace(paymentID)
	newStatus = strings.TrimSpace(newStatus)
	if paymentID == "" || newStatus == "" {
		monitoring.RecordCheckoutOperation("webhook", "bad_params")
		return WebhookResult{OK: false, Message: "Parâmetros inválidos"}
	}

	sale, err := s.store.UpdateSaleStatusByPaymentID(ctx, paymentID, newStatus)
	if err != nil {
		if err == store.ErrNotFound {
			monitoring.RecordCheckoutOperation("webhook", "sale_not_found")
			return WebhookResult{OK: false, Message: "Venda não encontrada"}
		}
		slog.Error("webhook sale update failed", "payment_id", paymentID, "error", err)
		monitoring.RecordCheckoutOperation("webhook", "error")
		return WebhookResult{OK: false, Message: "Erro ao atualizar venda"}
	}

	if newStatus == models.PaymentStatusPaid {
		if err := s.store.UpdateTicketStatusBySale(ctx, sale.ID, models.TicketStatusPaid); err != nil {
			slog.Error("webhook ticket update failed", "sale_id", sale.ID, "error", err)
		}
	}

	s.checkout.HandlePaymentUpdate(sale.ID, paymentID, newStatus)

	slog.Info("payment status applied", "sale_id", sale.ID, "payment_id", paymentID, "status", newStatus)
	monitoring.RecordCheckoutOperation("webhook", "ok")
	return WebhookResult{OK: true, Message: "Status atualizado", SaleID: sale.ID}
}
