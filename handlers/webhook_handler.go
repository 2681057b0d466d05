package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/djdiegocosta/ticketbuy/services"
)

type WebhookHandler struct {
	webhooks *services.WebhookService
}

func NewWebhookHandler(webhooks *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

type paymentWebhookRequest struct {
	PaymentID     string `json:"payment_id"`
	PaymentStatus string `json:"payment_status"`
}

// PaymentWebhook receives payment status notifications from the provider.
// Unknown payments answer 404 so the provider can retry against the right
// environment; malformed payloads answer 400 and are never retried.
func (h *WebhookHandler) PaymentWebhook(e *core.RequestEvent) error {
	var req paymentWebhookRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Parâmetros inválidos", err)
	}

	result := h.webhooks.Process(e.Request.Context(), req.PaymentID, req.PaymentStatus)
	if !result.OK {
		code := http.StatusBadRequest
		if result.Message == "Venda não encontrada" {
			code = http.StatusNotFound
		}
		return e.JSON(code, result)
	}
	return e.JSON(http.StatusOK, result)
}

// SimulatePayment marks a pending sale as paid without a real provider.
// Registered only when the mock provider is active.
func (h *WebhookHandler) SimulatePayment(e *core.RequestEvent) error {
	var req paymentWebhookRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Parâmetros inválidos", err)
	}
	if req.PaymentStatus == "" {
		req.PaymentStatus = "paid"
	}

	result := h.webhooks.Process(e.Request.Context(), req.PaymentID, req.PaymentStatus)
	if !result.OK {
		return e.JSON(http.StatusBadRequest, result)
	}
	return e.JSON(http.StatusOK, result)
}
