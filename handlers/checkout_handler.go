package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/djdiegocosta/ticketbuy/internal/status"
	"github.com/djdiegocosta/ticketbuy/services"
)

type CheckoutHandler struct {
	checkout *services.CheckoutService
}

func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type startSessionRequest struct {
	EventID string `json:"event_id"`
}

// StartSession opens a checkout session for the requested (or default
// published) event.
func (h *CheckoutHandler) StartSession(e *core.RequestEvent) error {
	var req startSessionRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Requisição inválida.", err)
	}

	view, err := h.checkout.StartSession(e.Request.Context(), req.EventID)
	if err != nil {
		return checkoutError(err)
	}
	return e.JSON(http.StatusOK, view)
}

type submitBuyerRequest struct {
	Name     string `json:"name"`
	Whatsapp string `json:"whatsapp"`
	Email    string `json:"email"`
}

func (h *CheckoutHandler) SubmitBuyer(e *core.RequestEvent) error {
	var req submitBuyerRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Requisição inválida.", err)
	}

	view, ok, err := h.checkout.SubmitBuyer(e.Request.PathValue("sessionId"), req.Name, req.Whatsapp, req.Email)
	if err != nil {
		return checkoutError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"valid": ok, "session": view})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CheckoutHandler) SetQuantity(e *core.RequestEvent) error {
	var req setQuantityRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Requisição inválida.", err)
	}

	view, err := h.checkout.SetQuantity(e.Request.PathValue("sessionId"), req.Quantity)
	if err != nil {
		return checkoutError(err)
	}
	return e.JSON(http.StatusOK, view)
}

type submitParticipantsRequest struct {
	Names []string `json:"names"`
}

func (h *CheckoutHandler) SubmitParticipants(e *core.RequestEvent) error {
	var req submitParticipantsRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Requisição inválida.", err)
	}

	view, ok, err := h.checkout.SubmitParticipants(e.Request.PathValue("sessionId"), req.Names)
	if err != nil {
		return checkoutError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"valid": ok, "session": view})
}

func (h *CheckoutHandler) GetSummary(e *core.RequestEvent) error {
	quote, err := h.checkout.Summary(e.Request.PathValue("sessionId"))
	if err != nil {
		return checkoutError(err)
	}
	return e.JSON(http.StatusOK, quote)
}

func (h *CheckoutHandler) Pay(e *core.RequestEvent) error {
	intent, err := h.checkout.Pay(e.Request.Context(), e.Request.PathValue("sessionId"))
	if err != nil {
		return checkoutError(err)
	}
	return e.JSON(http.StatusOK, intent)
}

func (h *CheckoutHandler) GetStatus(e *core.RequestEvent) error {
	view, err := h.checkout.View(e.Request.PathValue("sessionId"))
	if err != nil {
		return checkoutError(err)
	}
	return e.JSON(http.StatusOK, view)
}

// checkoutError maps workflow errors to HTTP responses with the user-facing
// pt-BR copy.
func checkoutError(err error) error {
	switch {
	case errors.Is(err, status.ErrSessionNotFound):
		return apis.NewNotFoundError("Sessão de compra não encontrada.", err)
	case errors.Is(err, status.ErrNoSellableEvent):
		return apis.NewNotFoundError("Nenhum evento disponível para vendas no momento.", err)
	case errors.Is(err, status.ErrEventUnavailable):
		return apis.NewApiError(http.StatusConflict, "Status: Este evento não está ativo para vendas no momento.", err)
	case errors.Is(err, status.ErrEventCheckFailed):
		return apis.NewApiError(http.StatusBadGateway, "Não foi possível verificar o status do evento. Tente novamente.", err)
	case errors.Is(err, status.ErrBuyerStepInvalid):
		return apis.NewBadRequestError("Preencha seus dados corretamente antes de prosseguir.", err)
	case errors.Is(err, status.ErrParticipantsStepInvalid):
		return apis.NewBadRequestError("Informe nome e sobrenome para todos os participantes.", err)
	case errors.Is(err, status.ErrMissingBuyerName):
		return apis.NewBadRequestError("Informe o nome do comprador antes de prosseguir com o pagamento.", err)
	case errors.Is(err, status.ErrInvalidQuantity):
		return apis.NewBadRequestError("Quantidade de ingressos inválida. Selecione pelo menos 1 ingresso.", err)
	case errors.Is(err, status.ErrInvalidTicketPrice):
		return apis.NewApiError(http.StatusConflict, "Preço do ingresso inválido. Tente novamente mais tarde.", err)
	case errors.Is(err, status.ErrCheckoutCompleted):
		return apis.NewApiError(http.StatusConflict, "Esta compra já foi concluída.", err)
	case errors.Is(err, status.ErrInvalidPaymentOrder):
		return apis.NewApiError(http.StatusBadGateway, "Não foi possível iniciar o pagamento PIX. Tente novamente.", err)
	case errors.Is(err, status.ErrMissingSaleID):
		return apis.NewApiError(http.StatusBadGateway, "Erro ao registrar a venda. Tente novamente.", err)
	case errors.Is(err, status.ErrTicketsRolledBack):
		return apis.NewApiError(http.StatusConflict, "Erro ao registrar ingressos. Operação revertida. Tente novamente.", err)
	default:
		return apis.NewApiError(http.StatusInternalServerError, "Erro interno. Tente novamente.", err)
	}
}
