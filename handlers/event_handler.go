package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"github.com/djdiegocosta/ticketbuy/services"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// GetActiveEvent returns the event the checkout currently sells: the one in
// the ?id= query when it is published, otherwise the published fallback.
func (h *EventHandler) GetActiveEvent(e *core.RequestEvent) error {
	event, err := h.events.Load(e.Request.Context(), e.Request.URL.Query().Get("id"))
	if err != nil {
		return checkoutError(err)
	}
	return e.JSON(http.StatusOK, event)
}
