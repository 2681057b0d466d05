package services

import (
	"context"
	"log/slog"

	"github.com/djdiegocosta/ticketbuy/internal/status"
	"github.com/djdiegocosta/ticketbuy/models"
	"github.com/djdiegocosta/ticketbuy/store"
)

type EventService struct {
	store store.Store
}

func NewEventService(st store.Store) *EventService {
	return &EventService{store: st}
}

// Load resolves the event being sold. An explicit id must point at a
// published event; any failure (not found, unpublished, transport) falls back
// to the earliest-id published event. status.ErrNoSellableEvent means the
// whole purchase flow must be disabled.
func (s *EventService) Load(ctx context.Context, eventID string) (*models.Event, error) {
	if eventID != "" {
		event, err := s.store.FindPublishedEvent(ctx, eventID)
		if err == nil {
			return event, nil
		}
		slog.Warn("event lookup failed, falling back to first published",
			"event_id", eventID, "error", err)
	}

	event, err := s.store.FirstPublishedEvent(ctx)
	if err != nil {
		return nil, status.ErrNoSellableEvent
	}
	return event, nil
}
