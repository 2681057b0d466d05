package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djdiegocosta/ticketbuy/internal/status"
	"github.com/djdiegocosta/ticketbuy/models"
	"github.com/djdiegocosta/ticketbuy/store"
)

func TestEventService_LoadByID(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddEvent(&models.Event{ID: "evt1", Name: "Show A", TicketPrice: 30, Status: models.EventStatusPublished})
	st.AddEvent(&models.Event{ID: "evt2", Name: "Show B", TicketPrice: 40, Status: models.EventStatusPublished})
	svc := NewEventService(st)

	event, err := svc.Load(context.Background(), "evt2")

	require.NoError(t, err)
	assert.Equal(t, "Show B", event.Name)
}

func TestEventService_FallbackWhenIDNotPublished(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddEvent(&models.Event{ID: "evt1", Name: "Show A", TicketPrice: 30, Status: models.EventStatusPublished})
	st.AddEvent(&models.Event{ID: "evt2", Name: "Show B", TicketPrice: 40, Status: models.EventStatusDraft})
	svc := NewEventService(st)

	event, err := svc.Load(context.Background(), "evt2")

	require.NoError(t, err)
	assert.Equal(t, "evt1", event.ID)
}

func TestEventService_FallbackWithoutID(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddEvent(&models.Event{ID: "evt1", Name: "Show A", TicketPrice: 30, Status: models.EventStatusPublished})
	svc := NewEventService(st)

	event, err := svc.Load(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "evt1", event.ID)
}

func TestEventService_NoSellableEvent(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddEvent(&models.Event{ID: "evt1", Name: "Show A", TicketPrice: 30, Status: models.EventStatusDraft})
	svc := NewEventService(st)

	_, err := svc.Load(context.Background(), "evt1")

	assert.ErrorIs(t, err, status.ErrNoSellableEvent)
}
