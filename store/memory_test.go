package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djdiegocosta/ticketbuy/models"
)

func TestMemoryStore_FindPublishedEvent(t *testing.T) {
	st := NewMemoryStore()
	st.AddEvent(&models.Event{ID: "evt1", Status: models.EventStatusPublished})
	st.AddEvent(&models.Event{ID: "evt2", Status: models.EventStatusDraft})

	event, err := st.FindPublishedEvent(context.Background(), "evt1")
	require.NoError(t, err)
	assert.Equal(t, "evt1", event.ID)

	_, err = st.FindPublishedEvent(context.Background(), "evt2")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.FindPublishedEvent(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_FirstPublishedEvent(t *testing.T) {
	st := NewMemoryStore()
	st.AddEvent(&models.Event{ID: "evt2", Status: models.EventStatusPublished})
	st.AddEvent(&models.Event{ID: "evt1", Status: models.EventStatusPublished})

	event, err := st.FirstPublishedEvent(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "evt1", event.ID)
}

func TestMemoryStore_SaleLifecycle(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	sale, err := st.CreateSale(ctx, &models.Sale{
		SaleCode:      "BUY-20250101-120000-ABC",
		PaymentID:     "pix_test_123456",
		PaymentStatus: models.PaymentStatusPending,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sale.ID)

	updated, err := st.UpdateSaleStatusByPaymentID(ctx, "pix_test_123456", models.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, updated.ID)

	found, err := st.FindSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, found.PaymentStatus)

	require.NoError(t, st.DeleteSale(ctx, sale.ID))
	_, err = st.FindSale(ctx, sale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.DeleteSale(ctx, sale.ID), ErrNotFound)
}

func TestMemoryStore_UpdateSaleStatusByPaymentID_NotFound(t *testing.T) {
	st := NewMemoryStore()

	_, err := st.UpdateSaleStatusByPaymentID(context.Background(), "pix_unknown", models.PaymentStatusPaid)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_PendingSalesCreatedBefore(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	pending, err := st.CreateSale(ctx, &models.Sale{SaleCode: "BUY-A", PaymentStatus: models.PaymentStatusPending})
	require.NoError(t, err)
	_, err = st.CreateSale(ctx, &models.Sale{SaleCode: "BUY-B", PaymentStatus: models.PaymentStatusPaid})
	require.NoError(t, err)

	sales, err := st.PendingSalesCreatedBefore(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, pending.ID, sales[0].ID)

	sales, err = st.PendingSalesCreatedBefore(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestMemoryStore_Tickets(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	created, err := st.CreateTickets(ctx, []*models.Ticket{
		{TicketCode: "TICKET-A", SaleID: "sale_1", Status: models.TicketStatusActive},
		{TicketCode: "TICKET-B", SaleID: "sale_1", Status: models.TicketStatusActive},
		{TicketCode: "TICKET-C", SaleID: "sale_2", Status: models.TicketStatusActive},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	existing, err := st.ExistingTicketCodes(ctx, []string{"TICKET-B", "TICKET-Z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"TICKET-B"}, existing)

	count, err := st.CountTicketsBySale(ctx, "sale_1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, st.UpdateTicketStatusBySale(ctx, "sale_1", models.TicketStatusCancelled))
	for _, ticket := range st.TicketsBySale("sale_1") {
		assert.Equal(t, models.TicketStatusCancelled, ticket.Status)
	}
	for _, ticket := range st.TicketsBySale("sale_2") {
		assert.Equal(t, models.TicketStatusActive, ticket.Status)
	}
}

func TestMemoryStore_CreateTicketsEmpty(t *testing.T) {
	st := NewMemoryStore()

	_, err := st.CreateTickets(context.Background(), nil)

	assert.Error(t, err)
}
