package store

import (
	"context"
	"errors"
	"time"

	"github.com/djdiegocosta/ticketbuy/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("store: record not found")

// Store abstracts the hosted backend holding events, sales and tickets.
// Create operations must return the created rows including the
// store-assigned ids; a sale without an id is unusable because tickets
// reference it.
type Store interface {
	// Events.
	FindPublishedEvent(ctx context.Context, id string) (*models.Event, error)
	FirstPublishedEvent(ctx context.Context) (*models.Event, error)

	// Sales.
	CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	FindSale(ctx context.Context, id string) (*models.Sale, error)
	UpdateSaleStatus(ctx context.Context, saleID, paymentStatus string) error
	UpdateSaleStatusByPaymentID(ctx context.Context, paymentID, paymentStatus string) (*models.Sale, error)
	DeleteSale(ctx context.Context, saleID string) error
	PendingSalesCreatedBefore(ctx context.Context, cutoff time.Time) ([]*models.Sale, error)

	// Tickets.
	CreateTickets(ctx context.Context, tickets []*models.Ticket) ([]*models.Ticket, error)
	ExistingTicketCodes(ctx context.Context, codes []string) ([]string, error)
	UpdateTicketStatusBySale(ctx context.Context, saleID, ticketStatus string) error
	CountTicketsBySale(ctx context.Context, saleID string) (int, error)
}
