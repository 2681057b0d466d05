package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/djdiegocosta/ticketbuy/config"
	"github.com/djdiegocosta/ticketbuy/internal/status"
	"github.com/djdiegocosta/ticketbuy/models"
)

// PixOrderRequest carries the fields a provider needs to open a PIX charge.
type PixOrderRequest struct {
	ReferenceID string
	EventName   string
	Quantity    int
	TotalAmount decimal.Decimal
	BuyerName   string
}

type PixOrder struct {
	PaymentID     string
	Status        string
	CopyPasteCode string
	QRCodeBase64  string
}

// PixProvider opens PIX charges. Only the simulated provider exists today;
// the interface keeps the checkout workflow unaware of that.
type PixProvider interface {
	CreateOrder(ctx context.Context, req PixOrderRequest) (*PixOrder, error)
}

// NewPixProvider selects a provider by configuration.
func NewPixProvider(cfg *config.Config) PixProvider {
	switch cfg.PaymentProvider {
	default:
		return &MockPixProvider{copyPasteCode: cfg.PixCopyPasteCode}
	}
}

// Deterministic values of the simulated provider. Clients key on the fixed
// payment id when driving simulated webhooks.
const (
	mockPaymentID    = "pix_test_123456"
	mockQRCodeBase64 = "SIMULATED_QR_CODE_IMAGE_BASE64"
)

// MockPixProvider simulates a PIX gateway without any network call.
type MockPixProvider struct {
	copyPasteCode string
}

func (p *MockPixProvider) CreateOrder(_ context.Context, req PixOrderRequest) (*PixOrder, error) {
	if req.ReferenceID == "" {
		return nil, status.ErrInvalidPaymentOrder
	}
	return &PixOrder{
		PaymentID:     mockPaymentID,
		Status:        models.PaymentStatusPending,
		CopyPasteCode: p.copyPasteCode,
		QRCodeBase64:  mockQRCodeBase64,
	}, nil
}
