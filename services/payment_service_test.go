package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djdiegocosta/ticketbuy/config"
	"github.com/djdiegocosta/ticketbuy/internal/status"
	"github.com/djdiegocosta/ticketbuy/models"
)

func TestNewPixProvider_DefaultsToMock(t *testing.T) {
	provider := NewPixProvider(&config.Config{PaymentProvider: "mock", PixCopyPasteCode: "CODE"})

	assert.IsType(t, &MockPixProvider{}, provider)
}

func TestMockPixProvider_CreateOrder(t *testing.T) {
	provider := &MockPixProvider{copyPasteCode: "PIX-COPY-PASTE"}

	order, err := provider.CreateOrder(context.Background(), PixOrderRequest{
		ReferenceID: "BUY-20250101-120000-ABC",
		EventName:   "Festa Julina DC",
		Quantity:    2,
		TotalAmount: decimal.NewFromInt(100),
		BuyerName:   "Maria Silva",
	})

	require.NoError(t, err)
	assert.Equal(t, "pix_test_123456", order.PaymentID)
	assert.Equal(t, models.PaymentStatusPending, order.Status)
	assert.Equal(t, "PIX-COPY-PASTE", order.CopyPasteCode)
	assert.Equal(t, "SIMULATED_QR_CODE_IMAGE_BASE64", order.QRCodeBase64)
}

func TestMockPixProvider_CreateOrderIsDeterministic(t *testing.T) {
	provider := &MockPixProvider{copyPasteCode: "PIX-COPY-PASTE"}

	first, err := provider.CreateOrder(context.Background(), PixOrderRequest{ReferenceID: "BUY-A"})
	require.NoError(t, err)
	second, err := provider.CreateOrder(context.Background(), PixOrderRequest{ReferenceID: "BUY-B"})
	require.NoError(t, err)

	assert.Equal(t, first.PaymentID, second.PaymentID)
	assert.Equal(t, first.CopyPasteCode, second.CopyPasteCode)
}

func TestMockPixProvider_RequiresReference(t *testing.T) {
	provider := &MockPixProvider{copyPasteCode: "PIX-COPY-PASTE"}

	_, err := provider.CreateOrder(context.Background(), PixOrderRequest{})

	assert.ErrorIs(t, err, status.ErrInvalidPaymentOrder)
}
