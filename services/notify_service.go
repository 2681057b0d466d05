package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	pubnub "github.com/pubnub/go"

	"github.com/djdiegocosta/ticketbuy/config"
	"github.com/djdiegocosta/ticketbuy/models"
)

// NotifyService handles the best-effort side channels: the new-sale webhook
// POST and realtime session updates. Failures are logged, never propagated.
type NotifyService struct {
	webhookURL string
	client     *http.Client
	pubnub     *pubnub.PubNub
}

func NewNotifyService(cfg *config.Config, pn *pubnub.PubNub) *NotifyService {
	return &NotifyService{
		webhookURL: cfg.NewSaleWebhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		pubnub:     pn,
	}
}

// AnnounceNewSale posts the new-sale event to the downstream automation hook.
// Fire-and-forget: runs after the sale is committed, in its own goroutine,
// with no retry and no effect on the checkout flow.
func (s *NotifyService) AnnounceNewSale(sale *models.Sale) {
	if s.webhookURL == "" || sale == nil || sale.SaleCode == "" {
		return
	}
	notification := sale.Notification()

	go func() {
		body, err := json.Marshal(notification)
		if err != nil {
			slog.Error("marshal new sale notification", "sale_code", sale.SaleCode, "error", err)
			return
		}
		resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
		if err != nil {
			slog.Error("new sale notification failed", "sale_code", sale.SaleCode, "error", err)
			return
		}
		resp.Body.Close()
	}()
}

// PublishSessionStatus pushes a payment status change to the session's
// realtime channel so an open checkout page can react without polling.
func (s *NotifyService) PublishSessionStatus(sessionID, saleID, paymentStatus string) {
	if s.pubnub == nil || sessionID == "" {
		return
	}
	channel := fmt.Sprintf("checkout-%s", sessionID)
	go func() {
		s.pubnub.Publish().
			Channel(channel).
			Message(map[string]any{
				"type":    "payment_status",
				"sale_id": saleID,
				"status":  paymentStatus,
			}).
			Execute()
	}()
}
