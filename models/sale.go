package models

import (
	"time"
)

// Payment status values that drive local state transitions. The provider may
// report other strings; those are stored verbatim and only reflected in the
// status label.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusExpired = "expired"
)

const SaleOrigin = "TicketBuy"

type Sale struct {
	ID              string    `json:"id"`
	SaleCode        string    `json:"sale_code"`
	EventID         string    `json:"event_id"`
	BuyerName       string    `json:"buyer_name"`
	BuyerWhatsapp   string    `json:"buyer_whatsapp"`
	BuyerEmail      string    `json:"buyer_email,omitempty"`
	NumberOfTickets int       `json:"number_of_tickets"`
	UnitAmount      float64   `json:"unit_amount"`
	TotalAmount     float64   `json:"total_amount"`
	PaymentProvider string    `json:"payment_provider"`
	PaymentID       string    `json:"payment_id"`
	PaymentStatus   string    `json:"payment_status"` // pending, paid, expired, ...
	Origin          string    `json:"origin"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewSaleNotification is the body POSTed to the downstream automation webhook
// whenever a sale is created.
type NewSaleNotification struct {
	Event           string  `json:"event"`
	SaleCode        string  `json:"sale_code"`
	TotalAmount     float64 `json:"total_amount"`
	BuyerName       string  `json:"buyer_name"`
	BuyerWhatsapp   string  `json:"buyer_whatsapp"`
	NumberOfTickets int     `json:"number_of_tickets"`
	Origin          string  `json:"origin"`
}

func (s *Sale) Notification() NewSaleNotification {
	buyerName := s.BuyerName
	if buyerName == "" {
		buyerName = "Não informado"
	}
	return NewSaleNotification{
		Event:           "new_sale",
		SaleCode:        s.SaleCode,
		TotalAmount:     s.TotalAmount,
		BuyerName:       buyerName,
		BuyerWhatsapp:   s.BuyerWhatsapp,
		NumberOfTickets: s.NumberOfTickets,
		Origin:          "ticketbuy",
	}
}
