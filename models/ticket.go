package models

import (
	"fmt"
	"time"
)

const (
	TicketStatusActive    = "active"
	TicketStatusPaid      = "paid"
	TicketStatusCancelled = "cancelled"
)

type Ticket struct {
	ID              string    `json:"id"`
	TicketCode      string    `json:"ticket_code"`
	SaleID          string    `json:"sale_id"`
	EventID         string    `json:"event_id"`
	ParticipantName string    `json:"participant_name"`
	BuyerName       string    `json:"buyer_name"`
	TicketType      string    `json:"ticket_type"`
	Status          string    `json:"status"` // active, paid, cancelled
	CreatedAt       time.Time `json:"created_at"`
}

// QRPayload builds the string encoded into each admission QR code.
func QRPayload(eventID, saleID string, participantIndex int, participantName string) string {
	return fmt.Sprintf("TICKETBUY|EVENT=%s|SALE=%s|TICKET=%d|NAME=%s",
		eventID, saleID, participantIndex, participantName)
}
