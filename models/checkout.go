package models

// Buyer is the step 1 snapshot. It lives only inside the checkout session
// that captured it.
type Buyer struct {
	Name     string `json:"name"`
	Whatsapp string `json:"whatsapp"`
	Email    string `json:"email,omitempty"`
}

// Participant is one named attendee, 1-based indexed. One entry exists per
// purchased ticket; the list is rebuilt whenever the quantity changes.
type Participant struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	TicketID   string `json:"ticket_id,omitempty"`
	TicketCode string `json:"ticket_code,omitempty"`
}

// IssuedTicket is the per-ticket success projection shown after payment is
// confirmed.
type IssuedTicket struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	TicketCode string `json:"ticket_code"`
	QRPayload  string `json:"qr_payload"`
}
