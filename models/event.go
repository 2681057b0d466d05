package models

// Event status values relevant to the checkout. Anything other than
// "published" blocks sales.
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
)

type Event struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	EventDate     string  `json:"event_date"`
	EventTime     string  `json:"event_time"`
	TicketPrice   float64 `json:"ticket_price"`
	FlyerImageURL string  `json:"flyer_image_url,omitempty"`
	Status        string  `json:"status"` // draft, published, archived
}

// Sellable reports whether the event currently accepts purchases. The status
// can change between page load and purchase, so it must be re-checked right
// before charging.
func (e *Event) Sellable() bool {
	return e != nil && e.Status == EventStatusPublished
}
