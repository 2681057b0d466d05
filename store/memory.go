package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/djdiegocosta/ticketbuy/models"
)

// MemoryStore is an in-memory Store used for local development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	events  map[string]*models.Event
	sales   map[string]*models.Sale
	tickets map[string]*models.Ticket
	seq     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events:  make(map[string]*models.Event),
		sales:   make(map[string]*models.Sale),
		tickets: make(map[string]*models.Ticket),
	}
}

// AddEvent seeds an event.
func (s *MemoryStore) AddEvent(event *models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *event
	s.events[event.ID] = &copied
}

func (s *MemoryStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%04d", prefix, s.seq)
}

func (s *MemoryStore) FindPublishedEvent(ctx context.Context, id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok || event.Status != models.EventStatusPublished {
		return nil, ErrNotFound
	}
	copied := *event
	return &copied, nil
}

func (s *MemoryStore) FirstPublishedEvent(ctx context.Context) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.events))
	for id, event := range s.events {
		if event.Status == models.EventStatusPublished {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	sort.Strings(ids)
	copied := *s.events[ids[0]]
	return &copied, nil
}

func (s *MemoryStore) CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sale
	copied.ID = s.nextID("sale_")
	copied.CreatedAt = time.Now()
	s.sales[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (s *MemoryStore) FindSale(ctx context.Context, id string) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.sales[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *sale
	return &copied, nil
}

func (s *MemoryStore) UpdateSaleStatus(ctx context.Context, saleID, paymentStatus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.sales[saleID]
	if !ok {
		return ErrNotFound
	}
	sale.PaymentStatus = paymentStatus
	return nil
}

func (s *MemoryStore) UpdateSaleStatusByPaymentID(ctx context.Context, paymentID, paymentStatus string) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sales))
	for id := range s.sales {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if s.sales[id].PaymentID == paymentID {
			s.sales[id].PaymentStatus = paymentStatus
			copied := *s.sales[id]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteSale(ctx context.Context, saleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[saleID]; !ok {
		return ErrNotFound
	}
	delete(s.sales, saleID)
	return nil
}

func (s *MemoryStore) PendingSalesCreatedBefore(ctx context.Context, cutoff time.Time) ([]*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Sale
	for _, sale := range s.sales {
		if sale.PaymentStatus == models.PaymentStatusPending && sale.CreatedAt.Before(cutoff) {
			copied := *sale
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *MemoryStore) CreateTickets(ctx context.Context, tickets []*models.Ticket) ([]*models.Ticket, error) {
	if len(tickets) == 0 {
		return nil, fmt.Errorf("no tickets to create")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	created := make([]*models.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		copied := *ticket
		copied.ID = s.nextID("ticket_")
		copied.CreatedAt = time.Now()
		s.tickets[copied.ID] = &copied
		result := copied
		created = append(created, &result)
	}
	return created, nil
}

func (s *MemoryStore) ExistingTicketCodes(ctx context.Context, codes []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]bool, len(codes))
	for _, code := range codes {
		wanted[code] = true
	}
	var existing []string
	for _, ticket := range s.tickets {
		if wanted[ticket.TicketCode] {
			existing = append(existing, ticket.TicketCode)
		}
	}
	sort.Strings(existing)
	return existing, nil
}

func (s *MemoryStore) UpdateTicketStatusBySale(ctx context.Context, saleID, ticketStatus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ticket := range s.tickets {
		if ticket.SaleID == saleID {
			ticket.Status = ticketStatus
		}
	}
	return nil
}

func (s *MemoryStore) CountTicketsBySale(ctx context.Context, saleID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, ticket := range s.tickets {
		if ticket.SaleID == saleID {
			count++
		}
	}
	return count, nil
}

// TicketsBySale returns the tickets of one sale ordered by id. Test helper.
func (s *MemoryStore) TicketsBySale(saleID string) []*models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Ticket
	for _, ticket := range s.tickets {
		if ticket.SaleID == saleID {
			copied := *ticket
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
