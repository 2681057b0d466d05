package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"github.com/djdiegocosta/ticketbuy/models"
)

// PocketBaseStore persists checkout data in the embedded PocketBase
// collections created by the migrations package.
type PocketBaseStore struct {
	app core.App
}

func NewPocketBaseStore(app core.App) *PocketBaseStore {
	return &PocketBaseStore{app: app}
}

func (s *PocketBaseStore) FindPublishedEvent(ctx context.Context, id string) (*models.Event, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"events",
		"id = {:id} && status = {:status}",
		dbx.Params{"id": id, "status": models.EventStatusPublished},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find event %s: %w", id, err)
	}
	return eventFromRecord(record), nil
}

func (s *PocketBaseStore) FirstPublishedEvent(ctx context.Context) (*models.Event, error) {
	records, err := s.app.FindRecordsByFilter(
		"events",
		"status = {:status}",
		"+id",
		1,
		0,
		dbx.Params{"status": models.EventStatusPublished},
	)
	if err != nil {
		return nil, fmt.Errorf("query published events: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return eventFromRecord(records[0]), nil
}

func (s *PocketBaseStore) CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	collection, err := s.app.FindCollectionByNameOrId("sales")
	if err != nil {
		return nil, fmt.Errorf("find sales collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("sale_code", sale.SaleCode)
	record.Set("event_id", sale.EventID)
	record.Set("buyer_name", sale.BuyerName)
	record.Set("buyer_whatsapp", sale.BuyerWhatsapp)
	record.Set("buyer_email", sale.BuyerEmail)
	record.Set("number_of_tickets", sale.NumberOfTickets)
	record.Set("unit_amount", sale.UnitAmount)
	record.Set("total_amount", sale.TotalAmount)
	record.Set("payment_provider", sale.PaymentProvider)
	record.Set("payment_id", sale.PaymentID)
	record.Set("payment_status", sale.PaymentStatus)
	record.Set("origin", sale.Origin)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}
	return saleFromRecord(record), nil
}

func (s *PocketBaseStore) FindSale(ctx context.Context, id string) (*models.Sale, error) {
	record, err := s.app.FindRecordById("sales", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find sale %s: %w", id, err)
	}
	return saleFromRecord(record), nil
}

func (s *PocketBaseStore) UpdateSaleStatus(ctx context.Context, saleID, paymentStatus string) error {
	record, err := s.app.FindRecordById("sales", saleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("find sale %s: %w", saleID, err)
	}
	record.Set("payment_status", paymentStatus)
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return fmt.Errorf("update sale %s: %w", saleID, err)
	}
	return nil
}

func (s *PocketBaseStore) UpdateSaleStatusByPaymentID(ctx context.Context, paymentID, paymentStatus string) (*models.Sale, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"sales",
		"payment_id = {:paymentId}",
		dbx.Params{"paymentId": paymentID},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find sale by payment id %s: %w", paymentID, err)
	}
	record.Set("payment_status", paymentStatus)
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return nil, fmt.Errorf("update sale by payment id %s: %w", paymentID, err)
	}
	return saleFromRecord(record), nil
}

func (s *PocketBaseStore) DeleteSale(ctx context.Context, saleID string) error {
	record, err := s.app.FindRecordById("sales", saleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("find sale %s: %w", saleID, err)
	}
	if err := s.app.DeleteWithContext(ctx, record); err != nil {
		return fmt.Errorf("delete sale %s: %w", saleID, err)
	}
	return nil
}

func (s *PocketBaseStore) PendingSalesCreatedBefore(ctx context.Context, cutoff time.Time) ([]*models.Sale, error) {
	records, err := s.app.FindRecordsByFilter(
		"sales",
		"payment_status = {:status} && created < {:cutoff}",
		"+created",
		0,
		0,
		dbx.Params{
			"status": models.PaymentStatusPending,
			"cutoff": cutoff.UTC().Format(types.DefaultDateLayout),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query pending sales: %w", err)
	}
	sales := make([]*models.Sale, 0, len(records))
	for _, record := range records {
		sales = append(sales, saleFromRecord(record))
	}
	return sales, nil
}

func (s *PocketBaseStore) CreateTickets(ctx context.Context, tickets []*models.Ticket) ([]*models.Ticket, error) {
	if len(tickets) == 0 {
		return nil, fmt.Errorf("no tickets to create")
	}
	collection, err := s.app.FindCollectionByNameOrId("tickets")
	if err != nil {
		return nil, fmt.Errorf("find tickets collection: %w", err)
	}

	created := make([]*models.Ticket, 0, len(tickets))
	for i, ticket := range tickets {
		record := core.NewRecord(collection)
		record.Set("ticket_code", ticket.TicketCode)
		record.Set("sale_id", ticket.SaleID)
		record.Set("event_id", ticket.EventID)
		record.Set("participant_name", ticket.ParticipantName)
		record.Set("buyer_name", ticket.BuyerName)
		record.Set("ticket_type", ticket.TicketType)
		record.Set("status", ticket.Status)

		if err := s.app.SaveWithContext(ctx, record); err != nil {
			// Partial batches are handled by the caller's compensating delete.
			return nil, fmt.Errorf("insert ticket %d/%d: %w", i+1, len(tickets), err)
		}
		created = append(created, ticketFromRecord(record))
	}
	return created, nil
}

func (s *PocketBaseStore) ExistingTicketCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	values := make([]any, len(codes))
	for i, code := range codes {
		values[i] = code
	}

	var rows []dbx.NullStringMap
	err := s.app.DB().
		Select("ticket_code").
		From("tickets").
		Where(dbx.In("ticket_code", values...)).
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("probe ticket codes: %w", err)
	}

	existing := make([]string, 0, len(rows))
	for _, row := range rows {
		if code := row["ticket_code"].String; code != "" {
			existing = append(existing, code)
		}
	}
	return existing, nil
}

func (s *PocketBaseStore) UpdateTicketStatusBySale(ctx context.Context, saleID, ticketStatus string) error {
	records, err := s.app.FindRecordsByFilter(
		"tickets",
		"sale_id = {:saleId}",
		"",
		0,
		0,
		dbx.Params{"saleId": saleID},
	)
	if err != nil {
		return fmt.Errorf("query tickets for sale %s: %w", saleID, err)
	}
	for _, record := range records {
		record.Set("status", ticketStatus)
		if err := s.app.SaveWithContext(ctx, record); err != nil {
			return fmt.Errorf("update ticket %s: %w", record.Id, err)
		}
	}
	return nil
}

func (s *PocketBaseStore) CountTicketsBySale(ctx context.Context, saleID string) (int, error) {
	records, err := s.app.FindRecordsByFilter(
		"tickets",
		"sale_id = {:saleId}",
		"",
		0,
		0,
		dbx.Params{"saleId": saleID},
	)
	if err != nil {
		return 0, fmt.Errorf("count tickets for sale %s: %w", saleID, err)
	}
	return len(records), nil
}

func eventFromRecord(record *core.Record) *models.Event {
	return &models.Event{
		ID:            record.Id,
		Name:          record.GetString("name"),
		Description:   record.GetString("description"),
		Location:      record.GetString("location"),
		EventDate:     record.GetString("event_date"),
		EventTime:     record.GetString("event_time"),
		TicketPrice:   record.GetFloat("ticket_price"),
		FlyerImageURL: record.GetString("flyer_image_url"),
		Status:        record.GetString("status"),
	}
}

func saleFromRecord(record *core.Record) *models.Sale {
	return &models.Sale{
		ID:              record.Id,
		SaleCode:        record.GetString("sale_code"),
		EventID:         record.GetString("event_id"),
		BuyerName:       record.GetString("buyer_name"),
		BuyerWhatsapp:   record.GetString("buyer_whatsapp"),
		BuyerEmail:      record.GetString("buyer_email"),
		NumberOfTickets: record.GetInt("number_of_tickets"),
		UnitAmount:      record.GetFloat("unit_amount"),
		TotalAmount:     record.GetFloat("total_amount"),
		PaymentProvider: record.GetString("payment_provider"),
		PaymentID:       record.GetString("payment_id"),
		PaymentStatus:   record.GetString("payment_status"),
		Origin:          record.GetString("origin"),
		CreatedAt:       record.GetDateTime("created").Time(),
	}
}

func ticketFromRecord(record *core.Record) *models.Ticket {
	return &models.Ticket{
		ID:              record.Id,
		TicketCode:      record.GetString("ticket_code"),
		SaleID:          record.GetString("sale_id"),
		EventID:         record.GetString("event_id"),
		ParticipantName: record.GetString("participant_name"),
		BuyerName:       record.GetString("buyer_name"),
		TicketType:      record.GetString("ticket_type"),
		Status:          record.GetString("status"),
		CreatedAt:       record.GetDateTime("created").Time(),
	}
}
