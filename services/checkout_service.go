package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/djdiegocosta/ticketbuy/config"
	"github.com/djdiegocosta/ticketbuy/internal/status"
	"github.com/djdiegocosta/ticketbuy/models"
	"github.com/djdiegocosta/ticketbuy/monitoring"
	"github.com/djdiegocosta/ticketbuy/store"
	"github.com/djdiegocosta/ticketbuy/utils"
)

type CheckoutState string

const (
	StateIdle              CheckoutState = "idle"
	StateBuyerValid        CheckoutState = "buyer_valid"
	StateParticipantsValid CheckoutState = "participants_valid"
	StateQuoting           CheckoutState = "quoting"
	StateSaleCreated       CheckoutState = "sale_created"
	StatePendingPayment    CheckoutState = "pending_payment"
	StatePaid              CheckoutState = "paid"
	StateExpired           CheckoutState = "expired"
	StateFailed            CheckoutState = "failed"
)

// Session owns every piece of checkout state for one buyer. Nothing here is
// shared across sessions and nothing survives a session reset.
type Session struct {
	mu sync.Mutex

	id           string
	event        *models.Event
	buyer        models.Buyer
	quantity     int
	participants []models.Participant
	state        CheckoutState
	fieldErrors  FieldErrors

	sale                 *models.Sale
	tickets              []models.IssuedTicket
	pixCopyPasteCode     string
	statusMessage        string
	codeRetriesExhausted bool

	remaining int
	stopTimer chan struct{}
	completed bool // pay control stays disabled once tickets exist

	lastActivity  time.Time
	gaugeReleased bool
}

// touch marks buyer activity. The reaper only evicts sessions that have been
// quiet past the configured TTL. Caller holds the session lock.
func (sess *Session) touch() {
	sess.lastActivity = time.Now()
}

// releaseActiveGauge decrements the active-sessions gauge exactly once per
// session, whichever of payment, expiry or eviction happens first. Caller
// holds the session lock.
func (sess *Session) releaseActiveGauge() {
	if sess.gaugeReleased {
		return
	}
	sess.gaugeReleased = true
	monitoring.DecActiveSessions()
}

// SessionView is an immutable snapshot handed to the presentation layer.
type SessionView struct {
	ID               string                `json:"session_id"`
	State            CheckoutState         `json:"state"`
	Event            *models.Event         `json:"event,omitempty"`
	Buyer            models.Buyer          `json:"buyer"`
	Quantity         int                   `json:"quantity"`
	Participants     []models.Participant  `json:"participants"`
	Errors           FieldErrors           `json:"errors,omitempty"`
	StatusMessage    string                `json:"status_message,omitempty"`
	PixCopyPasteCode string                `json:"pix_copy_paste_code,omitempty"`
	RemainingSeconds int                   `json:"remaining_seconds"`
	Sale             *models.Sale          `json:"sale,omitempty"`
	Tickets          []models.IssuedTicket `json:"tickets,omitempty"`
	PayEnabled       bool                  `json:"pay_enabled"`

	// Set when ticket codes were issued without a clean uniqueness probe.
	CodeRetriesExhausted bool `json:"code_retries_exhausted,omitempty"`
}

// Quote is the step 3 price summary.
type Quote struct {
	EventName string          `json:"event_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// PaymentIntent is returned by Pay once the reservation is in place.
type PaymentIntent struct {
	SaleID               string          `json:"sale_id"`
	SaleCode             string          `json:"sale_code"`
	PaymentID            string          `json:"payment_id"`
	PixCopyPasteCode     string          `json:"pix_copy_paste_code"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	ExpiresInSeconds     int             `json:"expires_in_seconds"`
	CodeRetriesExhausted bool            `json:"code_retries_exhausted"`
	Message              string          `json:"message"`
}

type CheckoutService struct {
	store    store.Store
	events   *EventService
	payments PixProvider
	notifier *NotifyService
	cfg      *config.Config

	mu       sync.RWMutex
	sessions map[string]*Session

	// Seams for deterministic tests.
	genCode      func(prefix string) (string, error)
	tickInterval time.Duration
}

func NewCheckoutService(st store.Store, events *EventService, payments PixProvider, notifier *NotifyService, cfg *config.Config) *CheckoutService {
	return &CheckoutService{
		store:        st,
		events:       events,
		payments:     payments,
		notifier:     notifier,
		cfg:          cfg,
		sessions:     make(map[string]*Session),
		genCode:      utils.GenerateReservationCode,
		tickInterval: time.Second,
	}
}

// StartSession resolves the event being sold and opens a fresh session for
// it. status.ErrNoSellableEvent means no session is created and the caller
// must disable the whole flow.
func (s *CheckoutService) StartSession(ctx context.Context, eventID string) (SessionView, error) {
	event, err := s.events.Load(ctx, eventID)
	if err != nil {
		monitoring.RecordCheckoutOperation("start_session", "no_event")
		return SessionView{}, err
	}

	id, err := utils.GenerateCode(8)
	if err != nil {
		return SessionView{}, fmt.Errorf("generate session id: %w", err)
	}

	sess := &Session{
		id:           id,
		event:        event,
		quantity:     1,
		state:        StateIdle,
		fieldErrors:  FieldErrors{},
		lastActivity: time.Now(),
	}
	sess.rebuildParticipants(nil)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	monitoring.IncActiveSessions()
	monitoring.RecordCheckoutOperation("start_session", "ok")
	return s.view(sess), nil
}

func (s *CheckoutService) session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, status.ErrSessionNotFound
	}
	return sess, nil
}

// View returns a snapshot of the session for rendering.
func (s *CheckoutService) View(sessionID string) (SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.viewLocked(sess), nil
}

// SubmitBuyer runs step 1 validation and, on success, snapshots the buyer
// into the session with the name normalized to title case.
func (s *CheckoutService) SubmitBuyer(sessionID, name, whatsapp, email string) (SessionView, bool, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.touch()
	sess.fieldErrors = ValidateBuyer(name, whatsapp)
	if len(sess.fieldErrors) > 0 {
		return s.viewLocked(sess), false, nil
	}

	sess.buyer = models.Buyer{
		Name:     utils.TitleCaseName(name),
		Whatsapp: utils.OnlyDigits(whatsapp),
		Email:    strings.TrimSpace(email),
	}
	if sess.state == StateIdle {
		sess.state = StateBuyerValid
	}
	return s.viewLocked(sess), true, nil
}

// SetQuantity clamps the requested quantity and rebuilds the participant
// list. Entries are always reset: stale names beyond the new quantity are
// discarded, and remaining slots start blank again.
func (s *CheckoutService) SetQuantity(sessionID string, quantity int) (SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.touch()
	if quantity < 1 {
		quantity = 1
	}
	if quantity > s.cfg.MaxTicketQuantity {
		quantity = s.cfg.MaxTicketQuantity
	}
	sess.quantity = quantity
	sess.rebuildParticipants(nil)
	if sess.state == StateParticipantsValid {
		sess.state = StateBuyerValid
	}
	return s.viewLocked(sess), nil
}

// SubmitParticipants runs step 2 validation. The in-memory list is rebuilt
// from the submitted names whether or not they validate.
func (s *CheckoutService) SubmitParticipants(sessionID string, names []string) (SessionView, bool, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.touch()
	sess.rebuildParticipants(names)
	sess.fieldErrors = ValidateParticipants(names)
	if len(names) != sess.quantity {
		sess.fieldErrors[FieldParticipants] = "Informe nome e sobrenome para todos os participantes."
	}
	if len(sess.fieldErrors) > 0 {
		return s.viewLocked(sess), false, nil
	}

	if sess.stepOneValid() {
		sess.state = StateParticipantsValid
	}
	return s.viewLocked(sess), true, nil
}

// Summary computes the step 3 quote: total = quantity × unit price, rounded
// to centavos.
func (s *CheckoutService) Summary(sessionID string) (Quote, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return Quote{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	unit := decimal.NewFromFloat(sess.event.TicketPrice)
	return Quote{
		EventName: sess.event.Name,
		Quantity:  sess.quantity,
		UnitPrice: unit,
		Total:     unit.Mul(decimal.NewFromInt(int64(sess.quantity))).Round(2),
	}, nil
}

// Pay drives the reservation workflow: entry guard, preflight business
// checks, event freshness, quote, mock PIX order, sale creation, ticket
// batch with compensating rollback, then the reservation countdown. It runs
// at most once per session; once tickets exist the entry point stays
// disabled.
func (s *CheckoutService) Pay(ctx context.Context, sessionID string) (*PaymentIntent, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.touch()
	if sess.completed {
		return nil, status.ErrCheckoutCompleted
	}

	// Entry guard: both steps must validate right now, no network otherwise.
	if errs := ValidateBuyer(sess.buyer.Name, sess.buyer.Whatsapp); len(errs) > 0 {
		sess.fieldErrors = errs
		monitoring.RecordCheckoutOperation("pay", "step1_invalid")
		return nil, status.ErrBuyerStepInvalid
	}
	names := sess.participantNames()
	if errs := ValidateParticipants(names); len(errs) > 0 || len(names) != sess.quantity {
		sess.fieldErrors = ValidateParticipants(names)
		sess.fieldErrors[FieldParticipants] = "Informe nome e sobrenome para todos os participantes."
		monitoring.RecordCheckoutOperation("pay", "step2_invalid")
		return nil, status.ErrParticipantsStepInvalid
	}

	// Preflight business checks, each with its own abort reason.
	if strings.TrimSpace(sess.buyer.Name) == "" {
		return nil, status.ErrMissingBuyerName
	}
	if sess.quantity < 1 {
		return nil, status.ErrInvalidQuantity
	}
	if sess.event == nil || sess.event.ID == "" {
		return nil, status.ErrEventUnavailable
	}

	// Freshness: the event may have been unpublished since page load.
	fresh, err := s.store.FindPublishedEvent(ctx, sess.event.ID)
	if err != nil {
		monitoring.RecordCheckoutOperation("pay", "stale_event")
		if err == store.ErrNotFound {
			return nil, status.ErrEventUnavailable
		}
		slog.Error("event freshness check failed", "event_id", sess.event.ID, "error", err)
		return nil, status.ErrEventCheckFailed
	}
	sess.event = fresh

	if fresh.TicketPrice <= 0 {
		monitoring.RecordCheckoutOperation("pay", "bad_price")
		return nil, status.ErrInvalidTicketPrice
	}

	sess.state = StateQuoting
	unit := decimal.NewFromFloat(fresh.TicketPrice)
	total := unit.Mul(decimal.NewFromInt(int64(sess.quantity))).Round(2)

	saleCode, err := s.genCode("BUY")
	if err != nil {
		return nil, fmt.Errorf("generate sale code: %w", err)
	}

	order, err := s.payments.CreateOrder(ctx, PixOrderRequest{
		ReferenceID: saleCode,
		EventName:   fresh.Name,
		Quantity:    sess.quantity,
		TotalAmount: total,
		BuyerName:   sess.buyer.Name,
	})
	if err != nil {
		monitoring.RecordCheckoutOperation("pay", "payment_order_failed")
		return nil, fmt.Errorf("create pix order: %w", err)
	}
	if order.PaymentID == "" {
		return nil, status.ErrInvalidPaymentOrder
	}

	sale, err := s.store.CreateSale(ctx, &models.Sale{
		SaleCode:        saleCode,
		EventID:         fresh.ID,
		BuyerName:       sess.buyer.Name,
		BuyerWhatsapp:   sess.buyer.Whatsapp,
		BuyerEmail:      sess.buyer.Email,
		NumberOfTickets: sess.quantity,
		UnitAmount:      fresh.TicketPrice,
		TotalAmount:     total.InexactFloat64(),
		PaymentProvider: "PIX",
		PaymentID:       order.PaymentID,
		PaymentStatus:   models.PaymentStatusPending,
		Origin:          models.SaleOrigin,
	})
	if err != nil {
		// Nothing was persisted, the buyer may simply retry.
		monitoring.RecordCheckoutOperation("pay", "sale_failed")
		return nil, fmt.Errorf("create sale: %w", err)
	}
	if sale.ID == "" {
		monitoring.RecordCheckoutOperation("pay", "sale_missing_id")
		return nil, status.ErrMissingSaleID
	}
	sess.state = StateSaleCreated
	monitoring.RecordSaleCreated()

	// Best-effort side channel, after the authoritative insert committed.
	s.notifier.AnnounceNewSale(sale)

	codes, exhausted, err := s.assignTicketCodes(ctx, sess.quantity)
	if err != nil {
		return nil, fmt.Errorf("generate ticket codes: %w", err)
	}

	tickets := make([]*models.Ticket, len(sess.participants))
	for i, p := range sess.participants {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("Participante %d", p.Index)
		}
		tickets[i] = &models.Ticket{
			TicketCode:      codes[i],
			SaleID:          sale.ID,
			EventID:         fresh.ID,
			ParticipantName: name,
			BuyerName:       sess.buyer.Name,
			TicketType:      "sell",
			Status:          models.TicketStatusActive,
		}
	}

	created, err := s.store.CreateTickets(ctx, tickets)
	if err != nil {
		slog.Error("ticket batch creation failed, reverting sale", "sale_id", sale.ID, "error", err)
		monitoring.RecordSaleRollback()
		if delErr := s.store.DeleteSale(ctx, sale.ID); delErr != nil {
			// Orphan sale left behind; the reconciliation sweep picks it up.
			slog.Error("compensating sale delete failed", "sale_id", sale.ID, "error", delErr)
		}
		sess.state = StateFailed
		sess.statusMessage = "Erro ao registrar ingressos. Operação revertida. Tente novamente."
		monitoring.RecordCheckoutOperation("pay", "tickets_rolled_back")
		return nil, status.ErrTicketsRolledBack
	}
	monitoring.RecordTicketsCreated(len(created))

	for i, ticket := range created {
		if i < len(sess.participants) {
			sess.participants[i].TicketID = ticket.ID
			sess.participants[i].TicketCode = ticket.TicketCode
		}
	}

	sess.sale = sale
	sess.state = StatePendingPayment
	sess.completed = true
	sess.pixCopyPasteCode = order.CopyPasteCode
	sess.codeRetriesExhausted = exhausted
	sess.statusMessage = "Seu ingresso foi reservado. Complete o pagamento em até 20 minutos."
	sess.remaining = int(s.cfg.ReservationWindow.Seconds())
	sess.stopTimer = make(chan struct{})
	go s.runCountdown(sess)

	monitoring.RecordCheckoutOperation("pay", "ok")
	return &PaymentIntent{
		SaleID:               sale.ID,
		SaleCode:             sale.SaleCode,
		PaymentID:            sale.PaymentID,
		PixCopyPasteCode:     order.CopyPasteCode,
		TotalAmount:          total,
		ExpiresInSeconds:     sess.remaining,
		CodeRetriesExhausted: exhausted,
		Message:              sess.statusMessage,
	}, nil
}

// assignTicketCodes generates one candidate code per ticket and probes the
// store for collisions, regenerating only the colliding codes, up to the
// configured number of rounds. When rounds are exhausted (or the probe
// itself fails) it proceeds with the current codes and reports that via the
// second return value instead of blocking the buyer.
func (s *CheckoutService) assignTicketCodes(ctx context.Context, count int) ([]string, bool, error) {
	codes := make([]string, count)
	for i := range codes {
		code, err := s.genCode("TICKET")
		if err != nil {
			return nil, false, err
		}
		codes[i] = code
	}

	for attempt := 0; attempt < s.cfg.TicketCodeAttempts; attempt++ {
		existing, err := s.store.ExistingTicketCodes(ctx, codes)
		if err != nil {
			slog.Warn("ticket code collision probe failed, proceeding", "error", err)
			return codes, true, nil
		}
		if len(existing) == 0 {
			return codes, false, nil
		}

		taken := make(map[string]bool, len(existing))
		for _, code := range existing {
			taken[code] = true
		}
		regenerated := 0
		for i, code := range codes {
			if !taken[code] {
				continue
			}
			fresh, err := s.genCode("TICKET")
			if err != nil {
				return nil, false, err
			}
			codes[i] = fresh
			regenerated++
		}
		monitoring.RecordTicketCodeRetries(regenerated)
	}

	slog.Warn("ticket code retries exhausted, proceeding with residual collision risk")
	return codes, true, nil
}

func (s *CheckoutService) runCountdown(sess *Session) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-sess.stopTimer:
			return
		case <-ticker.C:
			if s.countdownTick(context.Background(), sess) {
				return
			}
		}
	}
}

// countdownTick advances the reservation countdown by one second and, when
// it reaches zero, fires the expiry transition exactly once. Returns true
// when the countdown is finished.
func (s *CheckoutService) countdownTick(ctx context.Context, sess *Session) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != StatePendingPayment {
		return true
	}
	sess.remaining--
	if sess.remaining > 0 {
		return false
	}

	sess.remaining = 0
	sess.state = StateExpired
	sess.statusMessage = "Tempo esgotado — a reserva expirou."
	if sess.sale != nil {
		if err := s.store.UpdateSaleStatus(ctx, sess.sale.ID, models.PaymentStatusExpired); err != nil {
			slog.Error("update sale after expiry", "sale_id", sess.sale.ID, "error", err)
		} else {
			sess.sale.PaymentStatus = models.PaymentStatusExpired
		}
		if err := s.store.UpdateTicketStatusBySale(ctx, sess.sale.ID, models.TicketStatusCancelled); err != nil {
			slog.Error("cancel tickets after expiry", "sale_id", sess.sale.ID, "error", err)
		}
	}
	sess.touch()
	monitoring.RecordReservationExpired()
	sess.releaseActiveGauge()
	return true
}

// HandlePaymentUpdate drives the session whose sale matches an external
// payment notification. "paid" before expiry wins over the countdown; any
// other status only refreshes the status label.
func (s *CheckoutService) HandlePaymentUpdate(saleID, paymentID, paymentStatus string) {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()

	for _, sess := range sessions {
		sess.mu.Lock()
		if sess.sale == nil || (sess.sale.ID != saleID && sess.sale.PaymentID != paymentID) {
			sess.mu.Unlock()
			continue
		}

		sess.touch()
		sess.sale.PaymentStatus = paymentStatus
		if paymentStatus == models.PaymentStatusPaid {
			if sess.state == StatePendingPayment {
				if sess.stopTimer != nil {
					close(sess.stopTimer)
					sess.stopTimer = nil
				}
				sess.state = StatePaid
				sess.statusMessage = "Pagamento aprovado"
				sess.tickets = issuedTickets(sess)
				sess.releaseActiveGauge()
			}
		} else {
			sess.statusMessage = fmt.Sprintf("Status do pagamento: %s", paymentStatus)
		}
		sessionID := sess.id
		sess.mu.Unlock()

		s.notifier.PublishSessionStatus(sessionID, saleID, paymentStatus)
		return
	}
}

// SweepOrphanSales periodically reconciles sales whose compensating delete
// failed: pending sales older than the grace period with zero tickets are
// removed.
func (s *CheckoutService) SweepOrphanSales(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *CheckoutService) sweepOnce(ctx context.Context) {
	cutoff := time.Now().Add(-s.cfg.SweepGracePeriod)
	sales, err := s.store.PendingSalesCreatedBefore(ctx, cutoff)
	if err != nil {
		slog.Error("orphan sale sweep query failed", "error", err)
		return
	}
	for _, sale := range sales {
		count, err := s.store.CountTicketsBySale(ctx, sale.ID)
		if err != nil {
			slog.Error("orphan sale sweep count failed", "sale_id", sale.ID, "error", err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := s.store.DeleteSale(ctx, sale.ID); err != nil {
			slog.Error("orphan sale sweep delete failed", "sale_id", sale.ID, "error", err)
			continue
		}
		slog.Info("removed orphan sale", "sale_id", sale.ID, "sale_code", sale.SaleCode)
		monitoring.RecordOrphanSaleSwept()
	}
}

// ReapSessions periodically evicts finished and abandoned sessions so the
// in-memory map does not grow without bound.
func (s *CheckoutService) ReapSessions(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reapOnce(time.Now())
		}
	}
}

// reapOnce removes every session that has been quiet past the TTL. Sessions
// awaiting payment are left alone; the countdown moves them to expired on its
// own, after which the TTL applies from that transition.
func (s *CheckoutService) reapOnce(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		evict := sess.state != StatePendingPayment && now.Sub(sess.lastActivity) > s.cfg.SessionTTL
		if evict {
			if sess.stopTimer != nil {
				close(sess.stopTimer)
				sess.stopTimer = nil
			}
			sess.releaseActiveGauge()
		}
		sess.mu.Unlock()

		if evict {
			delete(s.sessions, id)
			reaped++
		}
	}
	if reaped > 0 {
		slog.Info("reaped inactive checkout sessions", "count", reaped)
	}
	return reaped
}

func (sess *Session) rebuildParticipants(names []string) {
	sess.participants = make([]models.Participant, sess.quantity)
	for i := range sess.participants {
		name := ""
		if i < len(names) {
			name = utils.TitleCaseName(names[i])
		}
		sess.participants[i] = models.Participant{Index: i + 1, Name: name}
	}
}

func (sess *Session) participantNames() []string {
	names := make([]string, len(sess.participants))
	for i, p := range sess.participants {
		names[i] = p.Name
	}
	return names
}

func (sess *Session) stepOneValid() bool {
	return len(ValidateBuyer(sess.buyer.Name, sess.buyer.Whatsapp)) == 0
}

func (sess *Session) stepTwoValid() bool {
	names := sess.participantNames()
	return len(names) == sess.quantity && len(ValidateParticipants(names)) == 0
}

// issuedTickets builds the success projection with one QR payload per
// participant. Caller holds the session lock.
func issuedTickets(sess *Session) []models.IssuedTicket {
	result := make([]models.IssuedTicket, len(sess.participants))
	for i, p := range sess.participants {
		result[i] = models.IssuedTicket{
			Index:      p.Index,
			Name:       p.Name,
			TicketCode: p.TicketCode,
			QRPayload:  models.QRPayload(sess.sale.EventID, sess.sale.ID, p.Index, p.Name),
		}
	}
	return result
}

func (s *CheckoutService) view(sess *Session) SessionView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.viewLocked(sess)
}

func (s *CheckoutService) viewLocked(sess *Session) SessionView {
	participants := make([]models.Participant, len(sess.participants))
	copy(participants, sess.participants)

	tickets := make([]models.IssuedTicket, len(sess.tickets))
	copy(tickets, sess.tickets)

	errs := FieldErrors{}
	for k, v := range sess.fieldErrors {
		errs[k] = v
	}

	var event *models.Event
	if sess.event != nil {
		copied := *sess.event
		event = &copied
	}
	var sale *models.Sale
	if sess.sale != nil {
		copied := *sess.sale
		sale = &copied
	}

	return SessionView{
		ID:                   sess.id,
		State:                sess.state,
		Event:                event,
		Buyer:                sess.buyer,
		Quantity:             sess.quantity,
		Participants:         participants,
		Errors:               errs,
		StatusMessage:        sess.statusMessage,
		PixCopyPasteCode:     sess.pixCopyPasteCode,
		RemainingSeconds:     sess.remaining,
		Sale:                 sale,
		Tickets:              tickets,
		PayEnabled:           !sess.completed && sess.stepOneValid() && sess.stepTwoValid(),
		CodeRetriesExhausted: sess.codeRetriesExhausted,
	}
}
