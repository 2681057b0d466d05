package status

import "errors"

var (
	ErrNoSellableEvent         = errors.New("event: no published event available")
	ErrEventUnavailable        = errors.New("event: event is not active for sales")
	ErrEventCheckFailed        = errors.New("event: could not verify event status")
	ErrSessionNotFound         = errors.New("checkout: session not found")
	ErrBuyerStepInvalid        = errors.New("checkout: buyer data is invalid")
	ErrParticipantsStepInvalid = errors.New("checkout: participant data is invalid")
	ErrMissingBuyerName        = errors.New("checkout: buyer name is required")
	ErrInvalidQuantity         = errors.New("checkout: ticket quantity must be at least 1")
	ErrInvalidTicketPrice      = errors.New("checkout: ticket price is invalid")
	ErrCheckoutCompleted       = errors.New("checkout: purchase request already submitted")
	ErrInvalidPaymentOrder     = errors.New("payment: provider returned no payment id")
	ErrMissingSaleID           = errors.New("sale: store returned no sale id")
	ErrTicketsRolledBack       = errors.New("ticket: ticket creation failed and the sale was reverted")
)
