package services

import (
	"strings"

	"github.com/djdiegocosta/ticketbuy/utils"
)

// Form field keys used for error slots.
const (
	FieldBuyerName     = "buyer-name"
	FieldBuyerWhatsapp = "buyer-whatsapp"
	FieldParticipants  = "participants"
)

// FieldErrors maps a form field key to its user-facing message. One slot per
// field, cleared on every validation pass.
type FieldErrors map[string]string

// ValidateBuyer checks the step 1 fields: name must be non-empty after
// trimming and the WhatsApp number must carry at least 10 digits.
func ValidateBuyer(name, whatsapp string) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(name) == "" {
		errs[FieldBuyerName] = "Informe seu nome completo."
	}

	// WhatsApp is mandatory
	if len(utils.OnlyDigits(whatsapp)) < 10 {
		errs[FieldBuyerWhatsapp] = "Informe um WhatsApp válido."
	}

	return errs
}

// HasFullName reports whether a name splits into at least two non-empty
// whitespace-separated tokens (nome e sobrenome).
func HasFullName(name string) bool {
	parts := strings.Fields(name)
	return len(parts) >= 2 && parts[0] != "" && parts[len(parts)-1] != ""
}

// ValidateParticipants checks step 2. Any invalid entry fails the whole step
// with one aggregate error.
func ValidateParticipants(names []string) FieldErrors {
	errs := FieldErrors{}
	for _, name := range names {
		if !HasFullName(strings.TrimSpace(name)) {
			errs[FieldParticipants] = "Informe nome e sobrenome para todos os participantes."
			break
		}
	}
	return errs
}
