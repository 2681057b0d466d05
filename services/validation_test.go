package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBuyer_Valid(t *testing.T) {
	errs := ValidateBuyer("Maria Silva", "+55 (21) 99999-8888")

	assert.Empty(t, errs)
}

func TestValidateBuyer_MissingName(t *testing.T) {
	errs := ValidateBuyer("   ", "21999998888")

	assert.Equal(t, "Informe seu nome completo.", errs[FieldBuyerName])
}

func TestValidateBuyer_ShortWhatsapp(t *testing.T) {
	errs := ValidateBuyer("Maria Silva", "999-8888")

	assert.Equal(t, "Informe um WhatsApp válido.", errs[FieldBuyerWhatsapp])
}

func TestValidateBuyer_WhatsappCountsDigitsOnly(t *testing.T) {
	// 9 digits drowned in formatting still fail.
	errs := ValidateBuyer("Maria Silva", "(21) 9999-888")

	assert.Contains(t, errs, FieldBuyerWhatsapp)
}

func TestHasFullName(t *testing.T) {
	assert.True(t, HasFullName("Maria Silva"))
	assert.True(t, HasFullName("Maria  da  Silva"))
	assert.False(t, HasFullName("Maria"))
	assert.False(t, HasFullName("   "))
	assert.False(t, HasFullName(""))
}

func TestValidateParticipants(t *testing.T) {
	assert.Empty(t, ValidateParticipants([]string{"Ana Souza", "Bruno Lima"}))

	errs := ValidateParticipants([]string{"Ana Souza", "Bruno"})
	assert.Equal(t, "Informe nome e sobrenome para todos os participantes.", errs[FieldParticipants])
}
