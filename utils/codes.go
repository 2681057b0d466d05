package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns n random bytes as an uppercase hex string. Used for
// opaque identifiers such as checkout session ids.
func GenerateCode(n int) (string, error) {
	byt := make([]byte, n)
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// GenerateReservationCode produces codes like BUY-20250101-235959-X7K: the
// prefix, then date and time, then 3 random chars from [A-Z0-9]. The
// timestamp keeps codes time-ordered for debugging; the suffix only resists
// collisions within the same second, so callers that need global uniqueness
// must verify against the store.
func GenerateReservationCode(prefix string) (string, error) {
	return generateReservationCodeAt(prefix, time.Now())
}

func generateReservationCodeAt(prefix string, now time.Time) (string, error) {
	// rand.Int keeps the draw uniform over the charset; a byte modulo 36
	// would skew towards the first characters.
	suffix := make([]byte, 3)
	charsetLen := big.NewInt(int64(len(codeCharset)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		suffix[i] = codeCharset[n.Int64()]
	}
	return fmt.Sprintf("%s-%s-%s-%s",
		prefix, now.Format("20060102"), now.Format("150405"), suffix), nil
}

// OnlyDigits strips every non-digit rune, canonicalizing phone input.
func OnlyDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TitleCaseName normalizes a full name: collapses whitespace and uppercases
// the first letter of each word, lowercasing the rest.
func TitleCaseName(value string) string {
	words := strings.Fields(value)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
