// Package card holds the payment card model: number, CVV, expiry and
// cardholder name value types, the brand registry, and the field validators.
package card

import (
	"fmt"
	"strings"
	"time"
)

// Number is a raw card number as typed by the user. Separators (spaces,
// dashes, tabs) are allowed and stripped during normalization.
type Number struct {
	Raw string
}

func NewNumber(raw string) Number { return Number{Raw: raw} }

// Sanitized returns the number with separators removed. The result is not
// guaranteed to be digits-only; validation classifies that.
func (n Number) Sanitized() string { return Normalize(n.Raw) }

// Masked returns the number in log-safe form: first six and last four digits
// visible, the rest replaced by '*'.
func (n Number) Masked() string { return MaskPAN(n.Sanitized()) }

// CVV is a raw card security code.
type CVV struct {
	Raw string
}

func NewCVV(raw string) CVV { return CVV{Raw: raw} }

func (c CVV) Sanitized() string { return Normalize(c.Raw) }

// CardholderName is the holder's name split the way card forms collect it.
type CardholderName struct {
	FirstName string
	Surname   string
}

// DisplayName joins first name and surname with a single space.
func (n CardholderName) DisplayName() string {
	return n.FirstName + " " + n.Surname
}

// Expiry is a card expiration month and year (four-digit year).
type Expiry struct {
	Month int
	Year  int
}

func NewExpiry(month, year int) Expiry { return Expiry{Month: month, Year: year} }

// Validate classifies the expiry against the given instant. A card is valid
// through the last instant of its expiry month.
func (e Expiry) Validate(now time.Time) ValidationResult {
	if e.Month < 1 || e.Month > 12 {
		return Invalid
	}
	if e.Year < 1000 || e.Year > 9999 {
		return Invalid
	}
	// First instant of the month after expiry, in UTC.
	cutoff := time.Date(e.Year, time.Month(e.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if !now.UTC().Before(cutoff) {
		return Invalid
	}
	return Valid
}

func (e Expiry) String() string { return fmt.Sprintf("%02d/%d", e.Month, e.Year) }

// Card aggregates everything needed to charge a payment card.
type Card struct {
	Name   CardholderName
	Number Number
	CVV    CVV
	Expiry Expiry
}

// Brand returns the matched brand for the card number.
func (c Card) Brand() Brand { return Match(c.Number) }

// Validate reports the aggregate validity of all card fields at the given
// instant. The first non-valid field result wins, checked in the order
// number, CVV, expiry.
func (c Card) Validate(now time.Time) ValidationResult {
	brand := c.Brand()
	if res := brand.ValidateNumber(c.Number); res != Valid {
		return res
	}
	if res := brand.ValidateCVV(c.CVV); res != Valid {
		return res
	}
	return c.Expiry.Validate(now)
}

// Normalize strips separator characters (space, tab, dash) from s.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		default:
			return r
		}
	}, s)
}

// IsDigits reports whether s is non-empty and contains only ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MaskPAN masks a normalized card number for logging.
func MaskPAN(pan string) string {
	n := len(pan)
	if n == 0 {
		return ""
	}
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	if n < 10 {
		return strings.Repeat("*", n-4) + pan[n-4:]
	}
	return pan[:6] + strings.Repeat("*", n-10) + pan[n-4:]
}
