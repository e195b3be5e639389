package card

// ValidationResult classifies the outcome of validating a single card field.
// Validation failures are values, never errors.
type ValidationResult int

const (
	// Valid means every check for the field passed.
	Valid ValidationResult = iota
	// NumberIsNotNumeric means the number is empty or contains characters
	// other than digits and separators.
	NumberIsNotNumeric
	// NumberIncomplete means the digit count is below the brand minimum.
	NumberIncomplete
	// NumberTooLong means the digit count is above the brand maximum.
	NumberTooLong
	// LuhnTestFailed means the number has an accepted length but fails the
	// mod-10 checksum.
	LuhnTestFailed
	// IncompleteCVV means the CVV is numeric but shorter than the brand
	// requires.
	IncompleteCVV
	// InvalidCVV means the CVV is empty, non-numeric, or too long.
	InvalidCVV
	// Invalid is the catch-all failure: unknown brand, out-of-range expiry,
	// or an expired card.
	Invalid
)

func (r ValidationResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case NumberIsNotNumeric:
		return "number is not numeric"
	case NumberIncomplete:
		return "number incomplete"
	case NumberTooLong:
		return "number too long"
	case LuhnTestFailed:
		return "luhn test failed"
	case IncompleteCVV:
		return "incomplete cvv"
	case InvalidCVV:
		return "invalid cvv"
	default:
		return "invalid"
	}
}

// ValidateNumber checks a card number against the brand's length range and
// the Luhn checksum. Separators in the raw input do not affect the result.
func (b Brand) ValidateNumber(number Number) ValidationResult {
	digits := number.Sanitized()
	if !IsDigits(digits) {
		return NumberIsNotNumeric
	}
	if !b.Known() {
		return Invalid
	}
	if len(digits) < b.MinLength() {
		return NumberIncomplete
	}
	if len(digits) > b.MaxLength() {
		return NumberTooLong
	}
	if !LuhnValid(digits) {
		return LuhnTestFailed
	}
	return Valid
}

// ValidateCVV checks a security code against the brand's CVV length.
// Unknown brands accept the common 3-digit length.
func (b Brand) ValidateCVV(cvv CVV) ValidationResult {
	digits := cvv.Sanitized()
	if !IsDigits(digits) {
		return InvalidCVV
	}
	want := b.CVVLength
	if want == 0 {
		want = 3
	}
	if len(digits) < want {
		return IncompleteCVV
	}
	if len(digits) > want {
		return InvalidCVV
	}
	return Valid
}
