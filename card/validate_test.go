package card

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func amex(t *testing.T) Brand {
	t.Helper()
	b := Match(NewNumber("34"))
	require.Equal(t, "American Express", b.Name)
	return b
}

func TestValidateNumber(t *testing.T) {
	sut := amex(t)

	t.Run("valid regardless of separators", func(t *testing.T) {
		require.Equal(t, Valid, sut.ValidateNumber(NewNumber("3400 0000 0000 009")))
		require.Equal(t, Valid, sut.ValidateNumber(NewNumber("340000000000009")))
		require.Equal(t, Valid, sut.ValidateNumber(NewNumber("3400-0000-0000-009")))
	})

	t.Run("empty number is not numeric", func(t *testing.T) {
		require.Equal(t, NumberIsNotNumeric, sut.ValidateNumber(NewNumber("")))
	})

	t.Run("non-numeric number", func(t *testing.T) {
		require.Equal(t, NumberIsNotNumeric, sut.ValidateNumber(NewNumber("abc")))
	})

	t.Run("incomplete number", func(t *testing.T) {
		require.Equal(t, NumberIncomplete, sut.ValidateNumber(NewNumber("3400 0000")))
	})

	t.Run("too long number", func(t *testing.T) {
		require.Equal(t, NumberTooLong, sut.ValidateNumber(NewNumber("3400 0000 0000 009123")))
	})

	t.Run("luhn test failed", func(t *testing.T) {
		require.Equal(t, LuhnTestFailed, sut.ValidateNumber(NewNumber("3400 0005 0000 009")))
	})

	t.Run("unknown brand is invalid", func(t *testing.T) {
		n := NewNumber("1234567890123456")
		require.Equal(t, Invalid, Match(n).ValidateNumber(n))
	})
}

func TestValidateCVV(t *testing.T) {
	sut := amex(t)

	t.Run("valid four digit cvv", func(t *testing.T) {
		require.Equal(t, Valid, sut.ValidateCVV(NewCVV("1234")))
		require.Equal(t, Valid, sut.ValidateCVV(NewCVV("0057")))
	})

	t.Run("empty cvv is invalid", func(t *testing.T) {
		require.Equal(t, InvalidCVV, sut.ValidateCVV(NewCVV("")))
	})

	t.Run("non-numeric cvv is invalid", func(t *testing.T) {
		require.Equal(t, InvalidCVV, sut.ValidateCVV(NewCVV("abc")))
	})

	t.Run("short cvv is incomplete", func(t *testing.T) {
		require.Equal(t, IncompleteCVV, sut.ValidateCVV(NewCVV("123")))
	})

	t.Run("long cvv is invalid", func(t *testing.T) {
		require.Equal(t, InvalidCVV, sut.ValidateCVV(NewCVV("12345")))
	})
}

func TestExpiryValidate(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("future year", func(t *testing.T) {
		require.Equal(t, Valid, NewExpiry(1, 2027).Validate(now))
	})

	t.Run("current month is valid through month end", func(t *testing.T) {
		require.Equal(t, Valid, NewExpiry(6, 2026).Validate(now))
		endOfMonth := time.Date(2026, time.June, 30, 23, 59, 59, 999999999, time.UTC)
		require.Equal(t, Valid, NewExpiry(6, 2026).Validate(endOfMonth))
	})

	t.Run("previous month is invalid", func(t *testing.T) {
		require.Equal(t, Invalid, NewExpiry(5, 2026).Validate(now))
	})

	t.Run("previous year is invalid", func(t *testing.T) {
		require.Equal(t, Invalid, NewExpiry(12, 2025).Validate(now))
	})

	t.Run("month out of range", func(t *testing.T) {
		require.Equal(t, Invalid, NewExpiry(0, 2027).Validate(now))
		require.Equal(t, Invalid, NewExpiry(13, 2027).Validate(now))
	})
}

func TestCardValidate(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	crd := Card{
		Name:   CardholderName{FirstName: "John", Surname: "Appleseed"},
		Number: NewNumber("4444-4444-4444-4441"),
		CVV:    NewCVV("000"),
		Expiry: NewExpiry(2, 2099),
	}
	require.Equal(t, Valid, crd.Validate(now))
	require.Equal(t, "John Appleseed", crd.Name.DisplayName())
	require.Equal(t, "Visa", crd.Brand().Name)

	t.Run("bad cvv fails the aggregate", func(t *testing.T) {
		bad := crd
		bad.CVV = NewCVV("12")
		require.Equal(t, IncompleteCVV, bad.Validate(now))
	})

	t.Run("expired card fails the aggregate", func(t *testing.T) {
		bad := crd
		bad.Expiry = NewExpiry(1, 2020)
		require.Equal(t, Invalid, bad.Validate(now))
	})
}
