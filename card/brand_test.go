package card

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		number string
		brand  string
	}{
		{"4444444444444441", "Visa"},
		{"4111 1111 1111 1111", "Visa"},
		{"5555555555554444", "Mastercard"},
		{"2221000000000009", "Mastercard"},
		{"340000000000009", "American Express"},
		{"370000000000002", "American Express"},
		{"3530111333300000", "JCB"},
		{"30569309025904", "Diners Club"},
		{"6011111111111117", "Discover"},
		{"6200000000000005", "China UnionPay"},
		{"6759649826438453", "Maestro"},
	}

	for _, c := range cases {
		t.Run(c.brand, func(t *testing.T) {
			require.Equal(t, c.brand, Match(NewNumber(c.number)).Name)
		})
	}
}

func TestMatch_Unknown(t *testing.T) {
	require.Equal(t, Unknown.Name, Match(NewNumber("1234567890123456")).Name)
	require.Equal(t, Unknown.Name, Match(NewNumber("")).Name)
	require.Equal(t, Unknown.Name, Match(NewNumber("abc")).Name)
	require.False(t, Match(NewNumber("9999")).Known())
}

func TestBrandLengths(t *testing.T) {
	amex := Match(NewNumber("34"))
	require.Equal(t, 15, amex.MinLength())
	require.Equal(t, 15, amex.MaxLength())

	cup := Match(NewNumber("62"))
	require.Equal(t, 16, cup.MinLength())
	require.Equal(t, 19, cup.MaxLength())
}

func TestBrandFormat(t *testing.T) {
	amex := Match(NewNumber("34"))
	require.Equal(t, "3400 000000 00009", amex.Format(NewNumber("3400-0000-0000-009")))

	visa := Match(NewNumber("4"))
	require.Equal(t, "4444 4444 4444 4441", visa.Format(NewNumber("4444444444444441")))

	// No grouping fits: digits come back ungrouped.
	require.Equal(t, "44444", visa.Format(NewNumber("44444")))
}

func TestMaskPAN(t *testing.T) {
	require.Equal(t, "444444******4441", MaskPAN("4444444444444441"))
	require.Equal(t, "****", MaskPAN("1234"))
	require.Equal(t, "", MaskPAN(""))
}
