// Package straal is a client-side SDK for creating Straal payment
// transactions with a card: it validates card data, obtains a crypt key from
// the merchant backend, encrypts the sensitive payload, submits it to the
// Straal API and resolves a possible 3-D Secure challenge into a final
// success or failure.
package straal

import (
	"fmt"
	"strings"
)

// Currency is a supported transaction currency, lower-cased ISO 4217.
type Currency string

const (
	CurrencyPLN Currency = "pln"
	CurrencyUSD Currency = "usd"
	CurrencyEUR Currency = "eur"
)

// NewCurrency matches raw (case-insensitive) against the supported set.
func NewCurrency(raw string) (Currency, bool) {
	switch c := Currency(strings.ToLower(raw)); c {
	case CurrencyPLN, CurrencyUSD, CurrencyEUR:
		return c, true
	default:
		return "", false
	}
}

// Transaction is a payment intent: a positive amount in minor units, a
// supported currency and an optional free-text reference.
type Transaction struct {
	Amount    int
	Currency  Currency
	Reference string
}

// NewTransaction builds a transaction. An empty reference means no reference;
// it is then omitted from the crypt-key payload entirely. Fails on a
// non-positive amount or a currency outside the supported set.
func NewTransaction(amount int, currency string, reference string) (*Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	cur, ok := NewCurrency(currency)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	return &Transaction{
		Amount:    amount,
		Currency:  cur,
		Reference: reference,
	}, nil
}
