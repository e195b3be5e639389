package straal

import (
	"encoding/json"

	"github.com/straal/straal-go/card"
)

// createTransactionPermission is the operation identifier declared in every
// crypt-key request for a card transaction.
const createTransactionPermission = "v1.transactions.create_with_card"

// acceptHeaderValue is the fixed accept header reported in browser metadata.
const acceptHeaderValue = "*/*"

// Wire shapes. Field names and casing are part of the Straal contract.

type cryptKeyRequest struct {
	Permission  string              `json:"permission"`
	Transaction cryptKeyTransaction `json:"transaction"`
}

type cryptKeyTransaction struct {
	Amount            int               `json:"amount"`
	Currency          string            `json:"currency"`
	Reference         string            `json:"reference,omitempty"`
	Authentication3DS authentication3DS `json:"authentication_3ds"`
}

type authentication3DS struct {
	SuccessURL string `json:"success_url"`
	FailureURL string `json:"failure_url"`
}

type straalCardRequest struct {
	Name        string      `json:"name"`
	Number      string      `json:"number"`
	CVV         string      `json:"cvv"`
	ExpiryMonth int         `json:"expiry_month"`
	ExpiryYear  int         `json:"expiry_year"`
	Browser     browserInfo `json:"browser"`
}

type browserInfo struct {
	Language     string `json:"language"`
	AcceptHeader string `json:"accept_header"`
	UserAgent    string `json:"user_agent"`
	JavaEnabled  bool   `json:"java_enabled"`
}

// cryptKeyPayload composes the crypt-key request body for a transaction. It
// is pure: deterministic for identical transaction and configuration, and it
// never mutates its inputs. The reference key is omitted entirely when the
// transaction has none.
func cryptKeyPayload(tx Transaction, cfg *Configuration) ([]byte, error) {
	req := cryptKeyRequest{
		Permission: createTransactionPermission,
		Transaction: cryptKeyTransaction{
			Amount:    tx.Amount,
			Currency:  string(tx.Currency),
			Reference: tx.Reference,
			Authentication3DS: authentication3DS{
				SuccessURL: cfg.SuccessCallbackURL().String(),
				FailureURL: cfg.FailureCallbackURL().String(),
			},
		},
	}
	return json.Marshal(req)
}

// straalRequestPayload composes the sensitive payload to be encrypted: the
// card data plus browser metadata from the locale and user-agent
// collaborators. Deterministic for identical inputs and collaborators.
func straalRequestPayload(c card.Card, cfg *Configuration) ([]byte, error) {
	req := straalCardRequest{
		Name:        c.Name.DisplayName(),
		Number:      c.Number.Sanitized(),
		CVV:         c.CVV.Sanitized(),
		ExpiryMonth: c.Expiry.Month,
		ExpiryYear:  c.Expiry.Year,
		Browser: browserInfo{
			Language:     cfg.Locale.LanguageTag(),
			AcceptHeader: acceptHeaderValue,
			UserAgent:    cfg.UserAgent.UserAgent(),
			JavaEnabled:  cfg.UserAgent.JavaEnabled(),
		},
	}
	return json.Marshal(req)
}
