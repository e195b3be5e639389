package straal_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	straal "github.com/straal/straal-go"
	"github.com/straal/straal-go/card"
)

type fakeLocale struct{ tag string }

func (f fakeLocale) LanguageTag() string { return f.tag }

type fakeUserAgent struct {
	agent string
	java  bool
}

func (f fakeUserAgent) UserAgent() string { return f.agent }
func (f fakeUserAgent) JavaEnabled() bool { return f.java }

func testConfiguration(t *testing.T) *straal.Configuration {
	t.Helper()
	base, err := url.Parse("https://backend.com")
	require.NoError(t, err)
	cfg := straal.NewConfiguration(base, "com.straal.Test.payments")
	cfg.Locale = fakeLocale{tag: "en_US"}
	cfg.UserAgent = fakeUserAgent{agent: "user-agent", java: true}
	return cfg
}

func testCard() card.Card {
	return card.Card{
		Name:   card.CardholderName{FirstName: "John", Surname: "Appleseed"},
		Number: card.NewNumber("4444-4444-4444-4441"),
		CVV:    card.NewCVV("000"),
		Expiry: card.NewExpiry(2, 2099),
	}
}

func TestCryptKeyPayload_WithoutReference(t *testing.T) {
	cfg := testConfiguration(t)
	tx, err := straal.NewTransaction(100, "usd", "")
	require.NoError(t, err)

	op := straal.NewCreateTransactionWithCard(testCard(), *tx)
	data, err := op.CryptKeyPayload(cfg).Call()
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Equal(t, "v1.transactions.create_with_card", payload["permission"])

	transaction, ok := payload["transaction"].(map[string]any)
	require.True(t, ok)
	require.Len(t, transaction, 3, "reference key must be absent, not null")
	require.Equal(t, float64(100), transaction["amount"])
	require.Equal(t, "usd", transaction["currency"])
	require.NotContains(t, transaction, "reference")

	auth, ok := transaction["authentication_3ds"].(map[string]any)
	require.True(t, ok)
	require.Len(t, auth, 2)
	require.Equal(t, "com.straal.test.payments://sdk.straal.com/x-callback-url/ios/success", auth["success_url"])
	require.Equal(t, "com.straal.test.payments://sdk.straal.com/x-callback-url/ios/failure", auth["failure_url"])
}

func TestCryptKeyPayload_WithReference(t *testing.T) {
	cfg := testConfiguration(t)
	tx, err := straal.NewTransaction(1000, "pln", "order:124iygtieurg")
	require.NoError(t, err)

	op := straal.NewCreateTransactionWithCard(testCard(), *tx)
	data, err := op.CryptKeyPayload(cfg).Call()
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))

	transaction, ok := payload["transaction"].(map[string]any)
	require.True(t, ok)
	require.Len(t, transaction, 4)
	require.Equal(t, float64(1000), transaction["amount"])
	require.Equal(t, "pln", transaction["currency"])
	require.Equal(t, "order:124iygtieurg", transaction["reference"])
}

func TestStraalRequestPayload(t *testing.T) {
	cfg := testConfiguration(t)
	tx, err := straal.NewTransaction(100, "usd", "")
	require.NoError(t, err)

	op := straal.NewCreateTransactionWithCard(testCard(), *tx)
	data, err := op.RequestPayload(cfg).Call()
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Len(t, payload, 6)
	require.Equal(t, "John Appleseed", payload["name"])
	require.Equal(t, "4444444444444441", payload["number"])
	require.Equal(t, "000", payload["cvv"])
	require.Equal(t, float64(2), payload["expiry_month"])
	require.Equal(t, float64(2099), payload["expiry_year"])

	browser, ok := payload["browser"].(map[string]any)
	require.True(t, ok)
	require.Len(t, browser, 4)
	require.Equal(t, "en_US", browser["language"])
	require.Equal(t, "*/*", browser["accept_header"])
	require.Equal(t, "user-agent", browser["user_agent"])
	require.Equal(t, true, browser["java_enabled"])
}

func TestPayloadsAreDeterministic(t *testing.T) {
	cfg := testConfiguration(t)
	tx, err := straal.NewTransaction(1000, "pln", "order:124iygtieurg")
	require.NoError(t, err)

	op := straal.NewCreateTransactionWithCard(testCard(), *tx)

	first, err := op.CryptKeyPayload(cfg).Call()
	require.NoError(t, err)
	second, err := op.CryptKeyPayload(cfg).Call()
	require.NoError(t, err)
	require.Equal(t, first, second)

	firstReq, err := op.RequestPayload(cfg).Call()
	require.NoError(t, err)
	secondReq, err := op.RequestPayload(cfg).Call()
	require.NoError(t, err)
	require.Equal(t, firstReq, secondReq)
}
