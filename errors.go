package straal

import "errors"

// Pipeline stage failures. Stages wrap these with detail via fmt.Errorf and
// %w; callers classify with errors.Is.
var (
	// ErrTransport covers network and HTTP-level failures talking to the
	// merchant backend or the Straal API. Retryable by the caller only; the
	// pipeline never retries a stage.
	ErrTransport = errors.New("transport failure")

	// ErrUnknownResponse covers non-2xx statuses and undecodable bodies.
	// Ambiguous failures are never interpreted as success.
	ErrUnknownResponse = errors.New("unknown response")

	// ErrEncryption covers failures reported by the Encrypter collaborator.
	ErrEncryption = errors.New("encryption failure")

	// ErrChallengePresenter covers failures starting the 3DS challenge
	// presentation. A presenter that starts but is dismissed without a
	// verdict resolves to a failure status instead of an error.
	ErrChallengePresenter = errors.New("challenge presenter failure")

	// ErrInvalidCurrency is returned by NewTransaction for a currency
	// outside the supported set.
	ErrInvalidCurrency = errors.New("unsupported currency")

	// ErrInvalidAmount is returned by NewTransaction for a non-positive
	// amount.
	ErrInvalidAmount = errors.New("amount must be positive")
)
