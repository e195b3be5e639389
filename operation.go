package straal

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/straal/straal-go/card"
	"github.com/straal/straal-go/internal/callable"
)

// CreateTransactionWithCard is the operation that charges a card. It is a
// lazily triggered pipeline: nothing runs until Perform is called, each stage
// runs once per invocation, and a stage failure short-circuits the rest.
type CreateTransactionWithCard struct {
	Card        card.Card
	Transaction Transaction
}

func NewCreateTransactionWithCard(c card.Card, tx Transaction) *CreateTransactionWithCard {
	return &CreateTransactionWithCard{Card: c, Transaction: tx}
}

// CryptKeyPayload returns the crypt-key request body as a lazy callable.
func (op *CreateTransactionWithCard) CryptKeyPayload(cfg *Configuration) callable.Callable[[]byte] {
	return callable.Func[[]byte](func() ([]byte, error) {
		return cryptKeyPayload(op.Transaction, cfg)
	})
}

// RequestPayload returns the sensitive payload as a lazy callable.
func (op *CreateTransactionWithCard) RequestPayload(cfg *Configuration) callable.Callable[[]byte] {
	return callable.Func[[]byte](func() ([]byte, error) {
		return straalRequestPayload(op.Card, cfg)
	})
}

// perform runs the full pipeline: crypt-key fetch, encryption, submission,
// response interpretation and 3DS resolution. Intermediate results are never
// reused across invocations; callers that retry re-enter from the crypt-key
// stage.
func (op *CreateTransactionWithCard) perform(ctx context.Context, cfg *Configuration, logger *slog.Logger) (Encrypted3DSOperationResponse, error) {
	keyStage := callable.FlatMap(op.CryptKeyPayload(cfg), func(payload []byte) callable.Callable[CryptKey] {
		return callable.Func[CryptKey](func() (CryptKey, error) {
			return fetchCryptKey(ctx, cfg, payload)
		})
	})

	encryptStage := callable.FlatMap(keyStage, func(key CryptKey) callable.Callable[[]byte] {
		return callable.FlatMap(op.RequestPayload(cfg), func(payload []byte) callable.Callable[[]byte] {
			return callable.Func[[]byte](func() ([]byte, error) {
				encrypted, err := cfg.Encrypter.Encrypt([]byte(key.Key), payload)
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
				}
				return encrypted, nil
			})
		})
	})

	submitStage := callable.FlatMap(encryptStage, func(encrypted []byte) callable.Callable[submissionResponse] {
		return callable.Func[submissionResponse](func() (submissionResponse, error) {
			return submitEncrypted(ctx, cfg, encrypted)
		})
	})

	resolveStage := callable.FlatMap(submitStage, func(resp submissionResponse) callable.Callable[Encrypted3DSOperationResponse] {
		return callable.Func[Encrypted3DSOperationResponse](func() (Encrypted3DSOperationResponse, error) {
			return op.interpretResponse(ctx, cfg, resp, logger)
		})
	})

	return resolveStage.Call()
}

// interpretResponse maps a submission response onto a terminal outcome. No
// redirect means the operation resolved frictionless, which the protocol
// reports as success. A redirect matching a callback URL resolves without
// presenting anything; any other redirect requires a challenge.
func (op *CreateTransactionWithCard) interpretResponse(ctx context.Context, cfg *Configuration, resp submissionResponse, logger *slog.Logger) (Encrypted3DSOperationResponse, error) {
	success := cfg.SuccessCallbackURL()
	failure := cfg.FailureCallbackURL()

	switch classifyRedirect(resp.Redirect, success, failure) {
	case outcomeFrictionless:
		logger.Info("transaction resolved frictionless", slog.String("request_id", resp.RequestID))
		return Encrypted3DSOperationResponse{RequestID: resp.RequestID, Status: StatusSuccess}, nil
	case outcomeResolvedSuccess:
		return Encrypted3DSOperationResponse{RequestID: resp.RequestID, Status: StatusSuccess}, nil
	case outcomeResolvedFailure:
		return Encrypted3DSOperationResponse{RequestID: resp.RequestID, Status: StatusFailure}, nil
	default:
		status, err := resolveChallenge(ctx, cfg, ThreeDSURLs{
			RedirectURL: resp.Redirect,
			SuccessURL:  success,
			FailureURL:  failure,
		}, logger)
		if err != nil {
			return Encrypted3DSOperationResponse{}, err
		}
		return Encrypted3DSOperationResponse{RequestID: resp.RequestID, Status: status}, nil
	}
}
