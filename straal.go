package straal

import (
	"context"

	"golang.org/x/exp/slog"

	"github.com/straal/straal-go/card"
)

// Version is the SDK version reported in the default user agent.
const Version = "1.0.0"

// Client performs Straal operations against the configured merchant backend
// and the Straal API.
type Client struct {
	config *Configuration
	logger *slog.Logger
}

// New creates a client. A nil configuration is rejected at first use; a nil
// logger falls back to slog.Default.
func New(logger *slog.Logger, config *Configuration) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("sdk", "straal"))
	if config != nil {
		config.fillDefaults()
	}
	return &Client{
		config: config,
		logger: logger,
	}
}

// Configuration exposes the client's configuration, collaborators included.
func (c *Client) Configuration() *Configuration { return c.config }

// PerformTransaction runs the full card transaction pipeline and blocks
// until it yields a definite outcome: a terminal response or a typed error,
// never a pending state. ctx cancellation resolves an outstanding challenge
// to failure.
func (c *Client) PerformTransaction(ctx context.Context, crd card.Card, tx Transaction) (Encrypted3DSOperationResponse, error) {
	logger := c.logger.With(
		slog.String("operation", "create_transaction_with_card"),
		slog.String("card", crd.Number.Masked()),
		slog.String("brand", crd.Brand().Name),
	)
	logger.Info("performing transaction",
		slog.Int("amount", tx.Amount),
		slog.String("currency", string(tx.Currency)),
	)

	op := NewCreateTransactionWithCard(crd, tx)
	resp, err := op.perform(ctx, c.config, logger)
	if err != nil {
		logger.Error("transaction failed", "err", err)
		return Encrypted3DSOperationResponse{}, err
	}

	logger.Info("transaction finished",
		slog.String("request_id", resp.RequestID),
		slog.String("status", resp.Status.String()),
	)
	return resp, nil
}
