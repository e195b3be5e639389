package straal

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/exp/slog"
)

// OperationStatus is the terminal outcome of an encrypted 3DS operation.
type OperationStatus int

const (
	StatusSuccess OperationStatus = iota
	StatusFailure
)

func (s OperationStatus) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failure"
}

// Encrypted3DSOperationResponse is the terminal result of the pipeline.
type Encrypted3DSOperationResponse struct {
	RequestID string
	Status    OperationStatus
}

// ThreeDSURLs carries the challenge redirect and the two app callback URLs
// handed to the challenge presenter.
type ThreeDSURLs struct {
	RedirectURL *url.URL
	SuccessURL  *url.URL
	FailureURL  *url.URL
}

// threeDSOutcome is the state the resolver enters for a submission response.
type threeDSOutcome int

const (
	// outcomeFrictionless: no redirect, the operation is already resolved.
	outcomeFrictionless threeDSOutcome = iota
	// outcomeChallengeRequired: redirect to a third-party challenge page.
	outcomeChallengeRequired
	// outcomeResolvedSuccess: redirect straight to the success callback.
	outcomeResolvedSuccess
	// outcomeResolvedFailure: redirect straight to the failure callback.
	outcomeResolvedFailure
)

// classifyRedirect maps a redirect location onto a resolver state. URL
// schemes compare case-insensitively; the rest of the URL must match the
// callback exactly.
func classifyRedirect(redirect, success, failure *url.URL) threeDSOutcome {
	switch {
	case redirect == nil:
		return outcomeFrictionless
	case canonicalURL(redirect) == canonicalURL(success):
		return outcomeResolvedSuccess
	case canonicalURL(redirect) == canonicalURL(failure):
		return outcomeResolvedFailure
	default:
		return outcomeChallengeRequired
	}
}

func canonicalURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	c := *u
	c.Scheme = strings.ToLower(c.Scheme)
	return c.String()
}

// resolveChallenge runs the ChallengeRequired state: it registers an
// operation context, hands the URLs to the presenter and blocks the calling
// context until a verdict arrives. The verdict is a one-shot signal; a late
// or duplicate delivery is a no-op. Dismissal without a verdict and context
// cancellation both resolve to failure rather than leaving the operation
// undetermined. The operation context is unregistered on every exit path.
func resolveChallenge(ctx context.Context, cfg *Configuration, urls ThreeDSURLs, logger *slog.Logger) (OperationStatus, error) {
	if cfg.Presenter == nil {
		return StatusFailure, fmt.Errorf("%w: no presenter configured", ErrChallengePresenter)
	}

	opCtx := newOperationContext()
	cfg.Registry.register(opCtx)
	defer cfg.Registry.unregister(opCtx)

	logger.Info("3ds challenge required",
		slog.String("operation_context", opCtx.ID.String()),
		slog.String("redirect_url", urls.RedirectURL.String()),
	)

	verdicts := make(chan OperationStatus, 1)
	var once sync.Once
	deliver := func(s OperationStatus) {
		once.Do(func() { verdicts <- s })
	}

	err := cfg.Presenter.Present(ctx, urls,
		func(s OperationStatus) { deliver(s) },
		func() { deliver(StatusFailure) },
	)
	if err != nil {
		return StatusFailure, fmt.Errorf("%w: %v", ErrChallengePresenter, err)
	}

	select {
	case status := <-verdicts:
		logger.Info("3ds challenge resolved", slog.String("status", status.String()))
		return status, nil
	case <-ctx.Done():
		// Swallow any verdict that races in after cancellation.
		once.Do(func() {})
		logger.Info("3ds challenge cancelled")
		return StatusFailure, nil
	}
}
