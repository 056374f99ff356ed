package agent

import "context"

// RetryConfig controls error-only retries around Generate. Retrying lives
// here, outside the game engine: a decoded-but-invalid turn is fatal to the
// run, only transport failures are worth another attempt.
type RetryConfig struct {
	MaxAttempts int
	ShouldRetry func(error) bool
}

// WithRetry wraps an agent with deterministic retries on Generate errors.
func WithRetry(inner Agent, cfg RetryConfig) Agent {
	if inner == nil {
		return nil
	}
	return &retryAgent{inner: inner, cfg: cfg}
}

type retryAgent struct {
	inner Agent
	cfg   RetryConfig
}

func (r *retryAgent) InitAgent(prompt, role string) {
	r.inner.InitAgent(prompt, role)
}

func (r *retryAgent) Generate(ctx context.Context, conversation []Turn) (string, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	attempts := r.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := r.inner.Generate(ctx, conversation)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if attempt == attempts || !r.shouldRetry(ctx, err) {
			break
		}
	}
	return "", lastErr
}

func (r *retryAgent) shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if r.cfg.ShouldRetry == nil {
		return true
	}
	return r.cfg.ShouldRetry(err)
}
