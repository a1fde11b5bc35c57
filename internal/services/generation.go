package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"alfredoptarigan/interview-practice/internal/config"
)

// GenerationClient invokes an external text generation service.
type GenerationClient interface {
	Generate(ctx context.Context, systemInstruction, userPrompt string, temperature float32, maxOutputTokens int32) (string, error)
}

// generatePrompt is a convenience wrapper for the prompt builder output.
func generatePrompt(ctx context.Context, client GenerationClient, prompt Prompt) (string, error) {
	return client.Generate(ctx, prompt.System, prompt.User, prompt.Temperature, prompt.MaxOutputTokens)
}

type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Timeout      time.Duration
	// RequestsPerMinute caps attempts sent to the provider; 0 is unlimited.
	RequestsPerMinute int
}

// burst allowed above the per-minute rate
const rateBurst = 5

type retryingClient struct {
	next    GenerationClient
	policy  RetryPolicy
	limiter *rate.Limiter
	logger  *logrus.Entry
}

// NewRetryingClient retries failed calls with doubling backoff. Each attempt is
// bounded by policy.Timeout; the last failure is returned as a ServiceError.
func NewRetryingClient(next GenerationClient, policy RetryPolicy, logger *logrus.Logger) GenerationClient {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	c := &retryingClient{
		next:   next,
		policy: policy,
		logger: logger.WithField("component", "generation"),
	}
	if policy.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(float64(policy.RequestsPerMinute)/60.0), rateBurst)
	}
	return c
}

// Generate implements GenerationClient.
func (c *retryingClient) Generate(ctx context.Context, systemInstruction, userPrompt string, temperature float32, maxOutputTokens int32) (string, error) {
	var lastErr error
	delay := c.policy.InitialDelay

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		result, err := c.attempt(ctx, systemInstruction, userPrompt, temperature, maxOutputTokens)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", asServiceError(errors.Wrap(ctx.Err(), "context cancelled"))
		}
		if attempt == c.policy.MaxAttempts {
			break
		}

		c.logger.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"delay":   delay.String(),
		}).Warn("Generation attempt failed, retrying")

		select {
		case <-ctx.Done():
			return "", asServiceError(errors.Wrap(ctx.Err(), "context cancelled"))
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", asServiceError(errors.Wrapf(lastErr, "failed after %d attempts", c.policy.MaxAttempts))
}

func (c *retryingClient) attempt(ctx context.Context, systemInstruction, userPrompt string, temperature float32, maxOutputTokens int32) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", errors.Wrap(err, "rate limiter")
		}
	}
	if c.policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.policy.Timeout)
		defer cancel()
	}
	return c.next.Generate(ctx, systemInstruction, userPrompt, temperature, maxOutputTokens)
}

// asServiceError keeps an existing ServiceError's provider and wraps anything else.
func asServiceError(err error) error {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return &ServiceError{Provider: svcErr.Provider, Err: err}
	}
	return &ServiceError{Provider: "generation", Err: err}
}

// NewGenerationClient builds the provider selected by LLM_PROVIDER wrapped in
// the retry policy from config.
func NewGenerationClient(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (GenerationClient, error) {
	var (
		client GenerationClient
		err    error
	)

	switch cfg.LLM.Provider {
	case "gemini":
		client, err = NewGeminiService(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel, cfg.LLM.EmbeddingModel, logger)
	case "claude", "anthropic":
		client, err = NewClaudeService(cfg.LLM.AnthropicAPIKey, cfg.LLM.ClaudeModel, logger)
	default:
		return nil, errors.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewRetryingClient(client, RetryPolicy{
		MaxAttempts:       cfg.Worker.RetryMaxAttempts,
		InitialDelay:      cfg.Worker.RetryInitialDelay,
		Timeout:           cfg.LLM.Timeout,
		RequestsPerMinute: cfg.LLM.RateLimit,
	}, logger), nil
}
