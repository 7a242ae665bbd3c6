package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	openai "github.com/openai/openai-go"
	"google.golang.org/genai"
)

const DefaultMaxAttempts = 3

// RetryableError is a transient provider failure (rate limit or 5xx).
type RetryableError struct {
	StatusCode int
	Err        error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %v", e.StatusCode, e.Err)
}

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is worth another attempt.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// classify wraps provider API errors that are worth retrying.
func classify(err error) error {
	code := 0
	var gemErr genai.APIError
	var oaiErr *openai.Error
	switch {
	case errors.As(err, &gemErr):
		code = gemErr.Code
	case errors.As(err, &oaiErr):
		code = oaiErr.StatusCode
	default:
		return err
	}
	if code == http.StatusTooManyRequests || code >= 500 {
		return &RetryableError{StatusCode: code, Err: err}
	}
	return err
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// Retrying retries a Generator's transient failures with backoff.
type Retrying struct {
	next        Generator
	maxAttempts int
	backoff     func(attempt int) time.Duration
	log         *slog.Logger
}

func WithRetry(next Generator, maxAttempts int, log *slog.Logger) *Retrying {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Retrying{next: next, maxAttempts: maxAttempts, backoff: Backoff, log: log}
}

func (r *Retrying) Model() string { return r.next.Model() }

func (r *Retrying) Generate(ctx context.Context, parts []string) (string, error) {
	var lastErr error
	for attempt := range r.maxAttempts {
		text, err := r.next.Generate(ctx, parts)
		if err == nil || !IsRetryable(err) {
			return text, err
		}
		lastErr = err
		if attempt == r.maxAttempts-1 {
			break
		}
		r.log.Warn("retryable generation error", "attempt", attempt, "error", err)
		select {
		case <-time.After(r.backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
