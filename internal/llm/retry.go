package llm

import (
	"context"
	"errors"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/huimingz/cz-oca-go/internal/config"
	"github.com/huimingz/cz-oca-go/internal/log"
)

// ErrorType represents the classification of an error for retry purposes
type ErrorType int

const (
	// ErrorTypeRetryable indicates the error is transient and can be retried
	ErrorTypeRetryable ErrorType = iota
	// ErrorTypeNonRetryable indicates the error is permanent and should not be retried
	ErrorTypeNonRetryable
	// ErrorTypeUnknown indicates the error type is unknown and is not retried
	ErrorTypeUnknown
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeRetryable:
		return "Retryable"
	case ErrorTypeNonRetryable:
		return "NonRetryable"
	default:
		return "Unknown"
	}
}

// statusCoder is implemented by API errors carrying an HTTP status
type statusCoder interface {
	error
	StatusCode() int
}

// httpStatusCoder is the spelling some clients use
type httpStatusCoder interface {
	error
	HTTPStatusCode() int
}

// contextKeywords mark a request too large for the model; retrying cannot help
var contextKeywords = []string{
	"context length",
	"context_length",
	"maximum context",
	"token limit",
	"tokens exceeded",
}

// ClassifyError determines if an error is retryable based on its type and content
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeNonRetryable
	}

	if errors.Is(err, context.Canceled) {
		return ErrorTypeNonRetryable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeRetryable
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return ErrorTypeRetryable
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		return classifyHTTPStatus(sc.StatusCode())
	}
	var hsc httpStatusCoder
	if errors.As(err, &hsc) {
		return classifyHTTPStatus(hsc.HTTPStatusCode())
	}

	errMsg := strings.ToLower(err.Error())
	for _, keyword := range contextKeywords {
		if strings.Contains(errMsg, keyword) {
			return ErrorTypeNonRetryable
		}
	}
	if strings.Contains(errMsg, "timeout") {
		return ErrorTypeRetryable
	}

	return ErrorTypeUnknown
}

// classifyHTTPStatus classifies HTTP status codes
func classifyHTTPStatus(statusCode int) ErrorType {
	switch {
	case statusCode == http.StatusTooManyRequests, statusCode >= 500:
		return ErrorTypeRetryable
	case statusCode >= 400:
		return ErrorTypeNonRetryable
	default:
		return ErrorTypeUnknown
	}
}

// CalculateBackoff calculates the backoff duration for a retry attempt using exponential backoff
// Formula: min(base * 2^(attempt-1), max)
func CalculateBackoff(attempt int, base, max float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	backoff := math.Min(base*math.Pow(2, float64(attempt-1)), max)
	return time.Duration(backoff * float64(time.Second))
}

// Retry runs fn until it succeeds, fails with an error that is not retryable,
// or cfg.MaxAttempts retries have been spent. A nil or disabled cfg runs fn once.
func Retry[T any](ctx context.Context, cfg *config.RetryConfig, fn func() (T, error)) (T, error) {
	if cfg == nil || !cfg.Enabled || cfg.MaxAttempts <= 0 {
		return fn()
	}

	var zero T
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		if ClassifyError(err) != ErrorTypeRetryable || attempt > cfg.MaxAttempts {
			return zero, err
		}

		backoff := CalculateBackoff(attempt, cfg.BackoffBase, cfg.BackoffMax)
		log.Debug("Attempt %d failed (%v), retrying in %s", attempt, err, backoff)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// WithRetry is Retry for functions without a result
func WithRetry(ctx context.Context, cfg *config.RetryConfig, fn func() error) error {
	_, err := Retry(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
