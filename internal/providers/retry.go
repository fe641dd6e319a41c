package providers

import (
	"context"
	"errors"
	"io"
	"math"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// RetryPolicy bounds how often a transient provider failure is retried.
// MaxAttempts counts the first call, so 2 means one retry.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 2, BaseDelay: time.Second, MaxDelay: 30 * time.Second}
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	d := time.Duration(math.Pow(2, float64(attempt))) * p.BaseDelay
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Retrying wraps a Provider and retries Complete on transient failures.
type Retrying struct {
	Provider
	Policy RetryPolicy
	Logger *zap.Logger
}

func WithRetry(p Provider, policy RetryPolicy, logger *zap.Logger) *Retrying {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retrying{Provider: p, Policy: policy, Logger: logger}
}

func (r *Retrying) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.Policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			wait := r.Policy.backoff(attempt - 1)
			r.Logger.Warn("retrying provider call",
				zap.String("provider", r.Provider.Name()),
				zap.String("model", model),
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", wait),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		reply, err := r.Provider.Complete(ctx, model, messages)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if ctx.Err() != nil || !IsTransient(err) {
			return "", err
		}
	}
	return "", lastErr
}

// IsTransient reports whether err is worth retrying: throttling, server
// errors, timeouts and dropped connections. Auth failures never are.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var authErr *ProviderAuthError
	if errors.As(err, &authErr) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return transientStatus(statusErr.Code)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return transientStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return transientStatus(apiErrPtr.Code)
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return false
}

func transientStatus(code int) bool {
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code >= 500 && code <= 599:
		return true
	default:
		return false
	}
}
