package completion

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	breakerFailureThreshold = 3
	breakerOpenTimeout      = 30 * time.Second
)

// Breaker wraps a Completer and fails fast after repeated transport failures
type Breaker struct {
	inner Completer
	cb    *gobreaker.CircuitBreaker
}

// NewBreaker wraps inner in a circuit breaker. Only network, rate limit and
// unavailable errors count towards tripping it.
func NewBreaker(inner Completer, logger *zap.Logger) *Breaker {
	return newBreaker(inner, logger, breakerOpenTimeout)
}

func newBreaker(inner Completer, logger *zap.Logger, timeout time.Duration) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:    inner.Name(),
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Completion circuit breaker changed state",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			switch KindOf(err) {
			case KindNetwork, KindRateLimit, KindUnavailable:
				return false
			default:
				return true
			}
		},
	}

	return &Breaker{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the name of the wrapped provider
func (b *Breaker) Name() string {
	return b.inner.Name()
}

// State reports the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Complete forwards to the wrapped completer unless the breaker is open
func (b *Breaker) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Complete(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", newError(b.Name(), KindUnavailable, err)
		}
		return "", err
	}

	return result.(string), nil
}
