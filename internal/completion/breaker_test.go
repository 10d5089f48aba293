package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptedCompleter struct {
	calls int
	err   error
	text  string
}

func (s *scriptedCompleter) Name() string { return "scripted" }

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func TestBreaker_PassesThrough(t *testing.T) {
	inner := &scriptedCompleter{text: "Question: Q\nAnswer: A"}
	breaker := NewBreaker(inner, zap.NewNop())

	text, err := breaker.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Question: Q\nAnswer: A", text)
	assert.Equal(t, "scripted", breaker.Name())
	assert.Equal(t, gobreaker.StateClosed, breaker.State())
}

func TestBreaker_TripsOnTransportFailures(t *testing.T) {
	inner := &scriptedCompleter{err: newError("scripted", KindNetwork, errors.New("connection refused"))}
	breaker := newBreaker(inner, zap.NewNop(), time.Hour)

	for i := 0; i < breakerFailureThreshold; i++ {
		_, err := breaker.Complete(context.Background(), "p")
		assert.Equal(t, KindNetwork, KindOf(err))
	}
	assert.Equal(t, gobreaker.StateOpen, breaker.State())

	_, err := breaker.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, breakerFailureThreshold, inner.calls, "open breaker must not call through")
}

func TestBreaker_IgnoresCallerErrors(t *testing.T) {
	inner := &scriptedCompleter{err: newError("scripted", KindAuthentication, ErrMissingAPIKey)}
	breaker := newBreaker(inner, zap.NewNop(), time.Hour)

	for i := 0; i < breakerFailureThreshold+2; i++ {
		_, err := breaker.Complete(context.Background(), "p")
		assert.Equal(t, KindAuthentication, KindOf(err))
	}
	assert.Equal(t, gobreaker.StateClosed, breaker.State())
	assert.Equal(t, breakerFailureThreshold+2, inner.calls)
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	inner := &scriptedCompleter{err: newError("scripted", KindUnavailable, errors.New("503"))}
	breaker := newBreaker(inner, zap.NewNop(), 10*time.Millisecond)

	for i := 0; i < breakerFailureThreshold; i++ {
		_, _ = breaker.Complete(context.Background(), "p")
	}
	require.Equal(t, gobreaker.StateOpen, breaker.State())

	time.Sleep(20 * time.Millisecond)
	inner.err = nil
	inner.text = "ok"

	text, err := breaker.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, gobreaker.StateClosed, breaker.State())
}
