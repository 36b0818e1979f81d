package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestCircuitBreaker_AbreAposFalhasConsecutivas(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Hour})

	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return errBoom })
		require.ErrorIs(t, err, errBoom)
	}
	assert.Equal(t, CBOpen, cb.State())

	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_SucessoReseta(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Hour})

	require.Error(t, cb.Execute(func() error { return errBoom }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Error(t, cb.Execute(func() error { return errBoom }))
	// One failure after a success must not trip a threshold of two.
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecupera(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errBoom }))
	assert.Equal(t, CBOpen, cb.State())

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}
