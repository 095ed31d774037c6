package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cb := newCircuitBreaker(3, 30*time.Second)
	cb.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		assert.True(t, cb.canExecute())
		cb.recordFailure()
	}
	assert.Equal(t, circuitClosed, cb.currentState())

	assert.True(t, cb.canExecute())
	cb.recordFailure()
	assert.Equal(t, circuitOpen, cb.currentState())
	assert.False(t, cb.canExecute())
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cb := newCircuitBreaker(1, 10*time.Second)
	cb.now = func() time.Time { return now }

	cb.recordFailure()
	assert.False(t, cb.canExecute())

	now = now.Add(11 * time.Second)
	assert.True(t, cb.canExecute(), "cooldown elapsed, one probe allowed")
	assert.Equal(t, circuitHalfOpen, cb.currentState())
	assert.False(t, cb.canExecute(), "second caller waits for the probe")

	cb.recordFailure()
	assert.Equal(t, circuitOpen, cb.currentState())

	now = now.Add(11 * time.Second)
	assert.True(t, cb.canExecute())
	cb.recordSuccess()
	assert.Equal(t, circuitClosed, cb.currentState())
	assert.True(t, cb.canExecute())
}

func TestCircuitBreaker_Disabled(t *testing.T) {
	cb := newCircuitBreaker(0, time.Second)
	for i := 0; i < 10; i++ {
		cb.recordFailure()
	}
	assert.True(t, cb.canExecute())
}

func TestCircuitBreakerState_String(t *testing.T) {
	assert.Equal(t, "closed", circuitClosed.String())
	assert.Equal(t, "open", circuitOpen.String())
	assert.Equal(t, "half_open", circuitHalfOpen.String())
	assert.Equal(t, "unknown", circuitBreakerState(9).String())
}
