package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func trip(b *Breaker) {
	for !b.IsOpen() {
		b.RecordFailure()
	}
}

func TestNewBreakerIsClosed(t *testing.T) {
	b := New("building-cache")
	assert.Equal(t, "building-cache", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestFailuresOpenAtThreshold(t *testing.T) {
	b := New("cache", WithFailureThreshold(3))

	for i := 0; i < 2; i++ {
		useFallback, change := b.RecordFailure()
		assert.False(t, useFallback)
		assert.False(t, change.Opened)
	}

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)
	assert.Equal(t, "open", b.State().String())

	// Further failures keep it open without reporting a new transition.
	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback)
	assert.False(t, change.Opened)
}

func TestSuccessClearsFailureStreak(t *testing.T) {
	b := New("cache", WithFailureThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	assert.False(t, b.IsOpen(), "failures must be consecutive")

	b.RecordFailure()
	assert.True(t, b.IsOpen())
}

func TestSuccessesCloseAtThreshold(t *testing.T) {
	b := New("cache", WithFailureThreshold(1), WithSuccessThreshold(2))
	trip(b)

	usePrimary, change := b.RecordSuccess()
	assert.False(t, usePrimary)
	assert.False(t, change.Closed)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
	assert.False(t, b.IsOpen())
}

func TestFailureWhileOpenRestartsRecovery(t *testing.T) {
	b := New("cache", WithFailureThreshold(1), WithSuccessThreshold(2))
	trip(b)

	b.RecordSuccess()
	b.RecordFailure()
	b.RecordSuccess()
	assert.True(t, b.IsOpen())

	b.RecordSuccess()
	assert.False(t, b.IsOpen())
}

func TestAllowWaitsForCooldown(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New("cache",
		WithFailureThreshold(1),
		WithCooldown(10*time.Second),
		WithClock(clock.Now),
	)
	trip(b)
	require.False(t, b.Allow())

	clock.Advance(9 * time.Second)
	assert.False(t, b.Allow())

	clock.Advance(time.Second)
	assert.True(t, b.Allow(), "probe allowed after cooldown")

	// A failed probe starts a new cooldown.
	b.RecordFailure()
	assert.False(t, b.Allow())
}

func TestReset(t *testing.T) {
	b := New("cache", WithFailureThreshold(1))
	trip(b)

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}
