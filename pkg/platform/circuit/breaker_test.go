package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b := New("test", WithFailureThreshold(3))

	for i := 0; i < 2; i++ {
		fallback, opened := b.RecordFailure()
		require.False(t, fallback)
		require.False(t, opened)
	}

	fallback, opened := b.RecordFailure()
	require.True(t, fallback)
	require.True(t, opened)
	require.True(t, b.IsOpen())

	// Subsequent failures keep it open without re-announcing the trip.
	fallback, opened = b.RecordFailure()
	require.True(t, fallback)
	require.False(t, opened)
}

func TestSuccessResetsFailureStreak(t *testing.T) {
	b := New("test", WithFailureThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	fallback, _ := b.RecordFailure()
	require.False(t, fallback, "streak must restart after a success")
}

func TestBreakerClosesAfterSuccessThreshold(t *testing.T) {
	b := New("test", WithFailureThreshold(1), WithSuccessThreshold(2))

	b.RecordFailure()
	require.True(t, b.IsOpen())

	usePrimary, closed := b.RecordSuccess()
	require.False(t, usePrimary)
	require.False(t, closed)

	usePrimary, closed = b.RecordSuccess()
	require.True(t, usePrimary)
	require.True(t, closed)
	require.False(t, b.IsOpen())
}

func TestResetClosesImmediately(t *testing.T) {
	b := New("test", WithFailureThreshold(1))
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()
	require.False(t, b.IsOpen())
}
