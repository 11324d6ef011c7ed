package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"threadsfetcher/internal/ratelimit"
)

func TestAllowWithinBurst(t *testing.T) {
	l := ratelimit.NewInMemoryLimiter(1, time.Minute, 2)

	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"))
}

func TestAllowTracksKeysIndependently(t *testing.T) {
	l := ratelimit.NewInMemoryLimiter(1, time.Minute, 1)

	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.2"))
}
