package ratelimit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestLimiterAllowsBurst(t *testing.T) {
	l := New("test", 5)
	assert.Equal(t, "test", l.Name())

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(), "request %d within burst should be allowed", i)
	}
	assert.False(t, l.Allow(), "request beyond burst should be denied")
}

func TestLimiterWaitCancelled(t *testing.T) {
	l := New("test", 1)
	// Drain the burst so Wait would block.
	assert.True(t, l.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "test"))
}
