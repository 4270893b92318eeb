package signals

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextCancelledOnInterrupt(t *testing.T) {
	ctx, cancel := Context(context.Background())
	defer cancel()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled after SIGINT")
	}
}

func TestContextCancelledByCaller(t *testing.T) {
	ctx, cancel := Context(context.Background())

	cancel()

	assert.Eventually(t, func() bool { return ctx.Err() != nil }, time.Second, 10*time.Millisecond)
}
