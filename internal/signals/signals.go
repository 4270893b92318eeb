package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Context returns a context cancelled on the first SIGINT or SIGTERM. A second signal
// terminates the process with exit code 1.
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	c := make(chan os.Signal, 2)
	signal.Notify(c, shutdownSignals...)
	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
			signal.Stop(c)
			return
		}
		<-c
		os.Exit(1) // second signal. Exit directly.
	}()
	return ctx, cancel
}
