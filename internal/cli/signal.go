package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// interruptContext is cancelled on Ctrl+C or SIGTERM
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
