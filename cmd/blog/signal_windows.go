//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext cancels on an interrupt. Windows has no SIGTERM.
// Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
