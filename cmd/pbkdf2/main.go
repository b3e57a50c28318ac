// Command pbkdf2 derives keys from passwords with PBKDF2.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		// A second interrupt terminates the process.
		<-ctx.Done()
		stop()
	}()
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		// Error is already printed by cobra
		os.Exit(1)
	}
}
