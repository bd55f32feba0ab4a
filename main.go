// pdlink - a dual-mode TCP bridge to a running Pure Data instance.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pdlink/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pdlink: %v\n", err)
		os.Exit(1)
	}
}
