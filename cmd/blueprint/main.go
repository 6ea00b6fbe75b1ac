// Command blueprint generates Laravel migrations and Eloquent models from a
// schema document.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.LookupEnv).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
