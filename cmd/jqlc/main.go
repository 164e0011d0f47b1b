// Command jqlc compiles query definitions into JQL.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/jqlkit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(cli.GetExitCode(err))
}
