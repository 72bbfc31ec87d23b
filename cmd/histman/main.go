package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/aeskafi/HistoryManager/internal/cli"
	histerrors "github.com/aeskafi/HistoryManager/internal/errors"
)

// Version is set at build time using ldflags
var Version = "dev"

// Commit is set at build time using ldflags
var Commit = "unknown"

// Date is set at build time using ldflags
var Date = "unknown"

// BuiltBy is set at build time using ldflags
var BuiltBy = "unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCommand(cli.VersionInfo{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		BuiltBy: BuiltBy,
	})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "histman: %v\n", err)
		stop()
		os.Exit(histerrors.ExitCode(err))
	}
}
