// Command digest selects, renders and dispatches the daily digest campaign.
//
// Without a subcommand it performs one pass and exits:
//
//	digest                 # one run of DIGEST_KIND
//	digest serve           # scheduled runs plus /healthz and /readyz
//	digest trigger         # enqueue an immediate scheduled run
//	digest migrate         # content and queue schema
//	digest preview --date 2024-07-14 --out letter.html
//	digest test-send --to qa@example.com
//	digest activity stats
//	digest upcoming --days 7
//
// Exit status is 0 on success (including runs with nothing to send), 2 on
// configuration errors and 1 on any other failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/digest/pkg/dispatch"
	"github.com/dmitrymomot/digest/pkg/logger"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2

	sentryFlushTimeout = 2 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	logger.Flush(sentryFlushTimeout)
	if err != nil {
		fmt.Fprintf(stderr, "digest: %v\n", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, dispatch.ErrConfiguration):
		return exitConfig
	default:
		return exitFailed
	}
}
