// Command askchat is a terminal chat widget that posts each question to a
// question-answering endpoint and shows the conversation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is optional; the process environment still applies.
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds the values of the command-line flags.
type options struct {
	endpoint string
	path     string
	plain    bool
	logFile  string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "askchat",
		Short: "Chat with a question-answering endpoint",
		Long: `askchat posts every line you enter to the endpoint as {"question": ...}
and renders the reply under it.

Replies are shown as they arrive, so with several questions in flight a later
question can be answered first.

Run without a terminal (or with --plain) to read one question per line from
stdin and print the transcript to stdout.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.endpoint, "endpoint", "", "base URL of the backend (overrides ASK_BASE_URL)")
	flags.StringVar(&opts.path, "path", "", "endpoint path (overrides ASK_PATH)")
	flags.BoolVar(&opts.plain, "plain", false, "line mode: read stdin, print to stdout")
	flags.StringVar(&opts.logFile, "log-file", "", "diagnostic log file for the interactive UI (overrides ASK_LOG_FILE)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	return cmd
}
