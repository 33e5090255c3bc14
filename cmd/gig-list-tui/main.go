package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ZimbiX/gig-list-en/internal/cliutil"
	"github.com/ZimbiX/gig-list-en/internal/config"
	"github.com/ZimbiX/gig-list-en/internal/logging"
	"github.com/ZimbiX/gig-list-en/internal/model"
	"github.com/ZimbiX/gig-list-en/internal/pipeline"
	"github.com/ZimbiX/gig-list-en/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Run cancelled. Completed work is cached.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gig-list-tui",
		Short:         "Interactive terminal UI for gig-list.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts := cliutil.Bind(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), opts, cmd.OutOrStdout())
	}
	return cmd
}

func run(ctx context.Context, opts *cliutil.Options, stdout io.Writer) (err error) {
	creds, err := config.CredentialsFromEnv()
	if err != nil {
		return err
	}
	settings, err := opts.Settings()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; progress goes through the UI.
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.LevelDisabled
	logging.Setup(logCfg)

	defer func() {
		if merr := opts.WriteMetrics(); merr != nil && err == nil {
			err = merr
		}
	}()

	refresh := opts.Refresh()
	return tui.Run(ctx, stdout, opts.Verbose, func(onProgress func(pipeline.ProgressEvent)) tui.RunFunc {
		return func(ctx context.Context) (*model.Report, error) {
			p, err := pipeline.Open(settings, creds, onProgress)
			if err != nil {
				return nil, err
			}
			defer p.Close()
			return p.Run(ctx, refresh)
		}
	})
}
