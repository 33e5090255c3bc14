package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ZimbiX/gig-list-en/internal/cliutil"
	"github.com/ZimbiX/gig-list-en/internal/config"
	"github.com/ZimbiX/gig-list-en/internal/logging"
	"github.com/ZimbiX/gig-list-en/internal/pipeline"
	"github.com/ZimbiX/gig-list-en/internal/report"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gig-list",
		Short: "gig-list lists upcoming gigs of the bands a profile likes.",
		Long: `gig-list crawls the pages liked by a profile, finds each page's upcoming
events and prints them grouped by band.

Every step is cached under --cache-dir; use the --refresh-* flags to redo a step.
FACEBOOK_TOKEN (Graph API token) and FACEBOOK_COOKIE (mobile site session cookie)
must be set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts := cliutil.Bind(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return cmd
}

func run(ctx context.Context, opts *cliutil.Options, stdout, stderr io.Writer) (err error) {
	// Credentials first: nothing touches the network without them.
	creds, err := config.CredentialsFromEnv()
	if err != nil {
		return err
	}

	settings, err := opts.Settings()
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(settings.Format)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Output = stderr
	if opts.Verbose {
		logCfg.Level = logging.LevelDebug
	}
	logging.Setup(logCfg)

	defer func() {
		if merr := opts.WriteMetrics(); merr != nil && err == nil {
			err = merr
		}
	}()

	p, err := pipeline.Open(settings, creds, progressPrinter(stderr, opts.Verbose))
	if err != nil {
		return err
	}
	defer p.Close()

	result, err := p.Run(ctx, opts.Refresh())
	if err != nil {
		return err
	}

	return report.NewPrinter(format).Print(stdout, result)
}

// progressPrinter writes progress lines to w, hiding verbose ones unless
// verbose is set.
func progressPrinter(w io.Writer, verbose bool) func(pipeline.ProgressEvent) {
	return func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case pipeline.LevelError:
			prefix = "✗ "
		case pipeline.LevelWarning:
			prefix = "! "
		case pipeline.LevelSuccess:
			prefix = "✓ "
		case pipeline.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		if event.Total > 0 {
			fmt.Fprintf(w, "%s[%s %d/%d] %s\n", prefix, event.Stage, event.Done, event.Total, event.Message)
			return
		}
		fmt.Fprintln(w, prefix+event.Message)
	}
}
