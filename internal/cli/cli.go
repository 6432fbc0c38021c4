package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bookfold/bookfold/pkg/buildinfo"
)

// Execute runs the bookfold CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (build,
// layout, papers, completion), configures logging based on the --verbose
// flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:           "bookfold",
		Short:         "bookfold imposes PDFs into print-ready booklets",
		Long:          `bookfold turns a PDF of individually-ordered pages into a print-ready booklet PDF by computing a signature layout and driving the PostScript utilities pdf2ps, pstops, psbook, psnup, and ps2pdf.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newPapersCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
