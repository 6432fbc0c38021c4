package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookfold/bookfold/pkg/paper"
)

// newPapersCmd creates the papers command for listing and querying paper
// sizes.
func newPapersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "papers [name]",
		Short: "List known paper sizes or query the paper database",
		Long: `Without arguments, list the builtin paper sizes. With a name, resolve
that size through the configured paper database (the system paper utility
by default) and print the resulting sheet geometry.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 1 {
				return queryPaper(c.Context(), args[0])
			}
			return listPapers()
		},
	}
}

// listPapers prints the builtin paper table.
func listPapers() error {
	fmt.Println(StyleTitle.Render("Builtin paper sizes") + StyleDim.Render(" (landscape feed)"))
	for _, name := range paper.Names() {
		size, err := paper.Resolve(context.Background(), paper.BuiltinDatabase{}, name)
		if err != nil {
			return err
		}
		printKeyValue(name, fmt.Sprintf("%s x %s", size.Width, size.Height))
	}
	return nil
}

// queryPaper resolves name through the configured database and prints the
// sheet and derived page geometry.
func queryPaper(ctx context.Context, name string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		logger.Warnf("Ignoring config: %v", err)
	}

	prog := newProgress(logger)
	size, err := paper.Resolve(ctx, cfg.database(), name)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %s", name))

	printKeyValue("sheet", fmt.Sprintf("%s x %s (landscape feed)", size.Width, size.Height))
	printKeyValue("page width", size.Height.Half().String())
	printKeyValue("page height", size.Width.String())

	return nil
}
