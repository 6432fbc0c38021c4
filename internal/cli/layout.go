package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newLayoutCmd creates the layout command, a debug aid that prints the
// computed signature layout and the exact argument strings the pipeline
// would pass to the imposition tools, without running anything.
func newLayoutCmd() *cobra.Command {
	opts := geometryOpts{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the computed signature layout without running the pipeline",
		Long: `Print the signature layout geometry and the tool argument strings
derived from the selected paper size and page geometry.

Examples:
  bookfold layout                      # layout for the default paper
  bookfold layout -p a5 -w 300pt       # A5 sheets, 300pt input pages
  bookfold layout --short-edge         # short-edge duplex transform`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runLayout(c.Context(), &opts)
		},
	}

	opts.addGeometryFlags(cmd)

	return cmd
}

// runLayout resolves the paper size, computes the layout, and prints it.
func runLayout(ctx context.Context, opts *geometryOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		logger.Warnf("Ignoring config: %v", err)
	}

	lay, size, err := opts.computeLayout(ctx, cfg)
	if err != nil {
		return err
	}

	signature := "whole document"
	if lay.Signature > 0 {
		signature = fmt.Sprintf("%d pages", lay.Signature)
	}

	printKeyValue("sheet", fmt.Sprintf("%s x %s (landscape feed)", size.Width, size.Height))
	printKeyValue("page width", lay.PageWidth.String())
	printKeyValue("page height", lay.PageHeight.String())
	printKeyValue("verso shift", lay.VersoShift.String())
	printKeyValue("duplex", lay.Edge.String())
	printKeyValue("signature", signature)
	printKeyValue("inpaper", lay.InPaper())
	printKeyValue("shift spec", lay.ShiftSpec())
	printKeyValue("duplex spec", lay.DuplexSpec())

	return nil
}
