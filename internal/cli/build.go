package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookfold/bookfold/pkg/errors"
	"github.com/bookfold/bookfold/pkg/layout"
	"github.com/bookfold/bookfold/pkg/paper"
	"github.com/bookfold/bookfold/pkg/pipeline"
	"github.com/bookfold/bookfold/pkg/units"
)

// geometryOpts holds the flags shared by the build and layout commands.
// These select the paper sheet and describe the incoming pages.
type geometryOpts struct {
	paper        string // named paper size ("" = database default)
	signature    int    // pages per signature, 0 = whole document
	shortEdge    bool   // printer flips on the short edge
	pageWidth    string // measured input page width, e.g. "420pt"
	widthOffset  string // verso horizontal offset
	heightOffset string // verso vertical offset
}

// addGeometryFlags registers the shared geometry flags on cmd.
func (o *geometryOpts) addGeometryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.paper, "paper", "p", "", "paper size name (default: system paper size)")
	cmd.Flags().IntVarP(&o.signature, "signature", "s", 0, "pages per signature, multiple of 4 (0 = whole document)")
	cmd.Flags().BoolVar(&o.shortEdge, "short-edge", false, "printer duplexes on the short edge")
	cmd.Flags().StringVarP(&o.pageWidth, "page-width", "w", "", "width of the input pages, e.g. 420pt (default: half sheet)")
	cmd.Flags().StringVar(&o.widthOffset, "width-offset", "", "verso horizontal offset, e.g. 3mm")
	cmd.Flags().StringVar(&o.heightOffset, "height-offset", "", "verso vertical offset, e.g. 2mm")
}

// computeLayout resolves the paper size and derives the signature layout
// from the geometry flags.
func (o *geometryOpts) computeLayout(ctx context.Context, cfg Config) (layout.Layout, paper.Size, error) {
	if err := errors.ValidateSignature(o.signature); err != nil {
		return layout.Layout{}, paper.Size{}, err
	}

	name := o.paper
	if name == "" {
		name = cfg.Paper
	}
	size, err := paper.Resolve(ctx, cfg.database(), name)
	if err != nil {
		return layout.Layout{}, paper.Size{}, err
	}

	pageWidth, err := parseOptionalDimension(o.pageWidth)
	if err != nil {
		return layout.Layout{}, paper.Size{}, err
	}
	widthOffset, err := parseOptionalDimension(o.widthOffset)
	if err != nil {
		return layout.Layout{}, paper.Size{}, err
	}
	heightOffset, err := parseOptionalDimension(o.heightOffset)
	if err != nil {
		return layout.Layout{}, paper.Size{}, err
	}

	edge := layout.LongEdge
	if o.shortEdge {
		edge = layout.ShortEdge
	}

	lay := layout.Compute(layout.Input{
		Paper:        size,
		PageWidth:    pageWidth,
		WidthOffset:  widthOffset,
		HeightOffset: heightOffset,
		Edge:         edge,
		Signature:    o.signature,
	})
	return lay, size, nil
}

// paperName returns the effective paper size name after merging flag and
// config, which is what psnup's --paper flag receives.
func (o *geometryOpts) paperName(cfg Config) string {
	if o.paper != "" {
		return o.paper
	}
	return cfg.Paper
}

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	geometryOpts
	output   string // output file path (derived from input if empty)
	keepTemp bool   // retain intermediate files for inspection
}

// newBuildCmd creates the build command, the tool's main operation.
//
// Default options:
//   - paper: the system default paper size
//   - signature: 0 (gather the whole document as one signature)
//   - duplex: long-edge (verso sheets rotated 180°)
func newBuildCmd() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build <input.pdf>",
		Short: "Impose a PDF into a print-ready booklet",
		Long: `Impose a PDF of individually-ordered pages into a print-ready booklet PDF.

The input is converted to PostScript, shifted so facing pages align at the
spine, reordered into signature order, imposed two-up, given the duplex
transform, and converted back to PDF.

Examples:
  bookfold build thesis.pdf                          # A4 (or system default), one signature
  bookfold build thesis.pdf -s 16 -w 420pt           # 16-page signatures, 420pt input pages
  bookfold build thesis.pdf --short-edge -o out.pdf  # short-edge duplex printer`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c.Context(), &opts, args[0])
		},
	}

	opts.addGeometryFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>-book.pdf)")
	cmd.Flags().BoolVar(&opts.keepTemp, "keep-temp", false, "keep intermediate files for inspection")

	return cmd
}

// runBuild computes the layout and drives the imposition pipeline.
func runBuild(ctx context.Context, opts *buildOpts, input string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		logger.Warnf("Ignoring config: %v", err)
	}

	if _, err := os.Stat(input); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", input)
	}

	lay, size, err := opts.computeLayout(ctx, cfg)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = defaultOutput(input)
	}

	logger.Infof("Imposing %s on %sx%s sheets (%s duplex)", input, size.Width, size.Height, lay.Edge)
	logger.Debug("computed layout",
		"page_width", lay.PageWidth,
		"page_height", lay.PageHeight,
		"verso_shift", lay.VersoShift,
		"signature", lay.Signature)

	spinner := newSpinner(ctx, "running imposition pipeline")
	spinner.Start()

	runner := pipeline.NewRunner(nil, logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:    input,
		Output:   output,
		Paper:    opts.paperName(cfg),
		Layout:   lay,
		KeepTemp: opts.keepTemp || cfg.KeepTemp,
		Tools:    cfg.toolchain(),
		Logger:   logger,
	})
	if err != nil {
		spinner.StopWithError("Imposition failed")
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Booklet written (%s)", result.Stats.Total.Round(time.Millisecond)))
	printFile(output)
	if result.WorkDir != "" {
		printDetail("intermediate files kept in %s", result.WorkDir)
	}

	return nil
}

// defaultOutput derives the output path from the input path:
// "thesis.pdf" becomes "thesis-book.pdf".
func defaultOutput(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "-book.pdf"
}

// parseOptionalDimension parses a dimension flag value, treating the
// empty string as the zero Dimension (which downstream code defaults).
func parseOptionalDimension(s string) (units.Dimension, error) {
	if s == "" {
		return units.Dimension{}, nil
	}
	return units.Parse(s)
}
