package pipeline

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
)

// Stage is one external tool invocation in the pipeline.
type Stage struct {
	// Name identifies the stage in logs, hooks, and failure diagnostics.
	Name string

	// Command is the tool to invoke.
	Command string

	// Args are the complete tool arguments, input and output paths
	// included.
	Args []string
}

// String renders the stage as the command line it will run.
func (s Stage) String() string {
	return s.Command + " " + fmt.Sprint(s.Args)
}

// Execer runs pipeline stages. The production implementation shells out;
// tests substitute a fake to observe stage ordering without external
// tools installed.
type Execer interface {
	// Run executes the stage and returns its combined output.
	Run(ctx context.Context, stage Stage) ([]byte, error)
}

// systemExecer runs stages as real subprocesses.
type systemExecer struct{}

// Run executes the stage via exec, capturing stdout and stderr together
// so failure diagnostics include whatever the tool printed.
func (systemExecer) Run(ctx context.Context, stage Stage) ([]byte, error) {
	return exec.CommandContext(ctx, stage.Command, stage.Args...).CombinedOutput()
}

// Stages builds the ordered stage list for opts with intermediate files
// rooted in workDir. The list is fixed at six stages; only the arguments
// vary with the computed layout.
func Stages(opts Options, workDir string) []Stage {
	lay := opts.Layout
	inpaper := "--inpaper=" + lay.InPaper()

	pages := filepath.Join(workDir, "pages.ps")
	shifted := filepath.Join(workDir, "shifted.ps")
	booked := filepath.Join(workDir, "booked.ps")
	twoup := filepath.Join(workDir, "twoup.ps")
	duplex := filepath.Join(workDir, "duplex.ps")

	// psbook with no -s gathers the whole document as a single signature;
	// the zero value is passed through as the flag's absence.
	bookArgs := []string{}
	if lay.Signature > 0 {
		bookArgs = append(bookArgs, fmt.Sprintf("-s%d", lay.Signature))
	}
	bookArgs = append(bookArgs, shifted, booked)

	nupArgs := []string{}
	if opts.Paper != "" {
		nupArgs = append(nupArgs, "--paper="+opts.Paper)
	}
	nupArgs = append(nupArgs, inpaper, "-2", booked, twoup)

	return []Stage{
		{
			Name:    "pdf2ps",
			Command: opts.Tools.PDF2PS,
			Args:    []string{opts.Input, pages},
		},
		{
			Name:    "shift",
			Command: opts.Tools.PSTops,
			Args:    []string{inpaper, lay.ShiftSpec(), pages, shifted},
		},
		{
			Name:    "book",
			Command: opts.Tools.PSBook,
			Args:    bookArgs,
		},
		{
			Name:    "nup",
			Command: opts.Tools.PSNup,
			Args:    nupArgs,
		},
		{
			Name:    "duplex",
			Command: opts.Tools.PSTops,
			Args:    []string{inpaper, lay.DuplexSpec(), twoup, duplex},
		},
		{
			Name:    "ps2pdf",
			Command: opts.Tools.PS2PDF,
			// AutoRotatePages would discard the duplex rotations the
			// previous stage just computed.
			Args: []string{"-dAutoRotatePages=/None", duplex, opts.Output},
		},
	}
}
