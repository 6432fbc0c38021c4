// Package paper resolves named paper sizes.
//
// Physical sheet dimensions come from a paper database: either the system
// paper utility (libpaper's "paper" command) or a builtin table of common
// sizes. The database is a collaborator that returns a fixed-format
// description string; this package parses it into a Size.
//
// Booklet sheets are landscape-fed: the portrait height of the named paper
// runs along the feed axis and becomes the sheet width, while the portrait
// width becomes the sheet height that is later halved into two page widths.
package paper

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/bookfold/bookfold/pkg/errors"
	"github.com/bookfold/bookfold/pkg/observability"
	"github.com/bookfold/bookfold/pkg/units"
)

// Size is a physical sheet as fed to the printer (landscape).
// Width is the feed (long) axis; Height is the axis halved into two
// page widths during imposition. Width < Height is not required.
type Size struct {
	Width  units.Dimension
	Height units.Dimension
}

// Database looks up named paper sizes.
//
// Lookup returns the raw description string for the named size in the
// fixed format "<desc>: HxW unit", where H and W are the portrait height
// and width as integers and unit is a lowercase unit code, e.g.
// "a4: 297x210 mm". An empty name requests the database's default size.
type Database interface {
	Lookup(ctx context.Context, name string) (string, error)
}

// sizeRe extracts the portrait HEIGHTxWIDTH pair and unit code from a
// database description string.
var sizeRe = regexp.MustCompile(`(\d+)x(\d+) ([a-z]+)`)

// Resolve looks up name in db and parses the result into a landscape-fed
// Size. The portrait height becomes Size.Width and the portrait width
// becomes Size.Height.
//
// Lookup failures and unparseable descriptions yield a PAPER_LOOKUP_FAILED
// error; an unsupported unit code yields INVALID_PAPER.
func Resolve(ctx context.Context, db Database, name string) (Size, error) {
	if err := errors.ValidatePaperName(name); err != nil {
		return Size{}, err
	}

	observability.Paper().OnLookup(ctx, name)
	raw, err := db.Lookup(ctx, name)
	observability.Paper().OnLookupComplete(ctx, name, raw, err)
	if err != nil {
		return Size{}, errors.Wrap(errors.ErrCodePaperLookup, err, "paper size lookup for %q failed", displayName(name))
	}

	m := sizeRe.FindStringSubmatch(raw)
	if m == nil {
		return Size{}, errors.New(errors.ErrCodePaperLookup, "unparseable paper description %q for %q", strings.TrimSpace(raw), displayName(name))
	}

	h, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Size{}, errors.Wrap(errors.ErrCodePaperLookup, err, "paper height in %q", raw)
	}
	w, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Size{}, errors.Wrap(errors.ErrCodePaperLookup, err, "paper width in %q", raw)
	}

	unit := units.Unit(m[3])
	if !units.Valid(unit) {
		return Size{}, errors.New(errors.ErrCodeInvalidPaper, "unsupported unit %q in paper description %q", m[3], raw)
	}

	// Landscape feed: portrait height → sheet width, portrait width →
	// sheet height.
	return Size{
		Width:  units.Dimension{Value: h, Unit: unit},
		Height: units.Dimension{Value: w, Unit: unit},
	}, nil
}

func displayName(name string) string {
	if name == "" {
		return "(default)"
	}
	return name
}

// SystemDatabase resolves paper sizes through the system paper utility.
type SystemDatabase struct {
	// Command is the paper utility to invoke. Defaults to "paper".
	Command string
}

// Lookup runs the paper utility and returns the first line of its output.
// With an empty name the utility reports the system default size.
func (d *SystemDatabase) Lookup(ctx context.Context, name string) (string, error) {
	cmd := d.Command
	if cmd == "" {
		cmd = "paper"
	}

	args := []string{"--unit=mm"}
	if name != "" {
		args = append(args, name)
	}

	out, err := exec.CommandContext(ctx, cmd, args...).Output()
	if err != nil {
		return "", err
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}
