// Package layout computes signature layout geometry for booklet imposition.
//
// Given a landscape-fed sheet and the width of the incoming pages, the
// calculator derives the per-half-sheet page dimensions, the horizontal
// shift applied to the verso column so facing pages align at the spine,
// and the duplex transform applied to alternate sheets. The results are
// formatted into argument strings for the external imposition tools
// (pstops, psbook, psnup).
//
// The calculator performs no I/O and is total over well-formed inputs:
// parse failures are caught upstream in pkg/units and pkg/paper.
package layout

import (
	"fmt"

	"github.com/bookfold/bookfold/pkg/paper"
	"github.com/bookfold/bookfold/pkg/units"
)

// EdgeMode selects the duplex binding orientation of the target printer.
type EdgeMode int

const (
	// LongEdge is the default duplex mode. Long-edge mechanisms present
	// the back side mirrored relative to what booklet order needs, so the
	// verso sheet gets a 180° rotation about its own width/height.
	LongEdge EdgeMode = iota

	// ShortEdge is for printers that flip on the short edge. The printer
	// orients the back side correctly itself, so the verso transform is a
	// pure translation by the configured offsets, with no rotation.
	ShortEdge
)

// String returns the mode name for logging and display.
func (m EdgeMode) String() string {
	if m == ShortEdge {
		return "short-edge"
	}
	return "long-edge"
}

// Input collects everything the calculator needs for one invocation.
type Input struct {
	// Paper is the resolved landscape-fed sheet.
	Paper paper.Size

	// PageWidth is the measured width of the incoming pages. When zero
	// (no unit set) it defaults to the computed half-sheet page width,
	// which makes the verso shift zero.
	PageWidth units.Dimension

	// WidthOffset and HeightOffset are the verso alignment offsets.
	// Both default to 0pt when zero.
	WidthOffset  units.Dimension
	HeightOffset units.Dimension

	// Edge is the duplex binding mode of the target printer.
	Edge EdgeMode

	// Signature is the page count per gathered signature, passed through
	// to the reordering stage unchanged. Zero means the whole document is
	// one signature; the calculator never interprets the value.
	Signature int
}

// Layout is the immutable result of the geometry computation.
type Layout struct {
	// PageWidth is half the sheet height: two page widths per sheet.
	PageWidth units.Dimension

	// PageHeight is the full sheet width.
	PageHeight units.Dimension

	// VersoShift is pageWidth - inputPageWidth, in the input page width's
	// unit. Negative values pull the verso content back toward the spine
	// and are deliberate, never clamped.
	VersoShift units.Dimension

	// WidthOffset and HeightOffset are the verso offsets carried through
	// to the duplex transform.
	WidthOffset  units.Dimension
	HeightOffset units.Dimension

	// Edge is the duplex mode the transform strings were built for.
	Edge EdgeMode

	// Signature is the pass-through signature size.
	Signature int
}

// Compute derives the signature layout from in. It is computed once per
// invocation and never mutated afterwards.
func Compute(in Input) Layout {
	pageWidth := in.Paper.Height.Half()
	pageHeight := in.Paper.Width

	pageIn := in.PageWidth
	if pageIn.IsZero() {
		pageIn = pageWidth
	}

	wOff := in.WidthOffset
	if wOff.IsZero() {
		wOff = units.Zero
	}
	hOff := in.HeightOffset
	if hOff.IsZero() {
		hOff = units.Zero
	}

	return Layout{
		PageWidth:    pageWidth,
		PageHeight:   pageHeight,
		VersoShift:   pageWidth.Convert(pageIn.Unit).Sub(pageIn),
		WidthOffset:  wOff,
		HeightOffset: hOff,
		Edge:         in.Edge,
		Signature:    in.Signature,
	}
}

// InPaper formats the logical page size for the --inpaper argument of the
// two imposition stages, e.g. "105mmx297mm".
func (l Layout) InPaper() string {
	return fmt.Sprintf("%sx%s", l.PageWidth, l.PageHeight)
}

// ShiftSpec formats the pstops placement spec for the pre-shift stage.
// Pages are taken two at a time; the second page of each pair is displaced
// horizontally by the verso shift so facing pages align at the spine.
func (l Layout) ShiftSpec() string {
	return fmt.Sprintf("2:0,1(%s,0pt)", l.VersoShift)
}

// DuplexSpec formats the pstops placement spec for the duplex stage.
//
// Long-edge mode rotates the verso sheet 180° about its own width and
// height ("U(1w,1h)") to undo the mirroring of long-edge duplex
// mechanisms. Short-edge mode applies only the offset translation to the
// verso sheet; it carries no compensation beyond the configured offsets.
func (l Layout) DuplexSpec() string {
	if l.Edge == ShortEdge {
		return fmt.Sprintf("2:0(%s,%s),1(%s,%s)", l.WidthOffset, l.HeightOffset, l.WidthOffset, l.HeightOffset)
	}
	return fmt.Sprintf("2:0(%s,%s),1U(1w,1h)", l.WidthOffset, l.HeightOffset)
}
