// Package units implements dimensions with exact unit conversion.
//
// PostScript tools measure in points while paper databases usually speak
// millimetres, so every quantity in bookfold is a Dimension: a numeric
// value tagged with its unit. The unit set is closed (point, millimetre,
// inch) and conversion ratios are fixed: 1 inch = 72 pt, 1 inch = 25.4 mm.
//
// The conversion table is built once at package init and never written
// afterwards; all arithmetic goes through it explicitly.
package units

import (
	"regexp"
	"strconv"

	"github.com/bookfold/bookfold/pkg/errors"
)

// Unit is a physical length unit. The set is closed; see the constants.
type Unit string

// Supported units. The string values double as the parse/format suffixes.
const (
	Point      Unit = "pt"
	Millimetre Unit = "mm"
	Inch       Unit = "inch"
)

// Exact conversion constants: 1 inch = 72 pt, 1 inch = 25.4 mm.
const (
	pointsPerInch = 72.0
	mmPerInch     = 25.4
)

// pointsPer maps each unit to its size in points. Constructed once from
// the constants above; read-only after init.
var pointsPer = map[Unit]float64{
	Point:      1,
	Inch:       pointsPerInch,
	Millimetre: pointsPerInch / mmPerInch,
}

// Valid reports whether u is one of the supported units.
func Valid(u Unit) bool {
	_, ok := pointsPer[u]
	return ok
}

// Dimension is a length: a numeric value tagged with its unit.
// Dimensions are immutable; arithmetic returns new values.
type Dimension struct {
	Value float64
	Unit  Unit
}

// dimensionRe matches a dimension string: an integer magnitude followed
// immediately by a unit suffix, e.g. "420pt", "210mm", "8inch".
var dimensionRe = regexp.MustCompile(`^(\d+)(pt|mm|inch)$`)

// Parse parses a dimension string of the form <digits><unit>.
// The magnitude must be a non-negative integer and the unit suffix one of
// pt, mm or inch. Anything else yields an INVALID_DIMENSION error.
func Parse(s string) (Dimension, error) {
	m := dimensionRe.FindStringSubmatch(s)
	if m == nil {
		return Dimension{}, errors.New(errors.ErrCodeInvalidDimension,
			"invalid dimension %q (expected <digits><pt|mm|inch>, e.g. 420pt)", s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Dimension{}, errors.Wrap(errors.ErrCodeInvalidDimension, err, "invalid dimension %q", s)
	}
	return Dimension{Value: v, Unit: Unit(m[2])}, nil
}

// MustParse parses a dimension string and panics on failure.
// Intended for constants and flag defaults known to be valid.
func MustParse(s string) Dimension {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Convert rescales d to the target unit using the fixed conversion table.
// Converting to the same unit returns d unchanged.
func (d Dimension) Convert(to Unit) Dimension {
	if d.Unit == to {
		return d
	}
	return Dimension{Value: d.Value * pointsPer[d.Unit] / pointsPer[to], Unit: to}
}

// Points returns the value of d expressed in points.
func (d Dimension) Points() float64 {
	return d.Value * pointsPer[d.Unit]
}

// Add returns d + o. The operand is normalized to d's unit first and the
// result keeps d's unit.
func (d Dimension) Add(o Dimension) Dimension {
	return Dimension{Value: d.Value + o.Convert(d.Unit).Value, Unit: d.Unit}
}

// Sub returns d - o. The operand is normalized to d's unit first and the
// result keeps d's unit. Negative results are meaningful (a pull toward
// the spine) and are never clamped.
func (d Dimension) Sub(o Dimension) Dimension {
	return Dimension{Value: d.Value - o.Convert(d.Unit).Value, Unit: d.Unit}
}

// Half returns d / 2 in the same unit.
func (d Dimension) Half() Dimension {
	return Dimension{Value: d.Value / 2, Unit: d.Unit}
}

// IsZero reports whether d is the zero Dimension (no unit set).
// A parsed "0pt" is not zero in this sense; it has a unit.
func (d Dimension) IsZero() bool {
	return d.Unit == ""
}

// String renders d as {magnitude}{unit} with no internal spaces, e.g.
// "105mm" or "-122.36220472440948pt". The magnitude is the stored value:
// integral magnitudes render without a decimal part, converted ones keep
// their full precision so repeated conversions stay consistent.
func (d Dimension) String() string {
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + string(d.Unit)
}

// Zero is a zero-length dimension in points, used as the default for
// optional offsets.
var Zero = Dimension{Value: 0, Unit: Point}
