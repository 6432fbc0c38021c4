package paper

import (
	"context"
	"sort"

	"github.com/bookfold/bookfold/pkg/errors"
)

// DefaultName is the paper size used when neither flag, config, nor the
// system database supplies one.
const DefaultName = "a4"

// builtinSizes maps paper names to description strings in the same format
// the system database produces (portrait HEIGHTxWIDTH, integer magnitudes).
// US sizes are stated in millimetres so the magnitudes stay integral.
var builtinSizes = map[string]string{
	"a3":      "a3: 420x297 mm",
	"a4":      "a4: 297x210 mm",
	"a5":      "a5: 210x148 mm",
	"a6":      "a6: 148x105 mm",
	"b5":      "b5: 250x176 mm",
	"letter":  "letter: 279x216 mm",
	"legal":   "legal: 356x216 mm",
	"tabloid": "tabloid: 432x279 mm",
}

// BuiltinDatabase resolves paper sizes from a fixed table of common ISO
// and US sheets. It serves as a fallback when the system paper utility is
// not installed, and as a deterministic database for tests.
type BuiltinDatabase struct{}

// Lookup returns the description string for name, or the default size
// when name is empty. Unknown names yield a PAPER_NOT_FOUND error.
func (BuiltinDatabase) Lookup(_ context.Context, name string) (string, error) {
	if name == "" {
		name = DefaultName
	}
	desc, ok := builtinSizes[name]
	if !ok {
		return "", errors.New(errors.ErrCodePaperNotFound, "unknown paper size %q", name)
	}
	return desc, nil
}

// Names returns the builtin paper names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtinSizes))
	for name := range builtinSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
