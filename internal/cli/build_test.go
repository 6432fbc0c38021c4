package cli

import (
	"context"
	"testing"

	"github.com/bookfold/bookfold/pkg/errors"
	"github.com/bookfold/bookfold/pkg/units"
)

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"thesis.pdf", "thesis-book.pdf"},
		{"dir/thesis.pdf", "dir/thesis-book.pdf"},
		{"noext", "noext-book.pdf"},
		{"two.dots.pdf", "two.dots-book.pdf"},
	}

	for _, tt := range tests {
		if got := defaultOutput(tt.input); got != tt.want {
			t.Errorf("defaultOutput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseOptionalDimension(t *testing.T) {
	d, err := parseOptionalDimension("")
	if err != nil {
		t.Fatalf("empty value should not error, got %v", err)
	}
	if !d.IsZero() {
		t.Errorf("empty value = %v, want zero Dimension", d)
	}

	d, err = parseOptionalDimension("420pt")
	if err != nil {
		t.Fatalf("parseOptionalDimension(420pt) error = %v", err)
	}
	if d != (units.Dimension{Value: 420, Unit: units.Point}) {
		t.Errorf("parseOptionalDimension(420pt) = %v", d)
	}

	if _, err := parseOptionalDimension("420furlong"); !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Errorf("bad dimension error = %v, want INVALID_DIMENSION", err)
	}
}

func TestComputeLayoutMergesConfigPaper(t *testing.T) {
	// Flagless invocation falls back to the config's paper; the builtin
	// database keeps the test hermetic.
	opts := geometryOpts{}
	cfg := Config{Paper: "a5", PaperDB: "builtin"}

	lay, size, err := opts.computeLayout(context.Background(), cfg)
	if err != nil {
		t.Fatalf("computeLayout() error = %v", err)
	}

	// A5 portrait is 210x148mm, landscape-fed 210 wide, 148 high.
	if size.Width != (units.Dimension{Value: 210, Unit: units.Millimetre}) {
		t.Errorf("sheet width = %v, want 210mm", size.Width)
	}
	if lay.PageWidth != (units.Dimension{Value: 74, Unit: units.Millimetre}) {
		t.Errorf("page width = %v, want 74mm", lay.PageWidth)
	}
}

func TestComputeLayoutFlagOverridesConfig(t *testing.T) {
	opts := geometryOpts{paper: "a4"}
	cfg := Config{Paper: "a5", PaperDB: "builtin"}

	_, size, err := opts.computeLayout(context.Background(), cfg)
	if err != nil {
		t.Fatalf("computeLayout() error = %v", err)
	}
	if size.Width != (units.Dimension{Value: 297, Unit: units.Millimetre}) {
		t.Errorf("sheet width = %v, want 297mm (a4)", size.Width)
	}

	if got := opts.paperName(cfg); got != "a4" {
		t.Errorf("paperName() = %q, want a4", got)
	}
}

func TestComputeLayoutRejectsBadSignature(t *testing.T) {
	opts := geometryOpts{signature: 6}
	_, _, err := opts.computeLayout(context.Background(), Config{PaperDB: "builtin"})
	if !errors.Is(err, errors.ErrCodeInvalidSignature) {
		t.Errorf("error = %v, want INVALID_SIGNATURE", err)
	}
}

func TestComputeLayoutRejectsBadDimension(t *testing.T) {
	opts := geometryOpts{pageWidth: "12cubits"}
	_, _, err := opts.computeLayout(context.Background(), Config{PaperDB: "builtin"})
	if !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Errorf("error = %v, want INVALID_DIMENSION", err)
	}
}
