// Package pipeline drives the external PostScript tool chain that turns a
// PDF of individually-ordered pages into a print-ready booklet PDF.
//
// # Architecture
//
// The pipeline is a strict linear sequence of six stages, each an external
// tool consuming the previous stage's output file:
//
//  1. pdf2ps: convert the input PDF to PostScript
//  2. pstops: shift the verso column so facing pages align at the spine
//  3. psbook: reorder pages into signature (booklet) order
//  4. psnup:  impose two logical pages per physical sheet
//  5. pstops: apply the duplex transform to alternate sheets
//  6. ps2pdf: convert back to PDF, preserving computed rotations
//
// Stages run sequentially; the first failure aborts the run, since each
// stage's output is required input for the next. There is no retry and no
// partial-result recovery. Intermediate files live in a per-run work
// directory that is removed on completion unless retention is requested.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "thesis.pdf",
//	    Output: "thesis-book.pdf",
//	    Paper:  "a4",
//	    Layout: lay,
//	})
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/bookfold/bookfold/pkg/errors"
	"github.com/bookfold/bookfold/pkg/layout"
)

// Toolchain names the external tools the pipeline invokes. Empty fields
// fall back to the conventional names found on PATH.
type Toolchain struct {
	PDF2PS string
	PSTops string
	PSBook string
	PSNup  string
	PS2PDF string
}

// setDefaults fills empty tool names with the conventional ones.
func (t *Toolchain) setDefaults() {
	if t.PDF2PS == "" {
		t.PDF2PS = "pdf2ps"
	}
	if t.PSTops == "" {
		t.PSTops = "pstops"
	}
	if t.PSBook == "" {
		t.PSBook = "psbook"
	}
	if t.PSNup == "" {
		t.PSNup = "psnup"
	}
	if t.PS2PDF == "" {
		t.PS2PDF = "ps2pdf"
	}
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input is the path of the source PDF. It must exist.
	Input string

	// Output is the path of the booklet PDF to write.
	Output string

	// Paper is the named paper size handed to psnup's --paper flag.
	// Empty means the tool's own default.
	Paper string

	// Layout is the precomputed signature layout geometry.
	Layout layout.Layout

	// KeepTemp retains the work directory with all intermediate files
	// for inspection instead of removing it on completion.
	KeepTemp bool

	// Tools overrides the external tool names.
	Tools Toolchain

	// Logger receives per-stage progress. Defaults to the runner's logger.
	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Output is the path of the written booklet PDF.
	Output string

	// WorkDir is the retained work directory, or empty if it was removed.
	WorkDir string

	// Stats contains timing information per stage.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StageTimes map[string]time.Duration
	Total      time.Duration
}

// validate checks required fields. Input existence is checked separately
// by the runner so missing files surface as FILE_NOT_FOUND rather than a
// generic validation error.
func (o *Options) validate() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file is required")
	}
	if o.Output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output file is required")
	}
	if err := errors.ValidateSignature(o.Layout.Signature); err != nil {
		return err
	}
	if err := errors.ValidatePaperName(o.Paper); err != nil {
		return err
	}
	o.Tools.setDefaults()
	return nil
}
