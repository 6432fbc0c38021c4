package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bookfold/bookfold/pkg/errors"
	"github.com/bookfold/bookfold/pkg/layout"
)

// fakeExecer records the stages it is asked to run and can be told to
// fail at a named stage.
type fakeExecer struct {
	ran    []string
	failAt string
	output []byte
}

func (f *fakeExecer) Run(_ context.Context, stage Stage) ([]byte, error) {
	f.ran = append(f.ran, stage.Name)
	if stage.Name == f.failAt {
		return f.output, errors.New(errors.ErrCodeInternal, "exit status 2")
	}
	return nil, nil
}

// writeTestInput creates a placeholder input file and returns its path.
func writeTestInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Input:  writeTestInput(t),
		Output: filepath.Join(t.TempDir(), "out.pdf"),
		Paper:  "a4",
		Layout: layout.Compute(layout.Input{Paper: a4}),
	}
}

func TestExecuteRunsStagesInOrder(t *testing.T) {
	exec := &fakeExecer{}
	runner := NewRunner(exec, nil)

	result, err := runner.Execute(context.Background(), runOptions(t))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := []string{"pdf2ps", "shift", "book", "nup", "duplex", "ps2pdf"}
	if len(exec.ran) != len(want) {
		t.Fatalf("ran %d stages, want %d: %v", len(exec.ran), len(want), exec.ran)
	}
	for i := range want {
		if exec.ran[i] != want[i] {
			t.Errorf("stage %d = %q, want %q", i, exec.ran[i], want[i])
		}
	}

	for _, name := range want {
		if _, ok := result.Stats.StageTimes[name]; !ok {
			t.Errorf("missing stage time for %q", name)
		}
	}
}

func TestExecuteAbortsOnStageFailure(t *testing.T) {
	exec := &fakeExecer{failAt: "book", output: []byte("psbook: page count not a multiple of 4\n")}
	runner := NewRunner(exec, nil)

	_, err := runner.Execute(context.Background(), runOptions(t))
	if !errors.Is(err, errors.ErrCodeToolFailed) {
		t.Fatalf("Execute() error = %v, want TOOL_FAILED", err)
	}

	// Nothing after the failed stage may run.
	want := []string{"pdf2ps", "shift", "book"}
	if len(exec.ran) != len(want) {
		t.Errorf("ran stages %v, want %v", exec.ran, want)
	}

	// The diagnostic carries the stage name and the tool's own output.
	msg := errors.UserMessage(err)
	for _, fragment := range []string{"book", "psbook: page count not a multiple of 4"} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("diagnostic %q missing %q", msg, fragment)
		}
	}
}

func TestExecuteMissingInput(t *testing.T) {
	opts := runOptions(t)
	opts.Input = filepath.Join(t.TempDir(), "does-not-exist.pdf")

	exec := &fakeExecer{}
	_, err := NewRunner(exec, nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
	if len(exec.ran) != 0 {
		t.Errorf("stages ran despite missing input: %v", exec.ran)
	}
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Options)
		wantCode errors.Code
	}{
		{"missing input path", func(o *Options) { o.Input = "" }, errors.ErrCodeInvalidInput},
		{"missing output path", func(o *Options) { o.Output = "" }, errors.ErrCodeInvalidInput},
		{"bad signature", func(o *Options) { o.Layout.Signature = 6 }, errors.ErrCodeInvalidSignature},
		{"bad paper name", func(o *Options) { o.Paper = "a4;rm" }, errors.ErrCodeInvalidPaper},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := runOptions(t)
			tt.mutate(&opts)
			_, err := NewRunner(&fakeExecer{}, nil).Execute(context.Background(), opts)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Execute() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestExecuteKeepTemp(t *testing.T) {
	opts := runOptions(t)
	opts.KeepTemp = true

	result, err := NewRunner(&fakeExecer{}, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.WorkDir == "" {
		t.Fatal("WorkDir empty with KeepTemp set")
	}
	defer os.RemoveAll(result.WorkDir)

	if _, err := os.Stat(result.WorkDir); err != nil {
		t.Errorf("retained work directory missing: %v", err)
	}
}

func TestExecuteRemovesWorkDirByDefault(t *testing.T) {
	exec := &fakeExecer{}
	var workDir string

	// Capture the work directory from the first stage's output argument.
	result, err := NewRunner(&captureExecer{inner: exec, dir: &workDir}, nil).Execute(context.Background(), runOptions(t))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.WorkDir != "" {
		t.Errorf("WorkDir = %q, want empty without KeepTemp", result.WorkDir)
	}
	if workDir == "" {
		t.Fatal("did not observe a work directory")
	}
	if _, err := os.Stat(workDir); !os.IsNotExist(err) {
		t.Errorf("work directory %s still exists after run", workDir)
	}
}

// captureExecer records the directory of intermediate files while
// delegating to another execer.
type captureExecer struct {
	inner Execer
	dir   *string
}

func (c *captureExecer) Run(ctx context.Context, stage Stage) ([]byte, error) {
	if stage.Name == "pdf2ps" {
		*c.dir = filepath.Dir(stage.Args[len(stage.Args)-1])
	}
	return c.inner.Run(ctx, stage)
}
