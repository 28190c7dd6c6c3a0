// Package golden runs VLang scripts and compares what they print and
// report against a stored .golden file next to each script.
package golden

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vlang-lab/vlang/internal/interpreter"
)

// Extensions of scripts and their expected results.
const (
	ScriptExt = ".vl"
	GoldenExt = ".golden"
)

const diagnosticsHeader = "-- diagnostics --\n"

// Status is the outcome of one script.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusUpdated Status = "updated"
	StatusCreated Status = "created"
)

// Options controls the runner.
type Options struct {
	// Update rewrites golden files that are missing or differ
	Update bool
	// Jobs bounds how many scripts run at once; <= 0 means unbounded
	Jobs        int
	Interpreter []interpreter.Option
}

// Result describes one verified script.
type Result struct {
	Script string `json:"script" yaml:"script"`
	Golden string `json:"golden" yaml:"golden"`
	Status Status `json:"status" yaml:"status"`
	Diff   string `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// Runner verifies scripts against their golden files.
type Runner struct {
	opts Options
}

// New creates a runner.
func New(opts Options) *Runner {
	return &Runner{opts: opts}
}

// GoldenPath returns the golden file for script.
func GoldenPath(script string) string {
	return strings.TrimSuffix(script, filepath.Ext(script)) + GoldenExt
}

// Discover expands directories into the scripts below them. Files are
// kept as given. The result is sorted.
func Discover(paths []string) ([]string, error) {
	var scripts []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			scripts = append(scripts, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == ScriptExt {
				scripts = append(scripts, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}
	sort.Strings(scripts)
	return scripts, nil
}

// Render runs src and formats its output followed by one line per
// diagnostic.
func Render(src, filename string, opts ...interpreter.Option) string {
	result := interpreter.Run(src, filename, opts...)

	var b strings.Builder
	b.WriteString(result.Output)
	if len(result.Diagnostics) == 0 {
		return b.String()
	}
	if result.Output != "" && !strings.HasSuffix(result.Output, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(diagnosticsHeader)
	for _, d := range result.Diagnostics {
		fmt.Fprintf(&b, "%s %s %d:%d: %s\n", d.Category.Severity(), d.Code, d.Line(), d.Column(), d.Message)
	}
	return b.String()
}

// Verify runs one script and checks it against its golden file.
func (r *Runner) Verify(script string) (Result, error) {
	res := Result{Script: script, Golden: GoldenPath(script)}

	src, err := os.ReadFile(script)
	if err != nil {
		return res, fmt.Errorf("failed to read %s: %w", script, err)
	}
	actual := Render(string(src), filepath.Base(script), r.opts.Interpreter...)

	expected, err := os.ReadFile(res.Golden)
	switch {
	case os.IsNotExist(err):
		if !r.opts.Update {
			res.Status = StatusFail
			res.Diff = fmt.Sprintf("golden file %s does not exist; run with --update to create it", res.Golden)
			return res, nil
		}
		res.Status = StatusCreated
		return res, os.WriteFile(res.Golden, []byte(actual), 0o644)
	case err != nil:
		return res, fmt.Errorf("failed to read golden file %s: %w", res.Golden, err)
	}

	if string(expected) == actual {
		res.Status = StatusPass
		return res, nil
	}
	if r.opts.Update {
		res.Status = StatusUpdated
		return res, os.WriteFile(res.Golden, []byte(actual), 0o644)
	}
	res.Status = StatusFail
	res.Diff = Diff(string(expected), actual)
	return res, nil
}

// Run verifies every script, several at a time. Results keep the order
// of scripts.
func (r *Runner) Run(ctx context.Context, scripts []string) ([]Result, error) {
	results := make([]Result, len(scripts))
	g, gctx := errgroup.WithContext(ctx)
	if r.opts.Jobs > 0 {
		g.SetLimit(r.opts.Jobs)
	}
	for i, script := range scripts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.Verify(script)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Diff lists the lines that differ between expected and actual.
func Diff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var diff strings.Builder
	n := max(len(expectedLines), len(actualLines))
	for i := 0; i < n; i++ {
		var want, got string
		if i < len(expectedLines) {
			want = expectedLines[i]
		}
		if i < len(actualLines) {
			got = actualLines[i]
		}
		if want != got {
			fmt.Fprintf(&diff, "line %d:\n- %s\n+ %s\n", i+1, want, got)
		}
	}
	return diff.String()
}

// Report writes one line per script, the diffs of failures and a
// summary. It returns the number of failures.
func Report(w io.Writer, results []Result) int {
	counts := map[Status]int{}
	for _, r := range results {
		counts[r.Status]++
		fmt.Fprintf(w, "%-7s %s\n", strings.ToUpper(string(r.Status)), r.Script)
		if r.Status == StatusFail && r.Diff != "" {
			for _, line := range strings.Split(strings.TrimRight(r.Diff, "\n"), "\n") {
				fmt.Fprintf(w, "        %s\n", line)
			}
		}
	}
	fmt.Fprintf(w, "\n%d script(s): %d passed, %d failed, %d updated, %d created\n",
		len(results), counts[StatusPass], counts[StatusFail], counts[StatusUpdated], counts[StatusCreated])
	return counts[StatusFail]
}
