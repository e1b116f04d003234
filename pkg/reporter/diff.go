package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// DiffReporter prints the fixes of each file as a unified diff between the
// original text and the fixed output, followed by a git-style stat line.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. The returned count is the number of files
// with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		if file.File == nil || file.File.Result == nil || !file.File.Result.Fixed {
			continue
		}

		path := filepath.ToSlash(displayPath(file.Path, r.opts.WorkingDir))
		fd := fix.GenerateDiff(path, file.File.Source, file.File.Result.Output)
		if fd == nil {
			continue
		}
		text, err := fix.Render(fd)
		if err != nil {
			return files, fmt.Errorf("render diff for %s: %w", path, err)
		}

		added, deleted := fix.Stat(fd)
		files++
		additions += added
		deletions += deleted

		fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
		for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
			fmt.Fprintln(r.bw, r.styleLine(line))
		}
		fmt.Fprintln(r.bw)
	}

	if files > 0 {
		r.writeStat(files, additions, deletions)
	}
	return files, nil
}

func (r *DiffReporter) styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "---"):
		return r.styles.DiffRemove.Render(line)
	case strings.HasPrefix(line, "+++"):
		return r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "@@"):
		return r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return r.styles.DiffRemove.Render(line)
	default:
		return r.styles.DiffContext.Render(line)
	}
}

func (r *DiffReporter) writeStat(files, additions, deletions int) {
	parts := []string{plural(files, "file", "files") + " changed"}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(plural(additions, "insertion", "insertions")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(plural(deletions, "deletion", "deletions")+"(-)"))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func plural(count int, one, many string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, one)
	}
	return fmt.Sprintf("%d %s", count, many)
}
