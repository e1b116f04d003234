package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/yaklabco/gojslint/pkg/langdetect"
)

// Discover returns the sorted, de-duplicated absolute paths to lint.
//
// Directories are walked recursively, skipping hidden entries, vendored
// trees such as node_modules, and anything matching an ignore pattern.
// Files named explicitly are linted whatever their extension unless an
// ignore pattern matches them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	for _, pattern := range opts.IgnorePatterns {
		if _, err := doublestar.Match(filepath.ToSlash(pattern), ""); err != nil {
			return nil, fmt.Errorf("bad ignore pattern %q: %w", pattern, err)
		}
	}

	d := &discoverer{opts: opts, workDir: workDir, seen: map[string]bool{}}
	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if !info.IsDir() {
			if !d.ignored(abs) {
				d.add(abs)
			}
			continue
		}
		if err := d.walk(ctx, abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	opts    Options
	workDir string
	seen    map[string]bool
	files   []string
}

func (d *discoverer) add(abs string) {
	if !d.seen[abs] {
		d.seen[abs] = true
		d.files = append(d.files, abs)
	}
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(current string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if current != root && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if current != root && (d.ignored(current) || langdetect.IsVendor(d.rel(current)+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(current)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				return d.walk(ctx, target)
			}
		}

		if d.wants(current) && !d.ignored(current) {
			d.add(current)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (d *discoverer) wants(file string) bool {
	switch langdetect.Classify(file) {
	case langdetect.KindJavaScript:
		return true
	case langdetect.KindMarkdown:
		return d.opts.Markdown
	}
	return false
}

func (d *discoverer) rel(abs string) string {
	rel, err := filepath.Rel(d.workDir, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// ignored matches abs against the ignore patterns. A directory pattern such
// as "dist/**" also matches the directory itself.
func (d *discoverer) ignored(abs string) bool {
	rel := d.rel(abs)
	for _, pattern := range d.opts.IgnorePatterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		target := rel
		if !strings.Contains(strings.TrimSuffix(pattern, "/"), "/") {
			target = path.Base(rel)
		}
		pattern = strings.TrimSuffix(pattern, "/")
		if ok, _ := doublestar.Match(pattern, target); ok {
			return true
		}
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
			if matched, _ := doublestar.Match(dir, target); matched {
				return true
			}
		}
	}
	return false
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}
