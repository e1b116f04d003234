// Package runner lints many files: it discovers JavaScript (and optionally
// Markdown) files, lints them concurrently through a Pipeline and aggregates
// the results in a deterministic order.
package runner

// Options controls discovery and concurrency.
type Options struct {
	// Paths are files or directories to lint. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors IgnorePatterns.
	// Empty means the process working directory.
	WorkingDir string

	// IgnorePatterns are doublestar globs relative to WorkingDir. A pattern
	// without a slash matches the base name at any depth.
	IgnorePatterns []string

	// Markdown also discovers .md files so their JavaScript code blocks are
	// linted.
	Markdown bool

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs caps concurrent workers. Zero or negative means runtime.NumCPU().
	Jobs int
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
