package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is used when no mode is known.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content through a temp file in the same
// directory and a rename, so readers see either the old or the new text.
// The temp file is removed on failure.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	committed = true
	return nil
}

// WriteFixed writes fixed content over the file described by snap, keeping
// its mode. It returns ErrChanged without writing when the file was modified
// after snap was taken.
func WriteFixed(ctx context.Context, snap *Snapshot, content []byte) error {
	changed, err := snap.Changed(ctx)
	if err != nil {
		return err
	}
	if changed {
		return fmt.Errorf("%w: %s", ErrChanged, snap.Path)
	}
	return WriteAtomic(ctx, snap.Path, content, snap.Mode)
}
