// Package filex holds filesystem helpers for the CLI.
package filex

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// EnsureDir creates dir (resolved against the working directory when
// relative) on fs and returns its absolute path. An existing directory is
// fine; an existing file with the same name is an error.
func EnsureDir(fs afero.Fs, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := fs.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	isDir, err := afero.IsDir(fs, abs)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}
	if !isDir {
		return "", fmt.Errorf("mkdir %s: not a directory", abs)
	}

	return abs, nil
}
