package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the directory at path if it does not exist and returns
// its absolute location. Relative paths are resolved against the current
// working directory.
func EnsureDir(path string) (string, error) {
	dir := path
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
