package textutil

import (
	"os"
	"path/filepath"
)

// FindUp looks for a named file in the current working directory, then in
// every parent directory. It returns the absolute path of the first found, or
// "" if there is none.
func FindUp(name string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(wd, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", nil
		}
		wd = parent
	}
}
