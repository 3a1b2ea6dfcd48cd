package project

import (
	"os"
	"path/filepath"
)

// PackageFile marks the root of a JavaScript project
const PackageFile = "package.json"

// Locate returns the nearest directory at or above start that contains a
// package.json. When no ancestor has one, start itself is returned.
func Locate(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if info, err := os.Stat(filepath.Join(dir, PackageFile)); err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}
