package install

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteAsset writes content to path verbatim, creating parent directories
// as needed and replacing any existing file.
func WriteAsset(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
