// Package registry enumerates model weight files on the local filesystem.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"swapman/internal/common/fsutil"
)

// ListWeights scans dir for *.gguf files and returns their filenames. The
// scan is shallow: subdirectories are not descended into.
func ListWeights(dir string) ([]string, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	files := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".gguf") {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}
