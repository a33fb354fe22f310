package profile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DevicesDir is the directory under the data set root holding the device
// profile files, one vendor directory per level.
const DevicesDir = "devices"

// EnvironmentError marks a missing root, devices directory or manifest.
// It is fatal: no useful work can proceed, the run aborts immediately.
type EnvironmentError struct {
	Path   string
	Reason string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// DiscoverDeviceFiles returns the relative paths (forward slashes, rooted at
// root, e.g. "devices/strymon/timeline.json") of all JSON files under
// <root>/devices, sorted lexicographically. A missing devices directory is
// an EnvironmentError.
func DiscoverDeviceFiles(root string) ([]string, error) {
	devDir := filepath.Join(root, DevicesDir)
	info, err := os.Stat(devDir)
	if err != nil {
		return nil, &EnvironmentError{Path: devDir, Reason: "devices directory not found"}
	}
	if !info.IsDir() {
		return nil, &EnvironmentError{Path: devDir, Reason: "not a directory"}
	}

	var files []string
	err = filepath.WalkDir(devDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", devDir, err)
	}

	sort.Strings(files)
	return files, nil
}
