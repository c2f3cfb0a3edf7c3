package decoder

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverDataFiles walks rootPath recursively and returns the paths of all
// files with a supported data extension (including compressed variants), in
// sorted order, capped at maxFiles. Uses doublestar for pattern matching and
// directory traversal.
func DiscoverDataFiles(rootPath string, maxFiles int) ([]string, error) {
	if rootPath == "" {
		return nil, fmt.Errorf("root path is empty")
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", rootPath)
	}

	pattern := filepath.Join(rootPath, "**", "*.*")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if info, err := os.Stat(match); err != nil || info.IsDir() {
			continue
		}
		if kind, _ := DetectKindAndCompression(match); kind == KindUnknown {
			continue
		}
		files = append(files, match)
	}
	sort.Strings(files)

	if maxFiles > 0 && len(files) > maxFiles {
		files = files[:maxFiles]
	}
	return files, nil
}
