// Package discovery finds assessment record files for batch scoring.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one discovered assessment record file.
type File struct {
	Path    string // absolute or root-joined path
	RelPath string // path relative to the search root
	Size    int64
}

// FileDiscovery locates assessment files under a root directory.
type FileDiscovery struct {
	rootPath string
}

// NewFileDiscovery creates a FileDiscovery rooted at the given directory.
func NewFileDiscovery(rootPath string) *FileDiscovery {
	return &FileDiscovery{rootPath: rootPath}
}

// Discover returns every regular file under the root matching the glob
// pattern, sorted by relative path for deterministic batch output.
// Symlinks are skipped.
func (fd *FileDiscovery) Discover(pattern string) ([]File, error) {
	matches, err := doublestar.Glob(os.DirFS(fd.rootPath), pattern)
	if err != nil {
		return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
	}

	var files []File
	for _, match := range matches {
		fullPath := filepath.Join(fd.rootPath, match)
		info, err := os.Lstat(fullPath)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, File{
			Path:    fullPath,
			RelPath: match,
			Size:    info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}
