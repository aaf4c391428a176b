// Package walker enumerates the Rust source files of a crate.
package walker

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultExcludes are directory names skipped during the walk. The build
// output directory never contains source worth analyzing.
var DefaultExcludes = []string{"target"}

// RustFiles walks root and returns the paths of all .rs files, relative
// to root, skipping any directory whose name is in excludes. The result
// order follows the lexical order of filepath.WalkDir.
func RustFiles(root string, excludes []string) ([]string, error) {
	if excludes == nil {
		excludes = DefaultExcludes
	}
	skip := make(map[string]bool, len(excludes))
	for _, name := range excludes {
		skip[name] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".rs") {
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
		return nil, err
	}
	return files, nil
}
