package convert

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Scan walks root recursively and returns the video files whose extension
// is in extensions (lowercase, dot-prefixed). Results are sorted so batch
// runs process files in a stable order. Unreadable subtrees are skipped.
func Scan(root string, extensions []string) ([]string, error) {
	wanted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if _, ok := wanted[strings.ToLower(filepath.Ext(path))]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
