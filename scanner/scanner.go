package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// ScriptExtension is the file extension of refactoring scripts.
const ScriptExtension = ".kyb"

type FileInfo struct {
	Path string
	Size int64
}

// Scanner finds files with the given extensions below rootDir.
type Scanner struct {
	rootDir    string
	extensions []string
}

func New(rootDir string, extensions ...string) *Scanner {
	if len(extensions) == 0 {
		extensions = []string{ScriptExtension}
	}
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan walks the root directory and returns matching files sorted by path,
// so catalogs built from the result have a stable order.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !s.isTargetFile(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{
			Path: path,
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (s *Scanner) isTargetFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range s.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
