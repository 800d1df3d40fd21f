package internals

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DuplicateFunc is invoked once per duplicate file with the duplicate's
// path and the first-seen path stored in the table.
type DuplicateFunc func(path, original string)

// Scanner visits a set of root paths depth-first, fingerprints every
// regular file and consults the table to decide whether the file is a
// first sighting or a duplicate. The traversal is single-threaded and
// synchronous; a table operation always runs to completion before the
// walk continues.
//
// Symlinked directories are followed like the paths they resolve to.
// There is no cycle detection; a symlink cycle does not terminate.
type Scanner struct {
	Table           *Table
	Hash            Hash
	ExcludeBasename []string
	OnDuplicate     DuplicateFunc
	Diag            io.Writer
}

// NewScanner returns a Scanner over the given table and fingerprint
// algorithm with diagnostics directed to stderr.
func NewScanner(table *Table, hash Hash) *Scanner {
	return &Scanner{Table: table, Hash: hash, Diag: os.Stderr}
}

// ScanRoots scans all root paths in order and returns the total number of
// duplicate files found. Every occurrence beyond the first counts, so three
// byte-identical files yield a count of 2.
func (s *Scanner) ScanRoots(roots []string) int {
	count := 0
	for _, root := range roots {
		if isDirectory(root) {
			count += s.scanDirectory(root)
		} else {
			count += s.checkFile(root)
		}
	}
	return count
}

// scanDirectory recursively checks all entries below root and returns the
// number of duplicates found in this subtree. A directory that cannot be
// opened is reported and contributes 0; the rest of the run continues.
func (s *Scanner) scanDirectory(root string) int {
	entries, err := os.ReadDir(root)
	if err != nil {
		fmt.Fprintf(s.Diag, "Unable to open directory on %s: %s\n", root, osErrorText(err))
		return 0
	}

	// resolve root once, so joins below the recursion stay
	// correct even if root was given relative
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	count := 0
	for _, entry := range entries {
		name := entry.Name()
		if contains(s.ExcludeBasename, name) {
			continue
		}

		childPath := filepath.Join(root, name)
		if isDirectory(childPath) {
			count += s.scanDirectory(filepath.Join(absRoot, name))
		} else {
			count += s.checkFile(childPath)
		}
	}
	return count
}

// checkFile fingerprints the file and consults the table. It returns 1 iff
// the file is a duplicate of an earlier sighting. The first-seen path is
// retained as the canonical original; later duplicates never overwrite it.
// An unreadable file contributes 0 and no entry is inserted for it.
func (s *Scanner) checkFile(path string) int {
	fingerprint, err := Fingerprint(s.Hash, path)
	if err != nil {
		return 0
	}

	if value, ok := s.Table.Search(fingerprint); ok {
		if s.OnDuplicate != nil {
			s.OnDuplicate(path, value.Str)
		}
		return 1
	}

	s.Table.Insert(fingerprint, StringValue(path))
	return 0
}

// isDirectory reports whether path points to a directory.
// Symlinks are resolved; a failing stat yields false.
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// osErrorText extracts the underlying OS error text of a path operation
func osErrorText(err error) string {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
