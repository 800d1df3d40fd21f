package internals

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordedDuplicate struct {
	path     string
	original string
}

func newTestScanner(capacity int) (*Scanner, *[]recordedDuplicate, *bytes.Buffer) {
	var duplicates []recordedDuplicate
	var diag bytes.Buffer
	scanner := NewScanner(NewTable(capacity), NewMD5())
	scanner.Diag = &diag
	scanner.OnDuplicate = func(path, original string) {
		duplicates = append(duplicates, recordedDuplicate{path, original})
	}
	return scanner, &duplicates, &diag
}

// TestDuplicateCountSemantics checks that 1 unique file plus 4 byte-identical
// files yield 3 duplicates: every occurrence beyond the first counts
func TestDuplicateCountSemantics(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, `unique.txt`, []byte(`only once`))
	writeTestFile(t, dir, `copy1.txt`, []byte(`same bytes`))
	writeTestFile(t, dir, `copy2.txt`, []byte(`same bytes`))
	writeTestFile(t, dir, `copy3.txt`, []byte(`same bytes`))
	writeTestFile(t, dir, `copy4.txt`, []byte(`same bytes`))

	scanner, duplicates, diag := newTestScanner(1)
	count := scanner.ScanRoots([]string{dir})

	if count != 3 {
		t.Errorf(`expected 3 duplicates, got %d`, count)
	}
	if len(*duplicates) != 3 {
		t.Errorf(`expected 3 duplicate reports, got %d`, len(*duplicates))
	}
	if diag.Len() != 0 {
		t.Errorf(`expected no diagnostics, got '%s'`, diag.String())
	}
	if scanner.Table.Size() != 2 {
		t.Errorf(`expected 2 distinct fingerprints in the table, got %d`, scanner.Table.Size())
	}
}

// TestFirstSeenWins checks that the first file encountered with some content
// stays the canonical original for all later duplicates
func TestFirstSeenWins(t *testing.T) {
	dir := t.TempDir()
	first := writeTestFile(t, dir, `a.txt`, []byte(`shared`))
	writeTestFile(t, dir, `b.txt`, []byte(`shared`))
	sub := filepath.Join(dir, `sub`)
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, sub, `c.txt`, []byte(`shared`))

	scanner, duplicates, _ := newTestScanner(4)
	count := scanner.ScanRoots([]string{dir})

	if count != 2 {
		t.Fatalf(`expected 2 duplicates, got %d`, count)
	}
	for _, dup := range *duplicates {
		if dup.original != first {
			t.Errorf(`expected original '%s', got '%s'`, first, dup.original)
		}
	}

	fingerprint, err := Fingerprint(NewMD5(), first)
	if err != nil {
		t.Fatal(err)
	}
	value, ok := scanner.Table.Search(fingerprint)
	if !ok {
		t.Fatal(`expected the shared fingerprint to be stored`)
	}
	if value.Str != first {
		t.Errorf(`expected stored path '%s', got '%s'`, first, value.Str)
	}
}

// TestDuplicatesAcrossRoots checks that the table is shared across all
// scanned roots, including file roots
func TestDuplicatesAcrossRoots(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	original := writeTestFile(t, dirA, `orig.txt`, []byte(`payload`))
	duplicate := writeTestFile(t, dirB, `dup.txt`, []byte(`payload`))

	scanner, duplicates, _ := newTestScanner(2)
	count := scanner.ScanRoots([]string{dirA, dirB})
	if count != 1 {
		t.Fatalf(`expected 1 duplicate, got %d`, count)
	}
	if (*duplicates)[0].path != duplicate || (*duplicates)[0].original != original {
		t.Errorf(`expected '%s' as duplicate of '%s', got %v`, duplicate, original, (*duplicates)[0])
	}

	// the same file given twice as a root duplicates itself
	scanner, duplicates, _ = newTestScanner(2)
	count = scanner.ScanRoots([]string{original, original})
	if count != 1 {
		t.Errorf(`expected 1 duplicate for a repeated file root, got %d`, count)
	}
	if len(*duplicates) != 1 || (*duplicates)[0].original != original {
		t.Errorf(`expected the first root occurrence as original, got %v`, *duplicates)
	}
}

// TestUnreadableDirectory checks that a failing directory open is reported
// and recoverable: the subtree contributes 0, siblings are still scanned
func TestUnreadableDirectory(t *testing.T) {
	scanner, _, diag := newTestScanner(1)
	count := scanner.scanDirectory(filepath.Join(t.TempDir(), `missing`))
	if count != 0 {
		t.Errorf(`expected 0 duplicates from an unreadable directory, got %d`, count)
	}
	if !strings.Contains(diag.String(), `Unable to open directory on`) {
		t.Errorf(`expected a diagnostic naming the directory, got '%s'`, diag.String())
	}
}

// TestUnreadableFileSkipped checks that a file which cannot be digested is
// skipped without a table entry
func TestUnreadableFileSkipped(t *testing.T) {
	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(dir, `nowhere`), filepath.Join(dir, `dangling`)); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, dir, `real.txt`, []byte(`content`))

	scanner, _, _ := newTestScanner(1)
	count := scanner.ScanRoots([]string{dir})
	if count != 0 {
		t.Errorf(`expected 0 duplicates, got %d`, count)
	}
	if scanner.Table.Size() != 1 {
		t.Errorf(`expected only the readable file in the table, got size %d`, scanner.Table.Size())
	}
}

// TestNonexistentRoot checks that a root which neither stats as a directory
// nor opens as a file contributes 0 without aborting the run
func TestNonexistentRoot(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, `a.txt`, []byte(`x`))
	writeTestFile(t, dir, `b.txt`, []byte(`x`))

	scanner, _, _ := newTestScanner(2)
	count := scanner.ScanRoots([]string{filepath.Join(dir, `missing`), dir})
	if count != 1 {
		t.Errorf(`expected 1 duplicate, got %d`, count)
	}
}

func TestExcludeBasename(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, `keep.txt`, []byte(`same`))
	writeTestFile(t, dir, `skipped.txt`, []byte(`same`))
	excluded := filepath.Join(dir, `.git`)
	if err := os.Mkdir(excluded, 0755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, excluded, `object`, []byte(`same`))

	scanner, _, _ := newTestScanner(1)
	scanner.ExcludeBasename = []string{`skipped.txt`, `.git`}
	count := scanner.ScanRoots([]string{dir})
	if count != 0 {
		t.Errorf(`expected excluded entries to be skipped, got %d duplicates`, count)
	}
	if scanner.Table.Size() != 1 {
		t.Errorf(`expected 1 table entry, got %d`, scanner.Table.Size())
	}
}

// TestRelativeRootRecursion checks that recursion below a relative root
// still reaches nested files
func TestRelativeRootRecursion(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, `outer`, `inner`)
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, dir, `top.txt`, []byte(`twin`))
	writeTestFile(t, nested, `deep.txt`, []byte(`twin`))

	previous, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(previous)

	scanner, duplicates, _ := newTestScanner(1)
	count := scanner.ScanRoots([]string{`.`})
	if count != 1 {
		t.Fatalf(`expected 1 duplicate below a relative root, got %d`, count)
	}
	if !strings.HasSuffix((*duplicates)[0].path, `deep.txt`) && !strings.HasSuffix((*duplicates)[0].original, `deep.txt`) {
		t.Errorf(`expected deep.txt to participate, got %v`, (*duplicates)[0])
	}
}
