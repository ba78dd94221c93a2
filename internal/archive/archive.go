package archive

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Extension is the suffix of every archived page
const Extension = ".html"

// DirectoryNotFoundError is returned when listing a directory that does not exist
type DirectoryNotFoundError struct {
	Dir string
	Err error
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("archive directory not found: %s", e.Dir)
}

func (e *DirectoryNotFoundError) Unwrap() error {
	return e.Err
}

// Store writes pages into a single archive directory
type Store struct {
	dir string
}

// New creates the archive directory if needed and returns a Store for it.
// A leading ~/ is expanded to the home directory.
func New(dir string) (*Store, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the archive directory
func (s *Store) Dir() string {
	return s.dir
}

// Write stores one page and returns its path. Writes are not atomic.
func (s *Store) Write(index int, city string, data []byte) (string, error) {
	path := filepath.Join(s.dir, FileName(index, city))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing page: %w", err)
	}
	return path, nil
}

// FileName encodes a page's acquisition index and city, e.g. 01_des_moines.html
func FileName(index int, city string) string {
	return fmt.Sprintf("%02d_%s%s", index, SanitizeCity(city), Extension)
}

// SanitizeCity lowercases a city and joins its words with underscores.
// Path separators are replaced so the name stays inside the directory.
func SanitizeCity(city string) string {
	name := strings.Join(strings.Fields(strings.ToLower(city)), "_")
	return strings.NewReplacer("/", "_", `\`, "_").Replace(name)
}

// List returns the archived pages directly inside dir in acquisition order:
// by numeric index prefix, then by name. Pages without an index prefix come
// last. Subdirectories are not descended into.
func List(dir string) ([]string, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DirectoryNotFoundError{Dir: dir, Err: err}
		}
		return nil, fmt.Errorf("reading archive directory: %w", err)
	}

	pages := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		pages = append(pages, filepath.Join(dir, entry.Name()))
	}

	slices.SortStableFunc(pages, comparePages)
	return pages, nil
}

func comparePages(a, b string) int {
	ia, okA := pageIndex(filepath.Base(a))
	ib, okB := pageIndex(filepath.Base(b))
	switch {
	case okA && okB && ia != ib:
		return cmp.Compare(ia, ib)
	case okA != okB:
		if okA {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// pageIndex parses the index before the first underscore of a page name
func pageIndex(name string) (int, bool) {
	prefix, _, found := strings.Cut(name, "_")
	if !found {
		return 0, false
	}
	index, err := strconv.Atoi(prefix)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// ExpandHome replaces a leading ~/ with the user's home directory
func ExpandHome(dir string) (string, error) {
	if !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, dir[2:]), nil
}
