// Package loader opens `.po` catalog files from the file system and
// feeds them into a potext.Catalog.
//
// File access, extension validation and reload change detection live
// here; the catalog core itself only ever sees a character stream.
// Watching for file changes stays outside: call Reload from whatever
// notification mechanism the application uses.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/romshark/potext"
	"golang.org/x/text/language"
)

var (
	ErrNotFound       = errors.New("catalog file not found")
	ErrWrongExtension = errors.New(`catalog file must have the ".po" extension`)
)

// Source is one `.po` file backing one catalog.
type Source struct {
	path string

	mu       sync.Mutex // Serializes Reload.
	lastHash uint64
	catalog  *potext.Catalog
}

// Open validates and loads the `.po` file at path.
func Open(path string) (*Source, error) {
	if filepath.Ext(path) != ".po" {
		return nil, fmt.Errorf("%w: %q", ErrWrongExtension, path)
	}
	s := &Source{
		path:    path,
		catalog: potext.NewCatalog(),
	}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Catalog returns the catalog backed by the source. The returned
// catalog is shared; Reload swaps its contents in place.
func (s *Source) Catalog() *potext.Catalog { return s.catalog }

// Path returns the file path the source reads from.
func (s *Source) Path() string { return s.path }

// Reload re-reads the backing file and publishes the new catalog
// contents atomically. When the file content hash is unchanged since
// the previous load the re-parse is skipped and Reload reports false.
// On error the previously loaded catalog stays intact.
func (s *Source) Reload() (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("%w: %q", ErrNotFound, s.path)
		}
		return false, fmt.Errorf("reading catalog file: %w", err)
	}

	h := xxhash.Sum64(data)
	if s.lastHash != 0 && h == s.lastHash {
		return false, nil
	}

	if err := s.catalog.Load(bytes.NewReader(data)); err != nil {
		return false, fmt.Errorf("loading %q: %w", s.path, err)
	}
	s.lastHash = h
	return true, nil
}

// LanguageTag parses the catalog's raw Language header as a BCP 47 tag.
func (s *Source) LanguageTag() (language.Tag, error) {
	raw, err := s.catalog.GetHeader(potext.HeaderLanguage)
	if err != nil {
		return language.Und, err
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, fmt.Errorf("parsing Language header %q: %w", raw, err)
	}
	return tag, nil
}
