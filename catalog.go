// Package potext provides a runtime for GNU gettext `.po` message
// catalogs: it loads a catalog from a character stream and resolves
// message ids, optionally scoped by context and pluralized by count,
// to their translated strings.
//
// Lookups never fail; an id without a usable translation degrades to
// the untranslated text so rendering always produces output. Loading
// replaces the whole catalog atomically, so concurrent lookups always
// observe messages, headers and the plural rule of one consistent
// generation.
package potext

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/romshark/potext/plural"
	"github.com/romshark/potext/po"
)

// ErrHeaderNotFound is returned by GetHeader for headers
// the loaded catalog never declared.
var ErrHeaderNotFound = errors.New("header not found")

// HeaderLanguage is the header naming the catalog language.
const HeaderLanguage = "Language"

// Catalog is one loaded `.po` catalog.
//
// The zero value is not usable; use NewCatalog. All methods are safe
// for concurrent use; lookups during a concurrent Load observe either
// the previous or the new catalog, never a mix.
type Catalog struct {
	loadMu sync.Mutex // Serializes loads; never held during lookups.

	mu   sync.RWMutex
	snap *snapshot
}

// snapshot is one immutable catalog generation. It is built off to the
// side and published with a single swap, never mutated afterwards.
type snapshot struct {
	messages map[string]*po.Message
	headers  po.Headers
	rule     plural.Rule
}

func emptySnapshot() *snapshot {
	return &snapshot{
		messages: map[string]*po.Message{},
		headers:  po.Headers{},
		rule:     plural.DefaultRule(),
	}
}

// NewCatalog returns an empty catalog using the default two-form
// plural rule. Every lookup falls through to its untranslated input
// until a catalog is loaded.
func NewCatalog() *Catalog {
	return &Catalog{snap: emptySnapshot()}
}

// Load decodes catalog text from r and replaces the catalog contents.
//
// The new message store, header set and plural rule are published as
// one unit. On error the previously loaded catalog stays intact.
// Concurrent loads are serialized.
func (c *Catalog) Load(r io.Reader) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	f, err := po.NewDecoder().Decode(r)
	if err != nil {
		return fmt.Errorf("decoding catalog: %w", err)
	}

	next := &snapshot{
		messages: make(map[string]*po.Message, len(f.Messages)),
		headers:  f.Headers,
		rule:     f.Rule,
	}
	// Last-parsed record wins on key collision.
	for _, m := range f.Messages {
		next.messages[m.Key()] = m
	}

	c.mu.Lock()
	c.snap = next
	c.mu.Unlock()
	return nil
}

func (c *Catalog) snapshot() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// GetString returns the translation of id, or id itself if the catalog
// has no non-empty translation for it.
func (c *Catalog) GetString(id string) string {
	return c.snapshot().str(po.Key("", id), id)
}

// GetParticularString returns the translation of id within context,
// or id itself on a miss. Context-scoped and unscoped entries with the
// same id are independent.
func (c *Catalog) GetParticularString(context, id string) string {
	return c.snapshot().str(po.Key(context, id), id)
}

// GetPluralString returns the plural form of id selected by n.
// Without a usable translation it falls back to the English-like
// split: id for n == 1, idPlural otherwise, so untranslated catalogs
// still read correctly in the source language.
func (c *Catalog) GetPluralString(id, idPlural string, n int) string {
	return c.snapshot().pluralStr(po.Key("", id), id, idPlural, n)
}

// GetParticularPluralString is GetPluralString scoped by context.
func (c *Catalog) GetParticularPluralString(
	context, id, idPlural string, n int,
) string {
	return c.snapshot().pluralStr(po.Key(context, id), id, idPlural, n)
}

// GetHeader returns the raw value of the named catalog header.
func (c *Catalog) GetHeader(name string) (string, error) {
	s := c.snapshot()
	v, ok := s.headers[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrHeaderNotFound, name)
	}
	return v, nil
}

// Headers returns a copy of the catalog header mapping.
func (c *Catalog) Headers() po.Headers {
	return c.snapshot().headers.Clone()
}

// Language returns the raw Language header value, or "" if undeclared.
func (c *Catalog) Language() string {
	return c.snapshot().headers.Get(HeaderLanguage)
}

// NPlurals returns the number of plural categories of the active rule.
func (c *Catalog) NPlurals() int {
	return c.snapshot().rule.NPlurals
}

// PluralForms returns the formula source of the active plural rule.
func (c *Catalog) PluralForms() string {
	return c.snapshot().rule.Formula
}

// Len returns the number of loaded messages.
func (c *Catalog) Len() int {
	return len(c.snapshot().messages)
}

func (s *snapshot) str(key, fallback string) string {
	if m, ok := s.messages[key]; ok && m.Translations[0] != "" {
		return m.Translations[0]
	}
	return fallback
}

func (s *snapshot) pluralStr(key, id, idPlural string, n int) string {
	if m, ok := s.messages[key]; ok {
		i := s.rule.Evaluator(n)
		if i >= 0 && i < len(m.Translations) && m.Translations[i] != "" {
			return m.Translations[i]
		}
	}
	if n != 1 {
		return idPlural
	}
	return id
}
