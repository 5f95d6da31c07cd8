// Package po implements a tolerant decoder for the GNU gettext `.po`
// text format.
//
// The decoder reconstructs multi-line, escaped and indexed plural strings
// from the line-oriented catalog text and resolves the header block the
// moment it closes, so that the Plural-Forms declaration governs the
// translation slots of every following pluralized entry.
package po

import (
	"errors"
	"fmt"
	"strings"

	"github.com/romshark/potext/plural"
)

// KeySeparator joins context and id into a composite lookup key.
// It is the EOT control byte GNU gettext itself uses for msgctxt,
// which cannot appear in real catalog content.
const KeySeparator = "\x04"

// Message is one catalog entry.
type Message struct {
	// Context is the optional disambiguation scope; empty means unscoped.
	Context string

	// ID is the untranslated singular key.
	ID string

	// IDPlural is the untranslated plural key,
	// present only for pluralized entries.
	IDPlural string

	// Translations holds one string per plural category index.
	// It starts as a single slot and grows to the catalog's nplurals
	// once a msgid_plural line is seen for the entry. Slots never
	// referenced by the formula stay empty.
	Translations []string

	// idSet distinguishes `msgid ""` from a block without any msgid.
	idSet bool
}

// Key returns the composite store key for the message.
// Unscoped messages key by plain ID so a context-scoped entry can
// never shadow an unscoped one.
func (m *Message) Key() string {
	return Key(m.Context, m.ID)
}

// Key builds the composite lookup key for a (context, id) pair.
func Key(context, id string) string {
	if context == "" {
		return id
	}
	return context + KeySeparator + id
}

// setTranslation stores s at plural index i, growing the slots if needed.
func (m *Message) setTranslation(i int, s string) {
	m.growTranslations(i + 1)
	m.Translations[i] = s
}

func (m *Message) growTranslations(n int) {
	for len(m.Translations) < n {
		m.Translations = append(m.Translations, "")
	}
}

// untranslated reports whether every translation slot is empty.
func (m *Message) untranslated() bool {
	for _, t := range m.Translations {
		if t != "" {
			return false
		}
	}
	return true
}

// Headers is the header mapping of a catalog, parsed from the message
// with the empty id. Duplicate headers follow last-write-wins.
type Headers map[string]string

// Get returns the raw value of the named header, or "" if absent.
func (h Headers) Get(name string) string { return h[name] }

// Clone returns a copy of h.
func (h Headers) Clone() Headers {
	cp := make(Headers, len(h))
	for k, v := range h {
		cp[k] = v
	}
	return cp
}

// HeaderPluralForms is the name of the header declaring the plural rule.
const HeaderPluralForms = "Plural-Forms"

// File is one fully decoded catalog: the messages in parse order,
// the header mapping and the resolved plural rule.
type File struct {
	Headers  Headers
	Messages []*Message
	Rule     plural.Rule
}

var ErrMalformedHeaderLine = errors.New("malformed header line, missing colon")

// Error is a decode error bound to a line of the input.
type Error struct {
	Line int
	Err  error
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err.Error())
}

func (e Error) Unwrap() error { return e.Err }

// parseHeaders parses the colon-separated header block carried by the
// empty-id message into dst. Every non-blank line must contain a colon.
func parseHeaders(dst Headers, block string) error {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		i := strings.IndexByte(line, ':')
		if i == -1 {
			return fmt.Errorf("%w: %q", ErrMalformedHeaderLine, line)
		}
		name := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		dst[name] = value
	}
	return nil
}
