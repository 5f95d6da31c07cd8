package potext

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

var (
	ErrEmptyBundle     = errors.New("empty bundle")
	ErrCatalogConflict = errors.New("conflicting catalogs")
)

// Bundle groups per-locale catalogs and picks the best catalog
// for a requested locale.
type Bundle struct {
	locales          []language.Tag
	matcherTags      []language.Tag
	defaultLocaleStr string
	matcher          language.Matcher
	catalogByLocale  map[string]*Catalog
}

// NewBundle creates a bundle over the given catalogs. The default
// locale is used whenever no better match exists and must be one of
// the bundle's locales.
func NewBundle(
	defaultLocale language.Tag, catalogs map[language.Tag]*Catalog,
) (*Bundle, error) {
	if len(catalogs) < 1 {
		return nil, ErrEmptyBundle
	}
	locales := make([]language.Tag, 0, len(catalogs))
	catalogByLocale := make(map[string]*Catalog, len(catalogs))
	for locale, c := range catalogs {
		localeStr := locale.String()
		if _, ok := catalogByLocale[localeStr]; ok {
			return nil, fmt.Errorf("%w for %q", ErrCatalogConflict, locale)
		}
		catalogByLocale[localeStr] = c
		locales = append(locales, locale)
	}
	sort.Slice(locales, func(i, j int) bool {
		return locales[i].String() < locales[j].String()
	})
	def := defaultLocale.String()
	if _, ok := catalogByLocale[def]; !ok {
		return nil, fmt.Errorf("%w: no catalog for default locale %q",
			ErrEmptyBundle, defaultLocale)
	}
	// The matcher falls back to its first tag, which must be the
	// default locale rather than the alphabetically first one.
	matcherTags := make([]language.Tag, 0, len(locales))
	matcherTags = append(matcherTags, defaultLocale)
	for _, l := range locales {
		if l.String() != def {
			matcherTags = append(matcherTags, l)
		}
	}
	return &Bundle{
		locales:          locales,
		matcherTags:      matcherTags,
		defaultLocaleStr: def,
		matcher:          language.NewMatcher(matcherTags),
		catalogByLocale:  catalogByLocale,
	}, nil
}

// Match returns the best matching catalog for the requested tags.
// The matched index resolves within the bundle's own locales because
// the matcher may refine the returned tag beyond them.
func (b *Bundle) Match(tags ...language.Tag) (*Catalog, language.Confidence) {
	_, i, c := b.matcher.Match(tags...)
	return b.catalogByLocale[b.matcherTags[i].String()], c
}

// ForBase returns the catalog for the base language,
// or the default catalog if none exists.
func (b *Bundle) ForBase(base language.Base) *Catalog {
	if c, ok := b.catalogByLocale[base.String()]; ok {
		return c
	}
	return b.catalogByLocale[b.defaultLocaleStr]
}

// Default returns the catalog of the default locale.
func (b *Bundle) Default() *Catalog {
	return b.catalogByLocale[b.defaultLocaleStr]
}

// Locales returns all locales of the bundle, sorted by tag string.
func (b *Bundle) Locales() []language.Tag {
	out := make([]language.Tag, len(b.locales))
	copy(out, b.locales)
	return out
}
