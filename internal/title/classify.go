// Package title routes raw dump titles. Classification is a pure function of
// the title string; it never looks at page text and performs no I/O.
package title

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"unicode/utf8"
)

// Kind is the routing decision for a page.
type Kind int

const (
	// KindIgnore pages are neither stored nor extracted.
	KindIgnore Kind = iota
	// KindNamespace pages are auxiliary (Category, Template, ...): stored, not extracted.
	KindNamespace
	// KindEntry pages are dictionary entries eligible for extraction.
	KindEntry
)

func (k Kind) String() string {
	switch k {
	case KindIgnore:
		return "ignore"
	case KindNamespace:
		return "namespace"
	case KindEntry:
		return "entry"
	default:
		return "unknown"
	}
}

const (
	// MaxTitleLen is the number of characters kept from an over-long entry title.
	MaxTitleLen = 100
	// hashLen is the number of hex digits of the SHA-256 suffix (40 bits).
	hashLen = 10
	// entryPrefix is the pseudo-namespace every entry is stored under.
	entryPrefix = "Words"
)

// Classification is the result of Classify.
//
// Prefix is set only for KindNamespace. Stored is empty for KindIgnore.
// UnknownPrefix reports a namespace prefix outside the recognized set; the
// page is still routed as a namespace page and the caller decides how to
// surface it.
type Classification struct {
	Kind          Kind
	Prefix        string
	Stored        string
	UnknownPrefix bool
}

// Ignored reports whether the page must be skipped entirely.
func (c Classification) Ignored() bool { return c.Kind == KindIgnore }

// IsEntry reports whether the page should go through the extraction engine.
func (c Classification) IsEntry() bool { return c.Kind == KindEntry }

var (
	namespaceRe    = regexp.MustCompile(`(?s)^([A-Z][a-z][-a-zA-Z0-9_]*):(.+)$`)
	categoryLeadRe = regexp.MustCompile(`^Category:[_ :]+`)
	categoryRe     = regexp.MustCompile(`(?s)^Category:([^_ :]+)[_ :]+`)
)

// ignoredPrefixes are administrative or meta namespaces that are never stored.
// The entry root is listed so no namespace page can shadow an entry's path.
var ignoredPrefixes = map[string]struct{}{
	entryPrefix:   {},
	"Index":       {},
	"Help":        {},
	"MediaWiki":   {},
	"Citations":   {},
	"Concordance": {},
	"Rhymes":      {},
	"Thread":      {},
	"Summary":     {},
	"File":        {},
	"Transwiki":   {},
	"Talk":        {},
	"User":        {},
	"User_talk":   {},
	"Special":     {},
}

// knownPrefixes are namespaces that are stored without a diagnostic.
var knownPrefixes = map[string]struct{}{
	"Category":       {},
	"Module":         {},
	"Template":       {},
	"Appendix":       {},
	"Reconstruction": {},
	"Wiktionary":     {},
	"Thesaurus":      {},
	"Wikisaurus":     {},
	"Sign_gloss":     {},
	"Unsupported":    {},
}

// Classify maps a raw title to its routing decision.
func Classify(raw string) Classification {
	m := namespaceRe.FindStringSubmatch(raw)
	if m == nil {
		return Classification{Kind: KindEntry, Stored: EntryStoredTitle(raw)}
	}

	prefix := m[1]
	if _, ok := ignoredPrefixes[prefix]; ok {
		return Classification{Kind: KindIgnore, Prefix: prefix}
	}
	_, known := knownPrefixes[prefix]

	stored := raw
	if prefix == "Category" {
		stored = categoryLeadRe.ReplaceAllString(raw, "Category:")
		stored = categoryRe.ReplaceAllString(stored, "Category:${1}:")
	}

	return Classification{
		Kind:          KindNamespace,
		Prefix:        prefix,
		Stored:        stored,
		UnknownPrefix: !known,
	}
}

// EntryStoredTitle builds the stored identity of a dictionary entry:
// "Words:" + first two characters + "/" + title. Titles longer than
// MaxTitleLen characters are truncated and suffixed with "-" and the first
// ten hex digits of the SHA-256 of the full original title.
func EntryStoredTitle(raw string) string {
	t := raw
	if utf8.RuneCountInString(raw) > MaxTitleLen {
		sum := sha256.Sum256([]byte(raw))
		t = firstRunes(raw, MaxTitleLen) + "-" + hex.EncodeToString(sum[:])[:hashLen]
	}
	return entryPrefix + ":" + firstRunes(t, 2) + "/" + t
}

// firstRunes returns the first n characters of s, or s if it is shorter.
func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
