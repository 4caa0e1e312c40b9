package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	wikiLinkRe    = regexp.MustCompile(`\[\[([^|\]]*\|)?([^\]]*)\]\]`)
	linkTemplRe   = regexp.MustCompile(`\{\{(?:l|m|l-self|w)\|[^|{}]*\|([^|{}]*)[^{}]*\}\}`)
	templateRe    = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	emphasisRe    = regexp.MustCompile(`'{2,}`)
	multiSpaceRe  = regexp.MustCompile(`\s{2,}`)
	spaceBeforeRe = regexp.MustCompile(`\s+([,.;:!?])`)
)

// StripMarkup removes HTML tags, templates, emphasis quotes and wiki-style
// links from s, decodes HTML entities, collapses multiple spaces, and trims
// whitespace. Link templates ({{l|en|word}}) keep their target word.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}

	s = htmlTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	// [[link|display]] → display, [[word]] → word.
	s = wikiLinkRe.ReplaceAllString(s, "$2")

	s = linkTemplRe.ReplaceAllString(s, "$1")

	// Nested templates are removed from the inside out.
	for {
		next := templateRe.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}

	s = emphasisRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = spaceBeforeRe.ReplaceAllString(s, "$1")

	return strings.TrimSpace(s)
}

// DeduplicateStrings returns a new slice with duplicate strings removed,
// preserving the order of first occurrence. Returns nil for nil input.
func DeduplicateStrings(ss []string) []string {
	if ss == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(ss))
	result := make([]string, 0, len(ss))

	for _, s := range ss {
		if _, exists := seen[s]; exists {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}

	return result
}
