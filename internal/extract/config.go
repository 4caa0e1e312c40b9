package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/heartmarshall/wiktextract/internal/domain"
)

// AllLanguages is the language name that selects every language section.
const AllLanguages = "all"

// DefaultLanguages are captured when no language is requested.
var DefaultLanguages = []string{"English", "Translingual"}

// Options is the raw, unvalidated input for NewConfig.
type Options struct {
	Languages      []string
	AllLanguages   bool
	Translations   bool
	Pronunciations bool
	Linkages       bool
	Compounds      bool
	Redirects      bool
	Examples       bool
	Verbose        bool
}

// Config controls what the extraction engine captures. It is built once
// before the dump is processed and is read-only afterwards; the zero value
// captures nothing.
type Config struct {
	all            bool
	languages      map[string]struct{}
	translations   bool
	pronunciations bool
	linkages       bool
	compounds      bool
	redirects      bool
	examples       bool
	verbose        bool
}

// NewConfig validates opts. Every requested language must be supported or
// be AllLanguages; otherwise the returned error wraps domain.ErrUnsupportedLanguage.
func NewConfig(opts Options) (Config, error) {
	cfg := Config{
		all:            opts.AllLanguages,
		languages:      make(map[string]struct{}),
		translations:   opts.Translations,
		pronunciations: opts.Pronunciations,
		linkages:       opts.Linkages,
		compounds:      opts.Compounds,
		redirects:      opts.Redirects,
		examples:       opts.Examples,
		verbose:        opts.Verbose,
	}

	requested := make([]string, 0, len(opts.Languages))
	for _, name := range opts.Languages {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		requested = append(requested, name)
	}
	if len(requested) == 0 && !cfg.all {
		requested = DefaultLanguages
	}

	var unsupported []string
	for _, name := range requested {
		if strings.EqualFold(name, AllLanguages) {
			cfg.all = true
			continue
		}
		if !IsSupportedLanguage(name) {
			unsupported = append(unsupported, name)
			continue
		}
		cfg.languages[name] = struct{}{}
	}
	if len(unsupported) > 0 {
		return Config{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedLanguage, strings.Join(unsupported, ", "))
	}

	return cfg, nil
}

// CapturesLanguage reports whether records for the named language section
// should be produced.
func (c Config) CapturesLanguage(name string) bool {
	if c.all {
		return true
	}
	_, ok := c.languages[name]
	return ok
}

// AllLanguages reports whether every language is captured.
func (c Config) AllLanguages() bool { return c.all }

// Languages returns the explicitly captured languages in sorted order.
func (c Config) Languages() []string {
	out := make([]string, 0, len(c.languages))
	for name := range c.languages {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (c Config) Translations() bool   { return c.translations }
func (c Config) Pronunciations() bool { return c.pronunciations }
func (c Config) Linkages() bool       { return c.linkages }
func (c Config) Compounds() bool      { return c.compounds }
func (c Config) Redirects() bool      { return c.redirects }
func (c Config) Examples() bool       { return c.examples }
func (c Config) Verbose() bool        { return c.verbose }
