package extract

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadPage(t *testing.T, name string) string {
	t.Helper()
	_, file, _, _ := runtime.Caller(0)
	data, err := os.ReadFile(filepath.Join(filepath.Dir(file), "testdata", name))
	require.NoError(t, err)
	return string(data)
}

type countingObserver struct {
	languages map[string]int
	pos       map[string]int
	sections  map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		languages: make(map[string]int),
		pos:       make(map[string]int),
		sections:  make(map[string]int),
	}
}

func (o *countingObserver) RecordLanguage(name string)      { o.languages[name]++ }
func (o *countingObserver) RecordPOSHeader(name string)     { o.pos[name]++ }
func (o *countingObserver) RecordSectionHeader(name string) { o.sections[name]++ }

func fullConfig(t *testing.T, langs ...string) Config {
	t.Helper()
	cfg, err := NewConfig(Options{
		Languages:      langs,
		Translations:   true,
		Pronunciations: true,
		Linkages:       true,
		Compounds:      true,
		Redirects:      true,
		Examples:       true,
	})
	require.NoError(t, err)
	return cfg
}

func TestSectionEngine_Extract_AllFeatures(t *testing.T) {
	text := loadPage(t, "dog.txt")

	records, err := NewSectionEngine().Extract("dog", text, fullConfig(t, "English"), nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	sounds := []Sound{{IPA: "/dɒɡ/"}, {IPA: "/dɔɡ/"}}

	noun := records[0]
	assert.Equal(t, "dog", noun.Word)
	assert.Equal(t, "English", noun.Lang)
	assert.Equal(t, "en", noun.LangCode)
	assert.Equal(t, "noun", noun.POS)
	assert.Equal(t, sounds, noun.Sounds)
	assert.Equal(t, []Sense{
		{
			Glosses:  []string{"A domesticated mammal."},
			Examples: []Example{{Text: "The dog barked."}},
		},
		{Glosses: []string{"A domesticated mammal.", "A male dog."}},
	}, noun.Senses)
	assert.Equal(t, []Linkage{{Word: "hound"}, {Word: "canine"}}, noun.Synonyms)
	assert.Equal(t, []Translation{
		{Code: "fr", Lang: "French", Word: "chien"},
		{Code: "de", Lang: "German", Word: "Hund"},
	}, noun.Translations)
	assert.Equal(t, []Linkage{{Word: "doghouse"}, {Word: "dogsled"}}, noun.Derived)
	assert.False(t, noun.IsRedirect())

	verb := records[1]
	assert.Equal(t, "verb", verb.POS)
	assert.Equal(t, sounds, verb.Sounds)
	assert.Equal(t, []Sense{{Glosses: []string{"To follow closely."}}}, verb.Senses)
	assert.Empty(t, verb.Translations)
	assert.Empty(t, verb.Synonyms)
}

func TestSectionEngine_Extract_DefaultOptionsSkipOptionalSections(t *testing.T) {
	text := loadPage(t, "dog.txt")
	cfg, err := NewConfig(Options{})
	require.NoError(t, err)

	records, err := NewSectionEngine().Extract("dog", text, cfg, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	noun := records[0]
	require.Len(t, noun.Senses, 2)
	assert.Empty(t, noun.Senses[0].Examples)
	assert.Empty(t, noun.Sounds)
	assert.Empty(t, noun.Translations)
	assert.Empty(t, noun.Synonyms)
	assert.Empty(t, noun.Derived)
}

func TestSectionEngine_Extract_AllLanguages(t *testing.T) {
	text := loadPage(t, "dog.txt")
	cfg, err := NewConfig(Options{AllLanguages: true})
	require.NoError(t, err)

	records, err := NewSectionEngine().Extract("dog", text, cfg, nil)
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "French", records[2].Lang)
	assert.Equal(t, "fr", records[2].LangCode)
	assert.Equal(t, []Sense{{Glosses: []string{"dog"}}}, records[2].Senses)

	assert.Equal(t, "Tlingit", records[3].Lang)
	assert.Empty(t, records[3].LangCode)
}

func TestSectionEngine_Extract_ReportsHeadersToObserver(t *testing.T) {
	text := loadPage(t, "dog.txt")
	obs := newCountingObserver()

	_, err := NewSectionEngine().Extract("dog", text, fullConfig(t, "English"), obs)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"English": 1, "French": 1, "Tlingit": 1}, obs.languages)
	assert.Equal(t, map[string]int{"Noun": 3, "Verb": 1}, obs.pos)
	assert.Equal(t, 3, obs.sections["Noun"])
	assert.Equal(t, 1, obs.sections["Etymology"])
	assert.Equal(t, 1, obs.sections["Translations"])
	assert.Equal(t, 1, obs.sections["Derived terms"])
}

func TestSectionEngine_Extract_Redirect(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		redirects bool
		want      []WordRecord
	}{
		{
			name:      "captured",
			text:      "#REDIRECT [[cat]]",
			redirects: true,
			want:      []WordRecord{{Title: "kitty", Redirect: "cat"}},
		},
		{
			name:      "lowercase with colon and anchor",
			text:      "#redirect: [[cat#English]]\n",
			redirects: true,
			want:      []WordRecord{{Title: "kitty", Redirect: "cat"}},
		},
		{
			name:      "disabled",
			text:      "#REDIRECT [[cat]]",
			redirects: false,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(Options{Redirects: tt.redirects})
			require.NoError(t, err)

			got, err := NewSectionEngine().Extract("kitty", tt.text, cfg, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if len(got) == 1 {
				assert.True(t, got[0].IsRedirect())
			}
		})
	}
}

func TestSectionEngine_Extract_NoLanguageSections(t *testing.T) {
	obs := newCountingObserver()

	got, err := NewSectionEngine().Extract("x", "just some text\n===Noun===\n# gloss", fullConfig(t), obs)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, obs.pos)
	assert.Equal(t, 1, obs.sections["Noun"])
}

func TestSectionEngine_Extract_EtymologyClosesPOS(t *testing.T) {
	text := "==English==\n===Noun===\n# first\n===Etymology 2===\n# stray\n===Verb===\n# second\n"

	got, err := NewSectionEngine().Extract("w", text, fullConfig(t), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []Sense{{Glosses: []string{"first"}}}, got[0].Senses)
	assert.Equal(t, []Sense{{Glosses: []string{"second"}}}, got[1].Senses)
}

func TestSectionEngine_NonIPAParametersSkipped(t *testing.T) {
	cfg, err := NewConfig(Options{Languages: []string{"English"}, Pronunciations: true})
	require.NoError(t, err)

	text := "==English==\n===Pronunciation===\n* {{IPA|en|/kæt/|***|a=US}}\n===Noun===\n# A feline.\n"
	records, err := NewSectionEngine().Extract("cat", text, cfg, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []Sound{{IPA: "/kæt/"}}, records[0].Sounds)
}
