package extract

import (
	"regexp"
	"strings"

	"github.com/temporal-IPA/tipa/pkg/ipa"
)

// Observer receives section statistics while a page is parsed.
// *stats.Collector satisfies it.
type Observer interface {
	RecordLanguage(name string)
	RecordPOSHeader(name string)
	RecordSectionHeader(name string)
}

// Engine turns the text of one dictionary entry page into records.
type Engine interface {
	Extract(title, text string, cfg Config, obs Observer) ([]WordRecord, error)
}

type nopObserver struct{}

func (nopObserver) RecordLanguage(string)      {}
func (nopObserver) RecordPOSHeader(string)     {}
func (nopObserver) RecordSectionHeader(string) {}

var (
	headingRe   = regexp.MustCompile(`^(={2,6})\s*(.*?)\s*={2,6}\s*$`)
	redirectRe  = regexp.MustCompile(`(?i)^\s*#\s*redirect\s*:?\s*\[\[([^\]|#]+)`)
	ipaRe       = regexp.MustCompile(`\{\{IPA\|([^{}]*)\}\}`)
	transRe     = regexp.MustCompile(`\{\{t[+-]?\|([^|{}]+)\|([^|{}]+)`)
	linkRe      = regexp.MustCompile(`\[\[([^\]|#]+)`)
	columnTmpRe = regexp.MustCompile(`\{\{(?:col|der|rel)[1-9]?(?:-u)?\|([^{}]*)\}\}`)
)

type sectionMode int

const (
	modeNone sectionMode = iota
	modePOS
	modePronunciation
	modeTranslations
	modeSynonyms
	modeAntonyms
	modeHypernyms
	modeHyponyms
	modeDerived
)

// subsections maps lowercase non-POS headers the engine understands.
var subsections = map[string]sectionMode{
	"pronunciation": modePronunciation,
	"translations":  modeTranslations,
	"synonyms":      modeSynonyms,
	"antonyms":      modeAntonyms,
	"hypernyms":     modeHypernyms,
	"hyponyms":      modeHyponyms,
	"derived terms": modeDerived,
	"compounds":     modeDerived,
}

// SectionEngine is a line-oriented extractor for Wiktionary-style markup.
// It splits a page at language headings and emits one record per part of
// speech section of every captured language.
type SectionEngine struct{}

// NewSectionEngine returns the default engine.
func NewSectionEngine() *SectionEngine {
	return &SectionEngine{}
}

// Extract implements Engine. obs may be nil.
func (e *SectionEngine) Extract(title, text string, cfg Config, obs Observer) ([]WordRecord, error) {
	if obs == nil {
		obs = nopObserver{}
	}

	if m := redirectRe.FindStringSubmatch(text); m != nil {
		if !cfg.Redirects() {
			return nil, nil
		}
		return []WordRecord{{Title: title, Redirect: strings.TrimSpace(m[1])}}, nil
	}

	p := &pageParser{title: title, cfg: cfg, obs: obs, cur: -1}
	for _, line := range strings.Split(text, "\n") {
		p.parseLine(strings.TrimRight(line, "\r"))
	}
	p.finishLanguage()

	return p.records, nil
}

type pageParser struct {
	title string
	cfg   Config
	obs   Observer

	records []WordRecord

	lang      string
	langCode  string
	capture   bool
	langStart int
	sounds    []Sound

	cur      int
	posLevel int
	mode     sectionMode
	topGloss string
}

func (p *pageParser) parseLine(line string) {
	if m := headingRe.FindStringSubmatch(line); m != nil {
		p.heading(len(m[1]), m[2])
		return
	}
	if !p.capture || strings.TrimSpace(line) == "" {
		return
	}

	switch p.mode {
	case modePOS:
		p.senseLine(line)
	case modePronunciation:
		if p.cfg.Pronunciations() {
			p.sounds = appendSounds(p.sounds, line)
		}
	case modeTranslations:
		if p.cfg.Translations() && p.cur >= 0 {
			p.translationLine(line)
		}
	case modeSynonyms, modeAntonyms, modeHypernyms, modeHyponyms:
		if p.cfg.Linkages() && p.cur >= 0 {
			p.linkageLine(line)
		}
	case modeDerived:
		if p.cfg.Compounds() && p.cur >= 0 {
			p.linkageLine(line)
		}
	}
}

func (p *pageParser) heading(level int, name string) {
	name = strings.TrimSpace(name)

	if level == 2 {
		p.finishLanguage()
		p.lang = name
		p.langCode, _ = LanguageCode(name)
		p.capture = p.cfg.CapturesLanguage(name)
		p.langStart = len(p.records)
		p.obs.RecordLanguage(name)
		return
	}

	p.obs.RecordSectionHeader(name)
	if p.lang == "" {
		return
	}

	if code, ok := MapPOS(name); ok {
		p.obs.RecordPOSHeader(name)
		p.mode = modePOS
		p.posLevel = level
		p.topGloss = ""
		p.cur = -1
		if p.capture {
			p.records = append(p.records, WordRecord{
				Word:     p.title,
				Lang:     p.lang,
				LangCode: p.langCode,
				POS:      code,
			})
			p.cur = len(p.records) - 1
		}
		return
	}

	// A sibling or parent heading closes the current part of speech.
	if level <= p.posLevel {
		p.cur = -1
		p.posLevel = 0
	}
	p.mode = subsections[strings.ToLower(name)]
}

func (p *pageParser) finishLanguage() {
	if len(p.sounds) > 0 {
		for i := p.langStart; i < len(p.records); i++ {
			p.records[i].Sounds = append([]Sound(nil), p.sounds...)
		}
	}
	p.lang, p.langCode = "", ""
	p.capture = false
	p.sounds = nil
	p.cur = -1
	p.posLevel = 0
	p.mode = modeNone
	p.topGloss = ""
}

func (p *pageParser) senseLine(line string) {
	if p.cur < 0 || !strings.HasPrefix(line, "#") {
		return
	}
	rec := &p.records[p.cur]

	switch {
	case strings.HasPrefix(line, "#:") || strings.HasPrefix(line, "##:"):
		if !p.cfg.Examples() || len(rec.Senses) == 0 {
			return
		}
		text := StripMarkup(strings.TrimLeft(line, "#:"))
		if text == "" {
			return
		}
		last := &rec.Senses[len(rec.Senses)-1]
		last.Examples = append(last.Examples, Example{Text: text})
	case strings.HasPrefix(line, "#*") || strings.HasPrefix(line, "##*"):
		// Quotations are not extracted.
	case strings.HasPrefix(line, "##"):
		gloss := StripMarkup(line[2:])
		if gloss == "" {
			return
		}
		glosses := []string{gloss}
		if p.topGloss != "" {
			glosses = []string{p.topGloss, gloss}
		}
		rec.Senses = append(rec.Senses, Sense{Glosses: glosses})
	default:
		gloss := StripMarkup(line[1:])
		if gloss == "" {
			return
		}
		p.topGloss = gloss
		rec.Senses = append(rec.Senses, Sense{Glosses: []string{gloss}})
	}
}

func (p *pageParser) translationLine(line string) {
	rec := &p.records[p.cur]
	for _, m := range transRe.FindAllStringSubmatch(line, -1) {
		code := strings.TrimSpace(m[1])
		word := strings.TrimSpace(m[2])
		if code == "" || word == "" {
			continue
		}
		name, _ := LanguageName(code)
		rec.Translations = append(rec.Translations, Translation{Code: code, Lang: name, Word: word})
	}
}

func (p *pageParser) linkageLine(line string) {
	words := linkageWords(line)
	if len(words) == 0 {
		return
	}
	links := make([]Linkage, 0, len(words))
	for _, w := range words {
		links = append(links, Linkage{Word: w})
	}

	rec := &p.records[p.cur]
	switch p.mode {
	case modeSynonyms:
		rec.Synonyms = append(rec.Synonyms, links...)
	case modeAntonyms:
		rec.Antonyms = append(rec.Antonyms, links...)
	case modeHypernyms:
		rec.Hypernyms = append(rec.Hypernyms, links...)
	case modeHyponyms:
		rec.Hyponyms = append(rec.Hyponyms, links...)
	case modeDerived:
		rec.Derived = append(rec.Derived, links...)
	}
}

// linkageWords collects linked words from a list item or a column template.
func linkageWords(line string) []string {
	trimmed := strings.TrimSpace(line)
	var words []string

	for _, m := range columnTmpRe.FindAllStringSubmatch(trimmed, -1) {
		params := strings.Split(m[1], "|")
		for _, param := range params[1:] {
			param = strings.TrimSpace(param)
			if param == "" || strings.Contains(param, "=") {
				continue
			}
			words = append(words, StripMarkup(param))
		}
	}

	if strings.HasPrefix(trimmed, "*") {
		for _, m := range linkTemplRe.FindAllStringSubmatch(trimmed, -1) {
			words = append(words, strings.TrimSpace(m[1]))
		}
		for _, m := range linkRe.FindAllStringSubmatch(trimmed, -1) {
			target := strings.TrimSpace(m[1])
			if strings.Contains(target, ":") {
				continue
			}
			words = append(words, target)
		}
	}

	if words == nil {
		return nil
	}
	out := words[:0]
	for _, w := range DeduplicateStrings(words) {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// appendSounds adds the IPA transcriptions of every {{IPA|lang|...}}
// template on line, skipping the language code and named parameters.
func appendSounds(sounds []Sound, line string) []Sound {
	for _, m := range ipaRe.FindAllStringSubmatch(line, -1) {
		params := strings.Split(m[1], "|")
		for _, param := range params[1:] {
			param = strings.TrimSpace(param)
			if param == "" || strings.Contains(param, "=") {
				continue
			}
			if !strings.ContainsAny(param, ipa.Charset) || hasSound(sounds, param) {
				continue
			}
			sounds = append(sounds, Sound{IPA: param})
		}
	}
	return sounds
}

func hasSound(sounds []Sound, v string) bool {
	for _, s := range sounds {
		if s.IPA == v {
			return true
		}
	}
	return false
}
