package extract

// WordRecord is one extraction result for a (word, language, part of speech)
// triple, or a redirect when Redirect is set. The output layer treats it as
// an opaque JSON value.
type WordRecord struct {
	Word         string        `json:"word,omitempty"`
	Lang         string        `json:"lang,omitempty"`
	LangCode     string        `json:"lang_code,omitempty"`
	POS          string        `json:"pos,omitempty"`
	Senses       []Sense       `json:"senses,omitempty"`
	Sounds       []Sound       `json:"sounds,omitempty"`
	Translations []Translation `json:"translations,omitempty"`
	Synonyms     []Linkage     `json:"synonyms,omitempty"`
	Antonyms     []Linkage     `json:"antonyms,omitempty"`
	Hypernyms    []Linkage     `json:"hypernyms,omitempty"`
	Hyponyms     []Linkage     `json:"hyponyms,omitempty"`
	Derived      []Linkage     `json:"derived,omitempty"`

	Title    string `json:"title,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// IsRedirect reports whether r describes a redirect page.
func (r *WordRecord) IsRedirect() bool { return r.Redirect != "" }

// Sense is one numbered definition.
type Sense struct {
	Glosses  []string  `json:"glosses,omitempty"`
	Examples []Example `json:"examples,omitempty"`
}

// Example is a usage example attached to a sense.
type Example struct {
	Text string `json:"text"`
}

// Sound is one pronunciation.
type Sound struct {
	IPA string `json:"ipa"`
}

// Translation is a translation into another language.
type Translation struct {
	Code string `json:"code"`
	Lang string `json:"lang,omitempty"`
	Word string `json:"word"`
}

// Linkage is a related word (synonym, derived term, ...).
type Linkage struct {
	Word string `json:"word"`
}
