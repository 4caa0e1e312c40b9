package extract

import "strings"

// posHeaders maps lowercase part-of-speech section headers to the short POS
// codes used in records.
var posHeaders = map[string]string{
	"noun":                 "noun",
	"proper noun":          "name",
	"verb":                 "verb",
	"adjective":            "adj",
	"adverb":               "adv",
	"pronoun":              "pron",
	"preposition":          "prep",
	"postposition":         "postp",
	"conjunction":          "conj",
	"interjection":         "intj",
	"determiner":           "det",
	"article":              "article",
	"numeral":              "num",
	"number":               "num",
	"particle":             "particle",
	"phrase":               "phrase",
	"idiom":                "phrase",
	"proverb":              "proverb",
	"prepositional phrase": "prep_phrase",
	"prefix":               "prefix",
	"suffix":               "suffix",
	"infix":                "infix",
	"interfix":             "interfix",
	"circumfix":            "circumfix",
	"affix":                "affix",
	"root":                 "root",
	"letter":               "character",
	"character":            "character",
	"symbol":               "symbol",
	"punctuation mark":     "punct",
	"contraction":          "contraction",
	"abbreviation":         "abbrev",
	"initialism":           "abbrev",
	"acronym":              "abbrev",
	"participle":           "verb",
	"classifier":           "classifier",
	"counter":              "counter",
	"romanization":         "romanization",
}

// MapPOS returns the POS code for a section header. The lookup is
// case-insensitive; ok is false for headers that are not parts of speech.
func MapPOS(header string) (code string, ok bool) {
	code, ok = posHeaders[strings.ToLower(strings.TrimSpace(header))]
	return code, ok
}
