package extract

// languageCodes maps the Wiktionary language section name to its code.
// Only languages listed here can be requested explicitly; "all" captures
// every section regardless of this table.
var languageCodes = map[string]string{
	"Afrikaans":           "af",
	"Albanian":            "sq",
	"Ancient Greek":       "grc",
	"Arabic":              "ar",
	"Armenian":            "hy",
	"Azerbaijani":         "az",
	"Basque":              "eu",
	"Belarusian":          "be",
	"Bengali":             "bn",
	"Bulgarian":           "bg",
	"Burmese":             "my",
	"Catalan":             "ca",
	"Cebuano":             "ceb",
	"Chinese":             "zh",
	"Cantonese":           "yue",
	"Mandarin":            "cmn",
	"Croatian":            "hr",
	"Czech":               "cs",
	"Danish":              "da",
	"Dutch":               "nl",
	"English":             "en",
	"Middle English":      "enm",
	"Old English":         "ang",
	"Esperanto":           "eo",
	"Estonian":            "et",
	"Faroese":             "fo",
	"Finnish":             "fi",
	"French":              "fr",
	"Old French":          "fro",
	"Galician":            "gl",
	"Georgian":            "ka",
	"German":              "de",
	"Gothic":              "got",
	"Greek":               "el",
	"Gujarati":            "gu",
	"Hawaiian":            "haw",
	"Hebrew":              "he",
	"Hindi":               "hi",
	"Hungarian":           "hu",
	"Icelandic":           "is",
	"Ido":                 "io",
	"Indonesian":          "id",
	"Interlingua":         "ia",
	"Irish":               "ga",
	"Italian":             "it",
	"Japanese":            "ja",
	"Kazakh":              "kk",
	"Khmer":               "km",
	"Korean":              "ko",
	"Kurdish":             "ku",
	"Kyrgyz":              "ky",
	"Lao":                 "lo",
	"Latin":               "la",
	"Latvian":             "lv",
	"Lithuanian":          "lt",
	"Luxembourgish":       "lb",
	"Macedonian":          "mk",
	"Malay":               "ms",
	"Malayalam":           "ml",
	"Maltese":             "mt",
	"Manx":                "gv",
	"Maori":               "mi",
	"Marathi":             "mr",
	"Mongolian":           "mn",
	"Navajo":              "nv",
	"Nepali":              "ne",
	"Norwegian":           "no",
	"Norwegian Bokmål":    "nb",
	"Norwegian Nynorsk":   "nn",
	"Occitan":             "oc",
	"Old Norse":           "non",
	"Pali":                "pi",
	"Persian":             "fa",
	"Polish":              "pl",
	"Portuguese":          "pt",
	"Proto-Indo-European": "ine-pro",
	"Punjabi":             "pa",
	"Romanian":            "ro",
	"Russian":             "ru",
	"Sanskrit":            "sa",
	"Scottish Gaelic":     "gd",
	"Serbo-Croatian":      "sh",
	"Sicilian":            "scn",
	"Slovak":              "sk",
	"Slovene":             "sl",
	"Spanish":             "es",
	"Swahili":             "sw",
	"Swedish":             "sv",
	"Tagalog":             "tl",
	"Tajik":               "tg",
	"Tamil":               "ta",
	"Telugu":              "te",
	"Thai":                "th",
	"Tibetan":             "bo",
	"Translingual":        "mul",
	"Turkish":             "tr",
	"Turkmen":             "tk",
	"Ukrainian":           "uk",
	"Urdu":                "ur",
	"Uyghur":              "ug",
	"Uzbek":               "uz",
	"Vietnamese":          "vi",
	"Volapük":             "vo",
	"Welsh":               "cy",
	"West Frisian":        "fy",
	"Yiddish":             "yi",
	"Yoruba":              "yo",
	"Zulu":                "zu",
}

// codeLanguages is the reverse of languageCodes.
var codeLanguages = func() map[string]string {
	m := make(map[string]string, len(languageCodes))
	for name, code := range languageCodes {
		m[code] = name
	}
	return m
}()

// LanguageCode returns the code of a supported language name.
func LanguageCode(name string) (string, bool) {
	code, ok := languageCodes[name]
	return code, ok
}

// LanguageName returns the section name for a language code.
func LanguageName(code string) (string, bool) {
	name, ok := codeLanguages[code]
	return name, ok
}

// IsSupportedLanguage reports whether name can be requested explicitly.
func IsSupportedLanguage(name string) bool {
	_, ok := languageCodes[name]
	return ok
}
