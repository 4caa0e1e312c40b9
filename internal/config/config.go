package config

import (
	"strings"
	"time"

	"github.com/heartmarshall/wiktextract/internal/extract"
)

// Config is the root application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Input    InputConfig    `yaml:"input"`
	Extract  ExtractConfig  `yaml:"extract"`
	Output   OutputConfig   `yaml:"output"`
	Database DatabaseConfig `yaml:"database"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// InputConfig selects what is read: a full dump or a single saved page.
type InputConfig struct {
	Dump string `yaml:"dump" env:"INPUT_DUMP"`
	Page string `yaml:"page" env:"INPUT_PAGE"`
}

// ExtractConfig holds the capture settings passed to the extraction engine.
type ExtractConfig struct {
	Languages      string `yaml:"languages"      env:"EXTRACT_LANGUAGES"      env-default:"English,Translingual"`
	Translations   bool   `yaml:"translations"   env:"EXTRACT_TRANSLATIONS"   env-default:"false"`
	Pronunciations bool   `yaml:"pronunciations" env:"EXTRACT_PRONUNCIATIONS" env-default:"false"`
	Linkages       bool   `yaml:"linkages"       env:"EXTRACT_LINKAGES"       env-default:"false"`
	Compounds      bool   `yaml:"compounds"      env:"EXTRACT_COMPOUNDS"      env-default:"false"`
	Redirects      bool   `yaml:"redirects"      env:"EXTRACT_REDIRECTS"      env-default:"false"`
	Examples       bool   `yaml:"examples"       env:"EXTRACT_EXAMPLES"       env-default:"false"`
	Verbose        bool   `yaml:"verbose"        env:"EXTRACT_VERBOSE"        env-default:"false"`
}

// OutputConfig holds the destinations of a run.
type OutputConfig struct {
	// Path receives JSON records; "-" means stdout. Empty disables record output.
	Path          string `yaml:"path"           env:"OUTPUT_PATH"`
	PagesDir      string `yaml:"pages_dir"      env:"OUTPUT_PAGES_DIR"`
	PageIndex     string `yaml:"page_index"     env:"OUTPUT_PAGE_INDEX"`
	Statistics    bool   `yaml:"statistics"     env:"OUTPUT_STATISTICS"     env-default:"false"`
	ProgressEvery int    `yaml:"progress_every" env:"OUTPUT_PROGRESS_EVERY" env-default:"10000"`
}

// DatabaseConfig holds PostgreSQL settings for the optional record mirror.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	BatchSize       int           `yaml:"batch_size"         env:"DATABASE_BATCH_SIZE"         env-default:"500"`
}

// Enabled reports whether records are mirrored to PostgreSQL.
func (d DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(d.DSN) != ""
}

// LanguageList splits the comma-separated Languages field.
func (e ExtractConfig) LanguageList() []string {
	var out []string
	for _, name := range strings.Split(e.Languages, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// SetAllCategories turns on every optional capture category.
func (e *ExtractConfig) SetAllCategories() {
	e.Translations = true
	e.Pronunciations = true
	e.Linkages = true
	e.Compounds = true
	e.Redirects = true
	e.Examples = true
}

// Options converts the settings into engine options.
func (e ExtractConfig) Options() extract.Options {
	return extract.Options{
		Languages:      e.LanguageList(),
		Translations:   e.Translations,
		Pronunciations: e.Pronunciations,
		Linkages:       e.Linkages,
		Compounds:      e.Compounds,
		Redirects:      e.Redirects,
		Examples:       e.Examples,
		Verbose:        e.Verbose,
	}
}
