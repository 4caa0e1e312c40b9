package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/wiktextract/internal/domain"
	"github.com/heartmarshall/wiktextract/internal/extract"
)

var (
	logLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	logFormats = map[string]bool{"json": true, "text": true}
)

// Validate checks the configuration after loading and after CLI overrides.
// A missing input wraps domain.ErrNoInput, an unknown language wraps
// domain.ErrUnsupportedLanguage, and malformed fields are reported together
// as a *domain.ValidationError.
func (c *Config) Validate() error {
	if c.Input.Dump == "" && c.Input.Page == "" {
		return fmt.Errorf("%w: a dump path or a single page path is required", domain.ErrNoInput)
	}
	if c.Input.Dump != "" && c.Input.Page != "" {
		return domain.NewValidationError("input", "dump and page are mutually exclusive")
	}

	if _, err := extract.NewConfig(c.Extract.Options()); err != nil {
		return fmt.Errorf("extract.languages: %w", err)
	}

	var errs []domain.FieldError
	if !logLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, domain.FieldError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	if !logFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, domain.FieldError{Field: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)})
	}
	if c.Output.ProgressEvery < 0 {
		errs = append(errs, domain.FieldError{Field: "output.progress_every", Message: "must be >= 0"})
	}
	if c.Database.Enabled() {
		errs = append(errs, c.Database.validate()...)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (d DatabaseConfig) validate() []domain.FieldError {
	var errs []domain.FieldError
	if d.BatchSize <= 0 {
		errs = append(errs, domain.FieldError{Field: "database.batch_size", Message: fmt.Sprintf("must be > 0 (got %d)", d.BatchSize)})
	}
	if d.MaxConns <= 0 {
		errs = append(errs, domain.FieldError{Field: "database.max_conns", Message: fmt.Sprintf("must be > 0 (got %d)", d.MaxConns)})
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		errs = append(errs, domain.FieldError{Field: "database.min_conns", Message: fmt.Sprintf("must be between 0 and max_conns (got %d)", d.MinConns)})
	}
	return errs
}
