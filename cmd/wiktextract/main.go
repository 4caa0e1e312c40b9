// Command wiktextract reads a Wiktionary XML dump (plain, .bz2 or .gz, local
// path or http(s) URL) and writes one JSON record per captured word, with
// optional raw page storage, a title index and header statistics.
//
// Usage:
//
//	wiktextract [flags] DUMP
//	wiktextract [flags] --page FILE
//	wiktextract lookup --index DIR TITLE
//	wiktextract version
//
// Flags:
//
//	--config          path to YAML config file (default ./wiktextract.yaml)
//	--out             JSON output path, "-" for stdout
//	--pages-dir       directory receiving raw page text
//	--page-index      title index directory (requires --pages-dir)
//	--page            extract a single saved page instead of a dump
//	--language        language to capture, repeatable or comma-separated
//	--all-languages   capture every language
//	--translations, --pronunciations, --linkages, --compounds,
//	--redirects, --examples
//	                  enable one optional capture category
//	--all             enable every optional capture category
//	--statistics      print header statistics to stderr after the run
//	--verbose         debug logging and per-page tracing
//	--db-dsn          mirror records into PostgreSQL
//
// Exit codes: 0 = success, 1 = error or page-level failures, 2 = usage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/heartmarshall/wiktextract/internal/app"
	"github.com/heartmarshall/wiktextract/internal/config"
	"github.com/heartmarshall/wiktextract/internal/domain"
	"github.com/heartmarshall/wiktextract/internal/extract"
)

// stringList collects a repeatable flag; each value may hold several
// comma-separated items.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "lookup":
			os.Exit(runLookup(os.Args[2:]))
		case "version":
			fmt.Println(app.BuildVersion())
			return
		}
	}
	os.Exit(runExtract(os.Args[1:]))
}

func runExtract(args []string) int {
	fs := flag.NewFlagSet("wiktextract", flag.ContinueOnError)

	configFlag := fs.String("config", "", "path to YAML config file")
	outFlag := fs.String("out", "", `JSON output path, "-" for stdout`)
	pagesDirFlag := fs.String("pages-dir", "", "directory receiving raw page text")
	pageIndexFlag := fs.String("page-index", "", "title index directory")
	pageFlag := fs.String("page", "", "extract a single saved page")
	var languages stringList
	fs.Var(&languages, "language", "language to capture (repeatable)")
	allLanguagesFlag := fs.Bool("all-languages", false, "capture every language")
	translationsFlag := fs.Bool("translations", false, "capture translations")
	pronunciationsFlag := fs.Bool("pronunciations", false, "capture pronunciations")
	linkagesFlag := fs.Bool("linkages", false, "capture linkages")
	compoundsFlag := fs.Bool("compounds", false, "capture compounds and derived terms")
	redirectsFlag := fs.Bool("redirects", false, "capture redirects")
	examplesFlag := fs.Bool("examples", false, "capture usage examples")
	allFlag := fs.Bool("all", false, "enable every optional capture category")
	statisticsFlag := fs.Bool("statistics", false, "print header statistics")
	verboseFlag := fs.Bool("verbose", false, "debug logging")
	dsnFlag := fs.String("db-dsn", "", "PostgreSQL DSN for the record mirror")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Printf("load config: %v", err)
		return 1
	}

	// CLI flags override config.
	if fs.NArg() > 1 {
		log.Printf("expected one dump argument, got %d", fs.NArg())
		return 2
	}
	if fs.NArg() == 1 {
		cfg.Input.Dump = fs.Arg(0)
	}
	if *pageFlag != "" {
		cfg.Input.Page = *pageFlag
	}
	if *outFlag != "" {
		cfg.Output.Path = *outFlag
	}
	if *pagesDirFlag != "" {
		cfg.Output.PagesDir = *pagesDirFlag
	}
	if *pageIndexFlag != "" {
		cfg.Output.PageIndex = *pageIndexFlag
	}
	if len(languages) > 0 {
		cfg.Extract.Languages = languages.String()
	}
	if *allLanguagesFlag {
		cfg.Extract.Languages = extract.AllLanguages
	}
	if *allFlag {
		cfg.Extract.SetAllCategories()
	}
	setIf(&cfg.Extract.Translations, *translationsFlag)
	setIf(&cfg.Extract.Pronunciations, *pronunciationsFlag)
	setIf(&cfg.Extract.Linkages, *linkagesFlag)
	setIf(&cfg.Extract.Compounds, *compoundsFlag)
	setIf(&cfg.Extract.Redirects, *redirectsFlag)
	setIf(&cfg.Extract.Examples, *examplesFlag)
	setIf(&cfg.Extract.Verbose, *verboseFlag)
	setIf(&cfg.Output.Statistics, *statisticsFlag)
	if *dsnFlag != "" {
		cfg.Database.DSN = *dsnFlag
	}

	if err := cfg.Validate(); err != nil {
		log.Printf("invalid configuration: %v", err)
		if errors.Is(err, domain.ErrNoInput) {
			fs.Usage()
			return 2
		}
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := app.Run(ctx, cfg, os.Stdout, os.Stderr)
	if err != nil {
		slog.Error("extraction failed", slog.String("error", err.Error()))
		return 1
	}

	if res.HasErrors() {
		slog.Warn("extraction completed with errors",
			slog.Int("store_errors", res.StoreErrors),
			slog.Int("extract_errors", res.ExtractErrors),
			slog.Int("mirror_errors", res.MirrorErrors),
		)
		return 1
	}

	return 0
}

func runLookup(args []string) int {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	indexFlag := fs.String("index", "", "title index directory")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *indexFlag == "" || fs.NArg() != 1 {
		log.Print("usage: wiktextract lookup --index DIR TITLE")
		return 2
	}

	if err := app.Lookup(*indexFlag, fs.Arg(0), os.Stdout); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("%s: not in index", fs.Arg(0))
		} else {
			log.Printf("lookup: %v", err)
		}
		return 1
	}
	return 0
}

// setIf turns dst on when the flag was given; an unset flag keeps the
// configured value.
func setIf(dst *bool, flagValue bool) {
	if flagValue {
		*dst = true
	}
}
