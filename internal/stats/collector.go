// Package stats tallies languages and section headers seen during a run and
// renders the end-of-run report.
package stats

import (
	"fmt"
	"io"
	"sort"
)

// LanguageCutoff ends the language listing after the first language seen
// fewer times than this.
const LanguageCutoff = 1000

// Count is one row of a listing.
type Count struct {
	Name  string
	Count int
}

// Collector accumulates counts for a single run. It is owned by the driving
// loop and is not safe for concurrent use.
type Collector struct {
	languages map[string]int
	posHeads  map[string]int
	sections  map[string]int
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{
		languages: make(map[string]int),
		posHeads:  make(map[string]int),
		sections:  make(map[string]int),
	}
}

// RecordLanguage counts one occurrence of a language section.
func (c *Collector) RecordLanguage(name string) { c.languages[name]++ }

// RecordPOSHeader counts one occurrence of a part-of-speech header.
func (c *Collector) RecordPOSHeader(name string) { c.posHeads[name]++ }

// RecordSectionHeader counts one occurrence of any section header.
func (c *Collector) RecordSectionHeader(name string) { c.sections[name]++ }

// Languages returns language counts sorted by descending count.
func (c *Collector) Languages() []Count { return sorted(c.languages) }

// POSHeaders returns part-of-speech header counts sorted by descending count.
func (c *Collector) POSHeaders() []Count { return sorted(c.posHeads) }

// SectionHeaders returns section header counts sorted by descending count.
func (c *Collector) SectionHeaders() []Count { return sorted(c.sections) }

// Report writes the three listings to w. The language listing stops after
// the first entry below LanguageCutoff and then prints "...".
func (c *Collector) Report(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("LANGUAGE COUNTS\n")
	langs := c.Languages()
	for _, lc := range langs {
		ew.printf("  %7d %s\n", lc.Count, lc.Name)
		if lc.Count < LanguageCutoff {
			ew.printf("  ...\n")
			break
		}
	}

	ew.printf("\nPOS HEADER USAGE\n")
	for _, pc := range c.POSHeaders() {
		ew.printf("  %7d %s\n", pc.Count, pc.Name)
	}

	ew.printf("\nSECTION HEADER USAGE\n")
	for _, sc := range c.SectionHeaders() {
		ew.printf("  %7d %s\n", sc.Count, sc.Name)
	}

	return ew.err
}

// sorted orders by count descending, then name ascending so reports are stable.
func sorted(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
