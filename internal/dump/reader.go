// Package dump streams pages out of a MediaWiki XML export.
package dump

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrStop may be returned from an Each callback to end iteration early
// without an error.
var ErrStop = errors.New("stop iteration")

// Page is one <page> element of the export.
type Page struct {
	Title     string
	Namespace int
	Text      string
	// Redirect is the target title when the page is a redirect.
	Redirect string
}

type xmlPage struct {
	Title    string `xml:"title"`
	NS       int    `xml:"ns"`
	Redirect *struct {
		Title string `xml:"title,attr"`
	} `xml:"redirect"`
	Revision struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

// Reader decodes pages from an XML stream one at a time.
type Reader struct {
	dec *xml.Decoder
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	return &Reader{dec: dec}
}

// Each calls fn for every page in document order. It stops at the first
// error from fn or the decoder, and checks ctx between pages.
func (r *Reader) Each(ctx context.Context, fn func(Page) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode dump: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "page" {
			continue
		}

		var xp xmlPage
		if err := r.dec.DecodeElement(&xp, &start); err != nil {
			return fmt.Errorf("decode page: %w", err)
		}

		page := Page{
			Title:     xp.Title,
			Namespace: xp.NS,
			Text:      xp.Revision.Text,
		}
		if xp.Redirect != nil {
			page.Redirect = xp.Redirect.Title
		}

		if err := fn(page); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// ReadPageFile loads a single page saved as plain text: the first line is
// the title and the rest is the page text.
func ReadPageFile(path string) (Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Page{}, fmt.Errorf("read page file: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	title, text, _ := strings.Cut(content, "\n")
	title = strings.TrimSpace(title)
	if title == "" {
		return Page{}, fmt.Errorf("read page file %s: missing title line", path)
	}

	return Page{Title: title, Text: text}, nil
}

// Pages is an in-memory page sequence with the same iteration contract as
// Reader. It serves single-page runs.
type Pages []Page

// Each calls fn for every page in order.
func (ps Pages) Each(ctx context.Context, fn func(Page) error) error {
	for _, p := range ps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(p); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}
