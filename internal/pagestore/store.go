// Package pagestore mirrors raw page text into a directory tree keyed by the
// sanitized stored title.
package pagestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/heartmarshall/wiktextract/internal/title"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store writes pages under a base directory.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created lazily.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the base directory.
func (s *Store) Dir() string { return s.dir }

// Capture is the per-page callback used by the extraction pipeline. It
// classifies rawTitle and, unless the page is ignored, writes text verbatim
// to title.RelPath of the stored title. The classification is returned even
// when the write fails so the caller can still route the page.
func (s *Store) Capture(rawTitle, text string) (title.Classification, error) {
	cls := title.Classify(rawTitle)
	if cls.Ignored() {
		return cls, nil
	}
	if _, err := s.Save(cls, text); err != nil {
		return cls, err
	}
	return cls, nil
}

// Save writes text for an already classified page and returns the path
// relative to the base directory. Missing parent directories are created;
// an existing file is overwritten.
func (s *Store) Save(cls title.Classification, text string) (string, error) {
	if cls.Ignored() {
		return "", fmt.Errorf("pagestore: save ignored page")
	}

	rel := title.RelPath(cls.Stored)
	path := filepath.Join(s.dir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", fmt.Errorf("pagestore: create dir for %q: %w", cls.Stored, err)
	}
	if err := os.WriteFile(path, []byte(text), filePerm); err != nil {
		return "", fmt.Errorf("pagestore: write %q: %w", cls.Stored, err)
	}

	return rel, nil
}
