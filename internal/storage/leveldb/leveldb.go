// Package leveldb keeps the page index: a LevelDB map from the original
// dump title to where the page was mirrored. Sanitized paths are lossy, so
// the index is the only way back from a file to its title.
package leveldb

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/heartmarshall/wiktextract/internal/domain"
)

const pageKeyPrefix = "page:"

// PageEntry is the indexed location of one mirrored page.
type PageEntry struct {
	Title  string `json:"title"`
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Prefix string `json:"prefix,omitempty"`
}

// Storage is a LevelDB-backed page index.
type Storage struct {
	db *leveldb.DB
}

// New opens (or creates) the index at path.
func New(path string) (*Storage, error) {
	const op = "storage.leveldb.New"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Close releases the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Put stores or replaces the entry for e.Title.
func (s *Storage) Put(e PageEntry) error {
	const op = "storage.leveldb.Put"

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: marshal %q: %w", op, e.Title, err)
	}
	if err := s.db.Put(pageKey(e.Title), data, nil); err != nil {
		return fmt.Errorf("%s: %q: %w", op, e.Title, err)
	}
	return nil
}

// Get returns the entry for title, or an error wrapping domain.ErrNotFound.
func (s *Storage) Get(title string) (PageEntry, error) {
	const op = "storage.leveldb.Get"

	data, err := s.db.Get(pageKey(title), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return PageEntry{}, fmt.Errorf("%s: %q: %w", op, title, domain.ErrNotFound)
	}
	if err != nil {
		return PageEntry{}, fmt.Errorf("%s: %q: %w", op, title, err)
	}

	var e PageEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return PageEntry{}, fmt.Errorf("%s: decode %q: %w", op, title, err)
	}
	return e, nil
}

// Count returns the number of indexed pages.
func (s *Storage) Count() (int, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(pageKeyPrefix)), nil)
	defer iter.Release()

	n := 0
	for iter.Next() {
		n++
	}
	if err := iter.Error(); err != nil {
		return 0, fmt.Errorf("storage.leveldb.Count: %w", err)
	}
	return n, nil
}

func pageKey(title string) []byte {
	return []byte(pageKeyPrefix + title)
}
