// Package cache holds parsed statements keyed by a fingerprint of the raw
// input text, so re-uploading an identical statement does not re-parse it.
// Entries are write-once, read-many and never evicted within a run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	gocache "github.com/patrickmn/go-cache"

	"github.com/aiesanjusto/resumen-bancario/internal/models"
)

// Store is a content-addressed statement cache, safe for concurrent use.
type Store struct {
	c *gocache.Cache
}

// NewStore returns an empty store. No expiration and no janitor: a parse
// result stays valid for as long as the process runs.
func NewStore() *Store {
	return &Store{c: gocache.New(gocache.NoExpiration, 0)}
}

// Fingerprint returns the content key for a raw statement text.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached statement for a fingerprint, if present.
func (s *Store) Get(key string) (*models.Statement, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*models.Statement), true
}

// Put stores a parsed statement under its fingerprint. First write wins;
// identical content parses to an identical statement anyway.
func (s *Store) Put(key string, st *models.Statement) {
	s.c.Add(key, st, gocache.NoExpiration)
}

// GetOrParse returns the cached statement for the text, parsing and caching
// on a miss. The second return value reports whether this was a cache hit.
// Parse failures are never cached.
func (s *Store) GetOrParse(text string, parse func(string) (*models.Statement, error)) (*models.Statement, bool, error) {
	key := Fingerprint(text)
	if st, ok := s.Get(key); ok {
		return st, true, nil
	}
	st, err := parse(text)
	if err != nil {
		return nil, false, err
	}
	s.Put(key, st)
	return st, false, nil
}
