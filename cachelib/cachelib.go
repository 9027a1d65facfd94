// Package cachelib persists tokenized books between runs, so repeated
// analysis skips re-tokenizing unchanged novels.
package cachelib

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"hash/fnv"
	"os"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mlombera94/harry-potter-text-analysis-part1/iolib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/tokenlib"
)

// CachedTokens is one cache entry: the token stream of a book plus the
// fingerprint of the text it was derived from
type CachedTokens struct {
	Fingerprint uint64
	Tokens      []tokenlib.Token
}

func init() {
	// Allow go interfaces be expanded into custom structs of our cache implementation
	gob.Register(CachedTokens{})
}

// Fingerprint hashes the chapter texts w/ FNV-1a. Chapter boundaries count,
// re-splitting the same text into different chapters changes the fingerprint.
func Fingerprint(chapters []string) uint64 {
	h := fnv.New64a()
	for _, ch := range chapters {
		h.Write([]byte(ch))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Cache is a disk-backed token cache
type Cache struct {
	path      string
	saveCount int
	items     *cache.Cache
}

// Open loads the serialized cache from path if present. A missing or
// unreadable file starts an empty cache.
func Open(path string) *Cache {
	b, err := os.ReadFile(path)
	if err != nil {
		return &Cache{path: path, items: cache.New(cache.NoExpiration, 10*time.Minute)}
	}

	// Deserialize
	decodedMap := make(map[string]cache.Item, 8)
	d := gob.NewDecoder(bytes.NewBuffer(b))
	if err := d.Decode(&decodedMap); err != nil {
		return &Cache{path: path, items: cache.New(cache.NoExpiration, 10*time.Minute)}
	}

	return &Cache{path: path, items: cache.NewFrom(cache.NoExpiration, 10*time.Minute, decodedMap)}
}

// Tokens returns the cached token stream of a book, missing when the book
// is absent or its fingerprint no longer matches the text on disk
func (c *Cache) Tokens(book string, fingerprint uint64) ([]tokenlib.Token, bool) {
	b, found := c.items.Get(book)
	if !found {
		return nil, false
	}
	entry, ok := b.(CachedTokens)
	if !ok || entry.Fingerprint != fingerprint {
		return nil, false
	}
	return entry.Tokens, true
}

// Put stores a book's tokens and saves the cache to disk
func (c *Cache) Put(book string, fingerprint uint64, tokens []tokenlib.Token) error {
	c.items.Set(book, CachedTokens{Fingerprint: fingerprint, Tokens: tokens}, cache.NoExpiration)
	return c.Save()
}

// Save stores the cache into its persistent file. Every 10th save copies the
// previous file to a backup first.
func (c *Cache) Save() error {
	c.saveCount++
	if c.saveCount%10 == 0 && iolib.FileExists(c.path) {
		if err := iolib.CopyFileContents(c.path, c.path+".backup"); err != nil {
			return fmt.Errorf("cache backup: %w", err)
		}
	}

	// Serialize cache
	b := new(bytes.Buffer)
	e := gob.NewEncoder(b)
	if err := e.Encode(c.items.Items()); err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	if err := os.WriteFile(c.path, b.Bytes(), 0644); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}
