// Package memo caches structured documents by the hash of their raw text.
package memo

import (
	"encoding/hex"
	"slices"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/zeebo/blake3"

	"github.com/dgallion1/docform/internal/doctree"
)

// Structurer turns raw content into a document. The result must depend only
// on raw.Text and the structurer's fixed configuration.
type Structurer interface {
	Structure(raw doctree.Raw) *doctree.Document
}

// Recorder receives the duration of every uncached structuring call.
type Recorder interface {
	Record(d time.Duration)
}

// Stats reports cache effectiveness.
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// Cache memoizes a Structurer. A cache built with maxEntries <= 0 stores
// nothing and only forwards calls. It is safe for concurrent use.
type Cache struct {
	next     Structurer
	recorder Recorder

	mu     sync.Mutex
	lru    *lru.Cache
	hits   uint64
	misses uint64
}

// New wraps next. recorder may be nil.
func New(next Structurer, maxEntries int, recorder Recorder) *Cache {
	c := &Cache{next: next, recorder: recorder}
	if maxEntries > 0 {
		c.lru = lru.New(maxEntries)
	}
	return c
}

// Key returns the cache key for raw text: the hex blake3-256 digest.
func Key(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Structure returns the memoized document for raw.Text, structuring it on a
// miss. The display title is taken from raw on every call. The returned
// document is a fresh copy the caller may modify.
func (c *Cache) Structure(raw doctree.Raw) *doctree.Document {
	key := Key(raw.Text)

	c.mu.Lock()
	if c.lru != nil {
		if v, ok := c.lru.Get(key); ok {
			c.hits++
			c.mu.Unlock()
			return withTitle(v.(*doctree.Document), raw.Title)
		}
	}
	c.misses++
	c.mu.Unlock()

	start := time.Now()
	doc := c.next.Structure(doctree.Raw{Text: raw.Text})
	if c.recorder != nil {
		c.recorder.Record(time.Since(start))
	}

	if c.lru != nil {
		c.mu.Lock()
		c.lru.Add(key, doc)
		c.mu.Unlock()
	}
	return withTitle(doc, raw.Title)
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Hits: c.hits, Misses: c.misses}
	if c.lru != nil {
		s.Entries = c.lru.Len()
	}
	return s
}

func withTitle(doc *doctree.Document, title string) *doctree.Document {
	return &doctree.Document{
		Title:  title,
		Format: doc.Format,
		Blocks: slices.Clone(doc.Blocks),
	}
}
