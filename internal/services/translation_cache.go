package services

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultTranslationCacheSize is used when no positive size is configured
const DefaultTranslationCacheSize = 1000

// cacheKey identifies one translation
type cacheKey struct {
	text   string
	source string
	target string
}

type cacheValue struct {
	translated string
	provider   string
}

// TranslationCache keeps remote translations in memory, keyed by text and
// language pair. Reads do not refresh an entry, so once full the oldest
// write is evicted first. A later Put for the same key overwrites the earlier
// value. Safe for concurrent use.
type TranslationCache struct {
	entries *lru.Cache[cacheKey, cacheValue]
}

// NewTranslationCache creates a cache holding at most maxEntries translations
func NewTranslationCache(maxEntries int) *TranslationCache {
	if maxEntries <= 0 {
		maxEntries = DefaultTranslationCacheSize
	}
	// lru.New only fails for a non-positive size
	entries, _ := lru.New[cacheKey, cacheValue](maxEntries)
	return &TranslationCache{entries: entries}
}

// Get returns the cached translation and the provider that produced it
func (c *TranslationCache) Get(text, source, target string) (translated, provider string, ok bool) {
	v, ok := c.entries.Peek(cacheKey{text: text, source: source, target: target})
	if !ok {
		return "", "", false
	}
	return v.translated, v.provider, true
}

// Put stores a translation
func (c *TranslationCache) Put(text, source, target, translated, provider string) {
	c.entries.Add(cacheKey{text: text, source: source, target: target}, cacheValue{translated: translated, provider: provider})
}

// Len returns the number of cached translations
func (c *TranslationCache) Len() int {
	return c.entries.Len()
}

// Clear drops every entry
func (c *TranslationCache) Clear() {
	c.entries.Purge()
}
