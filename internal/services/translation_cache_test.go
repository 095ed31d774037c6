package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationCache_GetPut(t *testing.T) {
	cache := NewTranslationCache(10)

	_, _, ok := cache.Get("Je suis.", "fr", "pt")
	assert.False(t, ok)

	cache.Put("Je suis.", "fr", "pt", "Eu sou.", "google")
	translated, provider, ok := cache.Get("Je suis.", "fr", "pt")
	assert.True(t, ok)
	assert.Equal(t, "Eu sou.", translated)
	assert.Equal(t, "google", provider)

	// the language pair is part of the key
	_, _, ok = cache.Get("Je suis.", "fr", "en")
	assert.False(t, ok)
}

func TestTranslationCache_LastWriterWins(t *testing.T) {
	cache := NewTranslationCache(10)

	cache.Put("Tu vas.", "fr", "pt", "Tu vais.", "google")
	cache.Put("Tu vas.", "fr", "pt", "Você vai.", "libretranslate")

	translated, provider, ok := cache.Get("Tu vas.", "fr", "pt")
	assert.True(t, ok)
	assert.Equal(t, "Você vai.", translated)
	assert.Equal(t, "libretranslate", provider)
	assert.Equal(t, 1, cache.Len())
}

func TestTranslationCache_EvictsOldestFirst(t *testing.T) {
	cache := NewTranslationCache(2)

	cache.Put("a", "fr", "pt", "A", "p")
	cache.Put("b", "fr", "pt", "B", "p")
	// reads do not refresh an entry
	_, _, _ = cache.Get("a", "fr", "pt")
	cache.Put("c", "fr", "pt", "C", "p")

	_, _, ok := cache.Get("a", "fr", "pt")
	assert.False(t, ok)
	_, _, ok = cache.Get("b", "fr", "pt")
	assert.True(t, ok)
	_, _, ok = cache.Get("c", "fr", "pt")
	assert.True(t, ok)
	assert.Equal(t, 2, cache.Len())
}

func TestTranslationCache_DefaultSizeAndClear(t *testing.T) {
	cache := NewTranslationCache(0)
	for i := 0; i < DefaultTranslationCacheSize+5; i++ {
		cache.Put(fmt.Sprintf("t%d", i), "fr", "pt", "x", "p")
	}
	assert.Equal(t, DefaultTranslationCacheSize, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestTranslationCache_ConcurrentUse(t *testing.T) {
	cache := NewTranslationCache(50)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				text := fmt.Sprintf("%d-%d", g, i%20)
				cache.Put(text, "fr", "pt", text, "p")
				_, _, _ = cache.Get(text, "fr", "pt")
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 50)
}
