package services

import (
	"strings"

	"phraseapp/internal/lexicon"
)

// FallbackTranslator is the local dictionary used when no remote translation
// is available. It is deterministic and never fails.
type FallbackTranslator struct {
	lex *lexicon.Lexicon
}

// NewFallbackTranslator creates a translator over the lexicon glossaries
func NewFallbackTranslator(lex *lexicon.Lexicon) *FallbackTranslator {
	return &FallbackTranslator{lex: lex}
}

// HasGlossary reports whether target has a local dictionary
func (f *FallbackTranslator) HasGlossary(target string) bool {
	_, ok := f.lex.Glossary(target)
	return ok
}

// Translate replaces the first phrase pattern found in text (every occurrence
// of it), then applies every word substitution in glossary order. Without a
// glossary for target the text is returned unchanged.
func (f *FallbackTranslator) Translate(text, target string) string {
	glossary, ok := f.lex.Glossary(target)
	if !ok {
		return text
	}

	out := text
	for _, p := range glossary.Phrases {
		if p.From != "" && strings.Contains(out, p.From) {
			out = strings.ReplaceAll(out, p.From, p.To)
			break
		}
	}

	for _, w := range glossary.Words {
		if w.From == "" {
			continue
		}
		out = strings.ReplaceAll(out, w.From, w.To)
	}
	return out
}
