// Package models defines the grammar enumerations and the request/response
// structures shared by the builder, the services and the HTTP API.
package models

import (
	"strings"
	"unicode"

	contextutils "phraseapp/internal/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Pronoun is a French subject pronoun.
type Pronoun string

// Subject pronouns, in display order.
const (
	PronounJe    Pronoun = "je"
	PronounTu    Pronoun = "tu"
	PronounIl    Pronoun = "il"
	PronounElle  Pronoun = "elle"
	PronounOn    Pronoun = "on"
	PronounNous  Pronoun = "nous"
	PronounVous  Pronoun = "vous"
	PronounIls   Pronoun = "ils"
	PronounElles Pronoun = "elles"
)

// Tense is one of the five supported verb tenses.
type Tense string

// Tenses, in display order.
const (
	TensePresent      Tense = "présent"
	TensePasseCompose Tense = "passé composé"
	TenseImparfait    Tense = "imparfait"
	TenseFuturSimple  Tense = "futur simple"
	TenseFuturProche  Tense = "futur proche"
)

// Structure is the polarity/mood of a sentence.
type Structure string

// Sentence structures, in display order.
const (
	StructureAffirmative   Structure = "Affirmative"
	StructureNegative      Structure = "Négative"
	StructureInterrogative Structure = "Interrogative"
)

// AllPronouns returns the nine subject pronouns in display order.
func AllPronouns() []Pronoun {
	return []Pronoun{PronounJe, PronounTu, PronounIl, PronounElle, PronounOn, PronounNous, PronounVous, PronounIls, PronounElles}
}

// AllTenses returns the five tenses in display order.
func AllTenses() []Tense {
	return []Tense{TensePresent, TensePasseCompose, TenseImparfait, TenseFuturSimple, TenseFuturProche}
}

// AllStructures returns the three structures in display order.
func AllStructures() []Structure {
	return []Structure{StructureAffirmative, StructureNegative, StructureInterrogative}
}

// Inverts reports whether interrogatives with this pronoun use subject-verb
// inversion ("Avons-nous") instead of "Est-ce que".
func (p Pronoun) Inverts() bool {
	switch p {
	case PronounNous, PronounVous, PronounIls, PronounElles:
		return true
	}
	return false
}

// IsCompound reports whether the tense is formed with an auxiliary.
func (t Tense) IsCompound() bool {
	return t == TensePasseCompose || t == TenseFuturProche
}

// ParsePronoun accepts any casing and surrounding whitespace.
func ParsePronoun(s string) (Pronoun, error) {
	key := FoldKey(s)
	for _, p := range AllPronouns() {
		if string(p) == key {
			return p, nil
		}
	}
	return "", contextutils.NewAppError(contextutils.ErrorCodeUnknownPronoun, contextutils.SeverityWarn,
		"Unknown subject pronoun", s)
}

// ParseTense accepts any casing and tolerates missing accents ("passe compose").
func ParseTense(s string) (Tense, error) {
	key := FoldKey(s)
	for _, t := range AllTenses() {
		if FoldKey(string(t)) == key {
			return t, nil
		}
	}
	return "", contextutils.NewAppError(contextutils.ErrorCodeUnknownTense, contextutils.SeverityWarn,
		"Unknown tense", s)
}

// ParseStructure accepts any casing; "Negative" is accepted for "Négative".
func ParseStructure(s string) (Structure, error) {
	key := FoldKey(s)
	for _, st := range AllStructures() {
		if FoldKey(string(st)) == key {
			return st, nil
		}
	}
	return "", contextutils.NewAppError(contextutils.ErrorCodeUnknownStructure, contextutils.SeverityWarn,
		"Unknown sentence structure", s)
}

// FoldKey normalizes s for lookups: trimmed, inner whitespace collapsed,
// lower-cased and stripped of diacritics, so "Être", "etre" and " ÊTRE "
// all fold to "etre".
func FoldKey(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	return cases.Lower(language.French).String(folded)
}
