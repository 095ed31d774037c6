package sentence

import (
	"fmt"
	"strings"

	"phraseapp/internal/models"
)

// Conjugation is either a KnownVerb looked up in the lexicon or an
// UnknownVerb rendered by a fallback rule. It is resolved once per build.
type Conjugation interface {
	// Form is the conjugated surface form placed in the sentence.
	Form() string
	// Split separates a compound form into auxiliary and participle at the
	// first space. ok is false for simple tenses and unsplittable forms.
	Split() (aux, participle string, ok bool)
	Known() bool
}

// KnownVerb is a form taken from the conjugation table.
type KnownVerb struct {
	Tense   models.Tense
	Surface string
}

// Form implements Conjugation.
func (k KnownVerb) Form() string { return k.Surface }

// Known implements Conjugation.
func (k KnownVerb) Known() bool { return true }

// Split implements Conjugation.
func (k KnownVerb) Split() (string, string, bool) {
	return splitCompound(k.Tense, k.Surface)
}

// UnknownVerb is a verb without a conjugation table. By default it renders
// with the legacy mechanical suffix rule, which is wrong for most verbs
// ("direais"); Strict renders an explicit marker instead.
type UnknownVerb struct {
	Verb   string
	Tense  models.Tense
	Strict bool
}

// Form implements Conjugation.
func (u UnknownVerb) Form() string {
	if u.Strict {
		return UnavailableMarker(u.Verb)
	}
	return legacyForm(u.Verb, u.Tense)
}

// Known implements Conjugation.
func (u UnknownVerb) Known() bool { return false }

// Split implements Conjugation. The strict marker is never split.
func (u UnknownVerb) Split() (string, string, bool) {
	if u.Strict {
		return "", "", false
	}
	return splitCompound(u.Tense, u.Form())
}

// UnavailableMarker is the placeholder shown in strict mode.
func UnavailableMarker(verb string) string {
	return fmt.Sprintf("[%s - conjugaison non disponible]", verb)
}

func legacyForm(verb string, tense models.Tense) string {
	switch tense {
	case models.TensePasseCompose:
		return "ai " + verb
	case models.TenseImparfait:
		return verb + "ais"
	case models.TenseFuturSimple:
		return verb + "ai"
	case models.TenseFuturProche:
		return "vais " + verb
	default:
		return verb
	}
}

func splitCompound(tense models.Tense, form string) (string, string, bool) {
	if !tense.IsCompound() {
		return "", "", false
	}
	return strings.Cut(form, " ")
}

// Conjugator looks up table forms.
type Conjugator interface {
	Conjugate(verb string, tense models.Tense, pronoun models.Pronoun) (string, bool)
}

// Resolve picks the Conjugation variant for verb once, so the templates never
// check table membership themselves.
func Resolve(table Conjugator, verb string, tense models.Tense, pronoun models.Pronoun, strict bool) Conjugation {
	if form, ok := table.Conjugate(verb, tense, pronoun); ok {
		return KnownVerb{Tense: tense, Surface: form}
	}
	return UnknownVerb{Verb: verb, Tense: tense, Strict: strict}
}
