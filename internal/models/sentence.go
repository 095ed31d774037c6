package models

import (
	"strings"
	"time"
)

// SentenceRequest is the caller's selection of grammatical elements.
type SentenceRequest struct {
	Pronoun    Pronoun   `json:"pronoun" yaml:"pronoun" validate:"required,oneof=je tu il elle on nous vous ils elles"`
	Verb       string    `json:"verb" yaml:"verb" validate:"required,max=40"`
	Tense      Tense     `json:"tense" yaml:"tense" validate:"required,oneof='présent' 'passé composé' 'imparfait' 'futur simple' 'futur proche'"`
	Structure  Structure `json:"structure" yaml:"structure" validate:"required,oneof=Affirmative Négative Interrogative"`
	Complement string    `json:"complement" yaml:"complement" validate:"max=200"`
}

// Normalize returns a copy with pronoun, tense and structure in canonical
// form. The verb and complement are only trimmed; the lexicon owns verb keys.
func (r SentenceRequest) Normalize() (SentenceRequest, error) {
	pronoun, err := ParsePronoun(string(r.Pronoun))
	if err != nil {
		return SentenceRequest{}, err
	}
	tense, err := ParseTense(string(r.Tense))
	if err != nil {
		return SentenceRequest{}, err
	}
	structure, err := ParseStructure(string(r.Structure))
	if err != nil {
		return SentenceRequest{}, err
	}
	return SentenceRequest{
		Pronoun:    pronoun,
		Verb:       strings.TrimSpace(r.Verb),
		Tense:      tense,
		Structure:  structure,
		Complement: strings.TrimSpace(r.Complement),
	}, nil
}

// AppliedDecorations records which random embellishments made it into a sentence.
type AppliedDecorations struct {
	Adverb        string `json:"adverb,omitempty"`
	Framing       string `json:"framing,omitempty"`
	ObjectPronoun string `json:"object_pronoun,omitempty"`
}

// GrammarInfo is the breakdown shown next to a built sentence.
type GrammarInfo struct {
	Pronoun     Pronoun   `json:"pronoun"`
	Verb        string    `json:"verb"`
	Tense       Tense     `json:"tense"`
	Structure   Structure `json:"structure"`
	Conjugation string    `json:"conjugation"`
	Complement  string    `json:"complement,omitempty"`
}

// Sentence is a built sentence and how it was produced.
type Sentence struct {
	Text        string             `json:"text"`
	Request     SentenceRequest    `json:"request"`
	Conjugation string             `json:"conjugation"`
	KnownVerb   bool               `json:"known_verb"`
	Decorations AppliedDecorations `json:"decorations"`
	GrammarInfo GrammarInfo        `json:"grammar_info"`
}

// Challenge is a random selection the user is asked to turn into a sentence.
// The solution is only built on request.
type Challenge struct {
	ID        string          `json:"id"`
	Request   SentenceRequest `json:"request"`
	CreatedAt time.Time       `json:"created_at"`
}

// ChallengeSolution pairs a challenge with its built sentence.
type ChallengeSolution struct {
	Challenge Challenge `json:"challenge"`
	Solution  Sentence  `json:"solution"`
}

// VerbEntry is one row of the display verb catalog.
type VerbEntry struct {
	Name       string `json:"name"`
	Key        string `json:"key"`
	Conjugated bool   `json:"conjugated"`
}

// PronounForm is the conjugated form for one pronoun.
type PronounForm struct {
	Pronoun Pronoun `json:"pronoun"`
	Form    string  `json:"form"`
}

// TenseConjugation lists the nine forms of one tense in pronoun order.
type TenseConjugation struct {
	Tense Tense         `json:"tense"`
	Forms []PronounForm `json:"forms"`
}

// VerbConjugations is the full table of one verb.
type VerbConjugations struct {
	Verb   string             `json:"verb"`
	Known  bool               `json:"known"`
	Tenses []TenseConjugation `json:"tenses"`
}

// Options are the enumerations a control surface offers.
type Options struct {
	Pronouns    []Pronoun           `json:"pronouns"`
	Verbs       []string            `json:"verbs"`
	Tenses      []Tense             `json:"tenses"`
	Structures  []Structure         `json:"structures"`
	Complements map[string][]string `json:"complements"`
}
