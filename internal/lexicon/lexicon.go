// Package lexicon holds the static French vocabulary the sentence builder
// draws from: conjugation tables, complements, decoration inventories, the
// display verb catalog and the local translation glossaries.
package lexicon

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"phraseapp/internal/models"
	contextutils "phraseapp/internal/utils"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/lexicon-fr.json data/lexicon.schema.json
var dataFS embed.FS

const (
	lexiconFile = "data/lexicon-fr.json"
	schemaFile  = "data/lexicon.schema.json"
)

// Decorations are the inventories used for random embellishment. Slices are
// shared; callers must not modify them.
type Decorations struct {
	DefiniteArticles        []string `json:"definite_articles"`
	IndefiniteArticles      []string `json:"indefinite_articles"`
	Adverbs                 []string `json:"adverbs"`
	DemonstrativeAdjectives []string `json:"demonstrative_adjectives"`
	IndefiniteAdjectives    []string `json:"indefinite_adjectives"`
	IndefinitePronouns      []string `json:"indefinite_pronouns"`
	ComplementPronouns      []string `json:"complement_pronouns"`
	PossessiveAdjectives    []string `json:"possessive_adjectives"`
	DemonstrativePronouns   []string `json:"demonstrative_pronouns"`
	PossessivePronouns      []string `json:"possessive_pronouns"`
	RelativePronouns        []string `json:"relative_pronouns"`
	Partitives              []string `json:"partitives"`
	EnYPronouns             []string `json:"en_y_pronouns"`
}

// Articles returns definite then indefinite articles as one list.
func (d Decorations) Articles() []string {
	out := make([]string, 0, len(d.DefiniteArticles)+len(d.IndefiniteArticles))
	out = append(out, d.DefiniteArticles...)
	return append(out, d.IndefiniteArticles...)
}

// Pair is one ordered glossary substitution.
type Pair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Glossary is the local dictionary for one target language. Order matters:
// substitutions are applied first to last.
type Glossary struct {
	Phrases []Pair `json:"phrases"`
	Words   []Pair `json:"words"`
}

type verbData struct {
	Infinitive   string                       `json:"infinitive"`
	Conjugations map[string]map[string]string `json:"conjugations"`
	Complements  []string                     `json:"complements"`
}

type document struct {
	Version     string              `json:"version"`
	Language    string              `json:"language"`
	Verbs       []verbData          `json:"verbs"`
	Decorations Decorations         `json:"decorations"`
	VerbCatalog []string            `json:"verb_catalog"`
	Glossaries  map[string]Glossary `json:"glossaries"`
}

// Stats summarizes a loaded lexicon.
type Stats struct {
	Version      string   `json:"version"`
	Language     string   `json:"language"`
	Verbs        int      `json:"verbs"`
	Forms        int      `json:"forms"`
	Complements  int      `json:"complements"`
	CatalogVerbs int      `json:"catalog_verbs"`
	Glossaries   []string `json:"glossaries"`
}

// Lexicon is immutable after loading and safe for concurrent use.
type Lexicon struct {
	doc     document
	byKey   map[string]*verbData
	catalog map[string]string
}

// Load parses and validates the embedded French lexicon.
func Load() (*Lexicon, error) {
	data, err := dataFS.ReadFile(lexiconFile)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to read embedded lexicon")
	}
	return LoadFromBytes(data)
}

// LoadFile parses and validates a lexicon file from disk.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, contextutils.WrapErrorf(err, "failed to read lexicon file %s", path)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes validates data against the lexicon schema, then checks the
// table invariants the schema cannot express.
func LoadFromBytes(data []byte) (*Lexicon, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeLexiconInvalid, contextutils.SeverityFatal,
			"Lexicon data is invalid", "malformed JSON", err)
	}

	lex := &Lexicon{
		doc:     doc,
		byKey:   make(map[string]*verbData, len(doc.Verbs)),
		catalog: make(map[string]string, len(doc.VerbCatalog)),
	}
	if err := lex.index(); err != nil {
		return nil, err
	}
	return lex, nil
}

func validateSchema(data []byte) error {
	schemaBytes, err := dataFS.ReadFile(schemaFile)
	if err != nil {
		return contextutils.WrapError(err, "failed to read embedded lexicon schema")
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaBytes), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeLexiconInvalid, contextutils.SeverityFatal,
			"Lexicon data is invalid", "document could not be validated", err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return contextutils.NewAppError(contextutils.ErrorCodeLexiconInvalid, contextutils.SeverityFatal,
		"Lexicon data is invalid", strings.Join(details, "; "))
}

func (l *Lexicon) index() error {
	invalid := func(format string, args ...interface{}) error {
		return contextutils.NewAppError(contextutils.ErrorCodeLexiconInvalid, contextutils.SeverityFatal,
			"Lexicon data is invalid", fmt.Sprintf(format, args...))
	}

	for i := range l.doc.Verbs {
		verb := &l.doc.Verbs[i]
		key := models.FoldKey(verb.Infinitive)
		if _, dup := l.byKey[key]; dup {
			return invalid("verb %q is defined twice", verb.Infinitive)
		}
		for _, tense := range models.AllTenses() {
			forms, ok := verb.Conjugations[string(tense)]
			if !ok {
				return invalid("verb %q has no %s table", verb.Infinitive, tense)
			}
			for _, pronoun := range models.AllPronouns() {
				if strings.TrimSpace(forms[string(pronoun)]) == "" {
					return invalid("verb %q has no %s form for %q", verb.Infinitive, tense, pronoun)
				}
			}
		}
		if len(verb.Complements) == 0 {
			return invalid("verb %q has no complements", verb.Infinitive)
		}
		l.byKey[key] = verb
	}

	for _, name := range l.doc.VerbCatalog {
		key := models.FoldKey(name)
		if _, dup := l.catalog[key]; dup {
			return invalid("catalog verb %q is listed twice", name)
		}
		l.catalog[key] = name
	}
	for _, verb := range l.doc.Verbs {
		if _, ok := l.catalog[models.FoldKey(verb.Infinitive)]; !ok {
			return invalid("conjugated verb %q is missing from the catalog", verb.Infinitive)
		}
	}
	return nil
}

// Conjugate looks up the surface form of verb for tense and pronoun.
func (l *Lexicon) Conjugate(verb string, tense models.Tense, pronoun models.Pronoun) (string, bool) {
	v, ok := l.byKey[models.FoldKey(verb)]
	if !ok {
		return "", false
	}
	form, ok := v.Conjugations[string(tense)][string(pronoun)]
	return form, ok
}

// HasVerb reports whether verb has a conjugation table.
func (l *Lexicon) HasVerb(verb string) bool {
	_, ok := l.byKey[models.FoldKey(verb)]
	return ok
}

// ResolveVerb maps user input to the verb's lexicon spelling. Verbs without a
// table resolve to the lower-cased catalog name; conjugated is false for them.
// ok is false when the verb is not part of the lexicon at all.
func (l *Lexicon) ResolveVerb(verb string) (name string, conjugated, ok bool) {
	key := models.FoldKey(verb)
	if v, found := l.byKey[key]; found {
		return v.Infinitive, true, true
	}
	if display, found := l.catalog[key]; found {
		return strings.ToLower(display), false, true
	}
	return "", false, false
}

// Verbs returns the conjugated verbs in lexicon order.
func (l *Lexicon) Verbs() []string {
	out := make([]string, len(l.doc.Verbs))
	for i, v := range l.doc.Verbs {
		out[i] = v.Infinitive
	}
	return out
}

// Complements returns a copy of the complement list of verb (nil when unknown).
func (l *Lexicon) Complements(verb string) []string {
	v, ok := l.byKey[models.FoldKey(verb)]
	if !ok {
		return nil
	}
	return append([]string(nil), v.Complements...)
}

// AllComplements maps every conjugated verb to its complements.
func (l *Lexicon) AllComplements() map[string][]string {
	out := make(map[string][]string, len(l.doc.Verbs))
	for _, v := range l.doc.Verbs {
		out[v.Infinitive] = append([]string(nil), v.Complements...)
	}
	return out
}

// Decorations returns the decoration inventories.
func (l *Lexicon) Decorations() Decorations {
	return l.doc.Decorations
}

// VerbCatalog returns the display list with its original casing.
func (l *Lexicon) VerbCatalog() []models.VerbEntry {
	out := make([]models.VerbEntry, 0, len(l.doc.VerbCatalog))
	for _, name := range l.doc.VerbCatalog {
		key := models.FoldKey(name)
		_, conjugated := l.byKey[key]
		out = append(out, models.VerbEntry{Name: name, Key: key, Conjugated: conjugated})
	}
	return out
}

// Table returns the full conjugation table of verb in display order.
func (l *Lexicon) Table(verb string) (models.VerbConjugations, bool) {
	v, ok := l.byKey[models.FoldKey(verb)]
	if !ok {
		return models.VerbConjugations{}, false
	}
	table := models.VerbConjugations{Verb: v.Infinitive, Known: true}
	for _, tense := range models.AllTenses() {
		tc := models.TenseConjugation{Tense: tense}
		for _, pronoun := range models.AllPronouns() {
			tc.Forms = append(tc.Forms, models.PronounForm{Pronoun: pronoun, Form: v.Conjugations[string(tense)][string(pronoun)]})
		}
		table.Tenses = append(table.Tenses, tc)
	}
	return table, true
}

// Glossary returns the local dictionary for a target language.
func (l *Lexicon) Glossary(target string) (Glossary, bool) {
	g, ok := l.doc.Glossaries[strings.ToLower(target)]
	return g, ok
}

// Language is the source language of the lexicon.
func (l *Lexicon) Language() string {
	return l.doc.Language
}

// Stats counts what the lexicon holds.
func (l *Lexicon) Stats() Stats {
	s := Stats{
		Version:      l.doc.Version,
		Language:     l.doc.Language,
		Verbs:        len(l.doc.Verbs),
		CatalogVerbs: len(l.doc.VerbCatalog),
	}
	for _, v := range l.doc.Verbs {
		s.Complements += len(v.Complements)
		for _, forms := range v.Conjugations {
			s.Forms += len(forms)
		}
	}
	for lang := range l.doc.Glossaries {
		s.Glossaries = append(s.Glossaries, lang)
	}
	sort.Strings(s.Glossaries)
	return s
}
