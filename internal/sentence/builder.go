// Package sentence builds French display sentences from a grammatical
// selection using three templates (affirmative, negative, interrogative)
// and randomized decorations.
package sentence

import (
	"fmt"
	"unicode/utf8"

	"phraseapp/internal/lexicon"
	"phraseapp/internal/models"
	contextutils "phraseapp/internal/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Probabilities of each decoration draw.
type Probabilities struct {
	Adverb                 float64 `json:"adverb"`
	Framing                float64 `json:"framing"`
	ArticleVsDemonstrative float64 `json:"article_vs_demonstrative"`
	ObjectPronoun          float64 `json:"object_pronoun"`
}

// DefaultProbabilities are the classic widget's odds.
func DefaultProbabilities() Probabilities {
	return Probabilities{Adverb: 0.3, Framing: 0.4, ArticleVsDemonstrative: 0.5, ObjectPronoun: 0.2}
}

// ZeroProbabilities disable every decoration.
func ZeroProbabilities() Probabilities {
	return Probabilities{}
}

// Validate rejects probabilities outside [0, 1].
func (p Probabilities) Validate() error {
	for name, v := range map[string]float64{
		"adverb":                   p.Adverb,
		"framing":                  p.Framing,
		"article_vs_demonstrative": p.ArticleVsDemonstrative,
		"object_pronoun":           p.ObjectPronoun,
	} {
		if v < 0 || v > 1 {
			return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
				"Invalid decoration probability", fmt.Sprintf("%s=%v must be within [0,1]", name, v))
		}
	}
	return nil
}

// Vocabulary is what the builder needs from the lexicon.
type Vocabulary interface {
	Conjugator
	ResolveVerb(verb string) (name string, conjugated, ok bool)
	Verbs() []string
	Complements(verb string) []string
	Decorations() lexicon.Decorations
}

// Config tunes a Builder.
type Config struct {
	Probabilities      Probabilities
	StrictUnknownVerbs bool
}

// Builder is stateless; all randomness comes from the RandomSource passed to
// each call, so one Builder can serve every session concurrently.
type Builder struct {
	vocab  Vocabulary
	probs  Probabilities
	strict bool
}

// NewBuilder creates a builder over vocab.
func NewBuilder(vocab Vocabulary, cfg Config) (*Builder, error) {
	if vocab == nil {
		return nil, contextutils.ErrorWithContextf("sentence builder requires a vocabulary")
	}
	if err := cfg.Probabilities.Validate(); err != nil {
		return nil, err
	}
	return &Builder{vocab: vocab, probs: cfg.Probabilities, strict: cfg.StrictUnknownVerbs}, nil
}

// Probabilities returns the configured decoration odds.
func (b *Builder) Probabilities() Probabilities {
	return b.probs
}

// draws are the decoration words picked before any template runs, always in
// this order and whether or not the template ends up using them.
type draws struct {
	article             string
	demonstrative       string
	indefiniteAdjective string
	complementPronoun   string
	enY                 string
	adverb              string
}

func (b *Builder) drawDecorations(rnd RandomSource) draws {
	d := b.vocab.Decorations()
	return draws{
		article:             choose(rnd, d.Articles()),
		demonstrative:       choose(rnd, d.DemonstrativeAdjectives),
		indefiniteAdjective: choose(rnd, d.IndefiniteAdjectives),
		complementPronoun:   choose(rnd, d.ComplementPronouns),
		enY:                 choose(rnd, d.EnYPronouns),
		adverb:              choose(rnd, d.Adverbs),
	}
}

// Build renders req. Pronoun, tense and structure must be members of their
// enumerations and the verb must be known to the lexicon (conjugated or in
// the catalog); otherwise nothing is built and an AppError is returned.
func (b *Builder) Build(req models.SentenceRequest, rnd RandomSource) (models.Sentence, error) {
	req, err := req.Normalize()
	if err != nil {
		return models.Sentence{}, err
	}
	if err := contextutils.ValidateStruct(req); err != nil {
		return models.Sentence{}, err
	}

	verb, _, ok := b.vocab.ResolveVerb(req.Verb)
	if !ok {
		return models.Sentence{}, contextutils.NewAppError(contextutils.ErrorCodeUnknownVerb, contextutils.SeverityWarn,
			"Verb is not part of the lexicon", req.Verb)
	}
	req.Verb = verb

	conj := Resolve(b.vocab, verb, req.Tense, req.Pronoun, b.strict)
	text, applied := b.render(req, conj, rnd)

	return models.Sentence{
		Text:        text,
		Request:     req,
		Conjugation: conj.Form(),
		KnownVerb:   conj.Known(),
		Decorations: applied,
		GrammarInfo: models.GrammarInfo{
			Pronoun:     req.Pronoun,
			Verb:        req.Verb,
			Tense:       req.Tense,
			Structure:   req.Structure,
			Conjugation: conj.Form(),
			Complement:  req.Complement,
		},
	}, nil
}

func (b *Builder) render(req models.SentenceRequest, conj Conjugation, rnd RandomSource) (string, models.AppliedDecorations) {
	d := b.drawDecorations(rnd)
	var applied models.AppliedDecorations
	pronoun := string(req.Pronoun)
	form := conj.Form()

	switch req.Structure {
	case models.StructureNegative:
		var head, tail string
		if aux, participle, ok := conj.Split(); ok {
			head, tail = capitalize(pronoun)+" ne "+aux, " "+participle
		} else {
			head = capitalize(pronoun) + " ne " + form
		}
		negation := " pas"
		if bernoulli(rnd, b.probs.Adverb) {
			negation = " " + d.adverb + " pas"
			applied.Adverb = d.adverb
		}
		text := head + negation + tail + b.complementClause(req.Complement, d, rnd, &applied)
		return text + ".", applied

	case models.StructureInterrogative:
		var text string
		switch {
		case !req.Pronoun.Inverts():
			text = "Est-ce que " + pronoun + " " + form
		default:
			if aux, participle, ok := conj.Split(); ok {
				text = capitalize(aux) + "-" + pronoun + " " + participle
			} else {
				text = capitalize(form) + "-" + pronoun
			}
		}
		text += b.adverbClause(d, rnd, &applied)
		text += b.complementClause(req.Complement, d, rnd, &applied)
		return text + " ?", applied

	default:
		prefix := capitalize(pronoun) + " " + form
		text := prefix + b.adverbClause(d, rnd, &applied)
		text += b.complementClause(req.Complement, d, rnd, &applied)
		if bernoulli(rnd, b.probs.ObjectPronoun) {
			text = capitalize(pronoun) + " " + d.complementPronoun + " " + form + text[len(prefix):]
			applied.ObjectPronoun = d.complementPronoun
		}
		return text + ".", applied
	}
}

func (b *Builder) adverbClause(d draws, rnd RandomSource, applied *models.AppliedDecorations) string {
	if !bernoulli(rnd, b.probs.Adverb) {
		return ""
	}
	applied.Adverb = d.adverb
	return " " + d.adverb
}

// complementClause draws nothing for an empty complement.
func (b *Builder) complementClause(complement string, d draws, rnd RandomSource, applied *models.AppliedDecorations) string {
	if complement == "" {
		return ""
	}
	if !bernoulli(rnd, b.probs.Framing) {
		return " " + complement
	}
	framing := d.demonstrative
	if bernoulli(rnd, b.probs.ArticleVsDemonstrative) {
		framing = d.article
	}
	applied.Framing = framing
	return " " + framing + " " + complement
}

// Random picks pronoun, verb, tense, structure and one of the verb's
// complements uniformly, in that order.
func (b *Builder) Random(rnd RandomSource) models.SentenceRequest {
	pronouns := models.AllPronouns()
	tenses := models.AllTenses()
	structures := models.AllStructures()

	pronoun := pronouns[rnd.Intn(len(pronouns))]
	verb := choose(rnd, b.vocab.Verbs())
	tense := tenses[rnd.Intn(len(tenses))]
	structure := structures[rnd.Intn(len(structures))]
	complement := choose(rnd, b.vocab.Complements(verb))

	return models.SentenceRequest{
		Pronoun:    pronoun,
		Verb:       verb,
		Tense:      tense,
		Structure:  structure,
		Complement: complement,
	}
}

// Example builds a sentence for verb with random pronoun, tense, structure
// and complement. Verbs without complements get none.
func (b *Builder) Example(verb string, rnd RandomSource) (models.Sentence, error) {
	pronouns := models.AllPronouns()
	tenses := models.AllTenses()
	structures := models.AllStructures()

	req := models.SentenceRequest{
		Pronoun:   pronouns[rnd.Intn(len(pronouns))],
		Verb:      verb,
		Tense:     tenses[rnd.Intn(len(tenses))],
		Structure: structures[rnd.Intn(len(structures))],
	}
	complements := b.vocab.Complements(verb)
	if len(complements) == 0 {
		complements = []string{""}
	}
	req.Complement = choose(rnd, complements)

	return b.Build(req, rnd)
}

// capitalize upper-cases the first letter with French casing rules and
// leaves the rest alone.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.French).String(string(r)) + s[size:]
}
