package services

import (
	"context"
	"time"

	"phraseapp/internal/lexicon"
	"phraseapp/internal/models"
	"phraseapp/internal/observability"
	"phraseapp/internal/sentence"
	contextutils "phraseapp/internal/utils"

	"github.com/google/uuid"
)

// SentenceServiceInterface is what the HTTP handlers and the CLI need
type SentenceServiceInterface interface {
	Session(ctx context.Context, id string) *Session
	EndSession(ctx context.Context, id string) bool
	Build(ctx context.Context, sess *Session, req models.SentenceRequest) (models.Sentence, error)
	Random(ctx context.Context, sess *Session) (models.Sentence, error)
	Example(ctx context.Context, sess *Session, verb string) (models.Sentence, error)
	NewChallenge(ctx context.Context, sess *Session) models.Challenge
	Solve(ctx context.Context, sess *Session) (models.ChallengeSolution, error)
	Translate(ctx context.Context, sess *Session, text, source, target string) models.TranslationResult
	Options() models.Options
	Catalog() []models.VerbEntry
	Conjugations(ctx context.Context, verb string) (models.VerbConjugations, error)
	LexiconStats() lexicon.Stats
}

// SentenceService glues the lexicon, the builder, the sessions and the
// translator together. It holds no per-user state of its own.
type SentenceService struct {
	lex        *lexicon.Lexicon
	builder    *sentence.Builder
	sessions   *SessionStore
	translator *BestEffortTranslator
	strict     bool
	logger     *observability.Logger
}

var _ SentenceServiceInterface = (*SentenceService)(nil)

// NewSentenceService creates the service
func NewSentenceService(lex *lexicon.Lexicon, builder *sentence.Builder, sessions *SessionStore, translator *BestEffortTranslator, strict bool, logger *observability.Logger) *SentenceService {
	return &SentenceService{
		lex:        lex,
		builder:    builder,
		sessions:   sessions,
		translator: translator,
		strict:     strict,
		logger:     logger,
	}
}

// Session returns the session for id, creating a fresh one if needed
func (s *SentenceService) Session(ctx context.Context, id string) *Session {
	return s.sessions.Get(ctx, id)
}

// EndSession discards the session and everything it cached
func (s *SentenceService) EndSession(ctx context.Context, id string) bool {
	_, span := observability.TraceSessionFunction(ctx, "end_session", observability.AttributeSessionID(id))
	defer span.End()
	return s.sessions.End(id)
}

// Build renders a sentence for an explicit selection
func (s *SentenceService) Build(ctx context.Context, sess *Session, req models.SentenceRequest) (result models.Sentence, err error) {
	ctx, span := observability.TraceSentenceFunction(ctx, "build",
		observability.AttributePronoun(string(req.Pronoun)),
		observability.AttributeVerb(req.Verb),
		observability.AttributeTense(string(req.Tense)),
		observability.AttributeStructure(string(req.Structure)),
		observability.AttributeSessionID(sess.ID),
	)
	defer observability.FinishSpan(span, &err)

	sess.Do(func(state *SessionState) {
		result, err = s.builder.Build(req, state.Rand)
		if err == nil {
			state.LastSentence = &result
		}
	})
	if err != nil {
		return models.Sentence{}, err
	}

	s.recordBuilt(ctx, result)
	return result, nil
}

// Random picks every element at random and renders the sentence
func (s *SentenceService) Random(ctx context.Context, sess *Session) (result models.Sentence, err error) {
	ctx, span := observability.TraceSentenceFunction(ctx, "random", observability.AttributeSessionID(sess.ID))
	defer observability.FinishSpan(span, &err)

	sess.Do(func(state *SessionState) {
		req := s.builder.Random(state.Rand)
		result, err = s.builder.Build(req, state.Rand)
		if err == nil {
			state.LastSentence = &result
		}
	})
	if err != nil {
		return models.Sentence{}, err
	}

	s.recordBuilt(ctx, result)
	return result, nil
}

// Example renders a sentence for verb with everything else random
func (s *SentenceService) Example(ctx context.Context, sess *Session, verb string) (result models.Sentence, err error) {
	ctx, span := observability.TraceSentenceFunction(ctx, "example",
		observability.AttributeVerb(verb),
		observability.AttributeSessionID(sess.ID),
	)
	defer observability.FinishSpan(span, &err)

	sess.Do(func(state *SessionState) {
		result, err = s.builder.Example(verb, state.Rand)
		if err == nil {
			state.LastExample = &result
		}
	})
	if err != nil {
		return models.Sentence{}, err
	}

	s.recordBuilt(ctx, result)
	return result, nil
}

// NewChallenge draws a random selection for the user to solve. The solution
// is not built until Solve is called.
func (s *SentenceService) NewChallenge(ctx context.Context, sess *Session) models.Challenge {
	_, span := observability.TraceSentenceFunction(ctx, "new_challenge", observability.AttributeSessionID(sess.ID))
	defer span.End()

	var challenge models.Challenge
	sess.Do(func(state *SessionState) {
		challenge = models.Challenge{
			ID:        uuid.New().String(),
			Request:   s.builder.Random(state.Rand),
			CreatedAt: time.Now().UTC(),
		}
		state.LastChallenge = &challenge
	})
	return challenge
}

// Solve builds the sentence for the session's current challenge
func (s *SentenceService) Solve(ctx context.Context, sess *Session) (result models.ChallengeSolution, err error) {
	ctx, span := observability.TraceSentenceFunction(ctx, "solve_challenge", observability.AttributeSessionID(sess.ID))
	defer observability.FinishSpan(span, &err)

	sess.Do(func(state *SessionState) {
		if state.LastChallenge == nil {
			err = contextutils.NewAppError(contextutils.ErrorCodeRecordNotFound, contextutils.SeverityInfo, "No challenge in progress", "")
			return
		}
		var built models.Sentence
		built, err = s.builder.Build(state.LastChallenge.Request, state.Rand)
		if err != nil {
			return
		}
		result = models.ChallengeSolution{Challenge: *state.LastChallenge, Solution: built}
	})
	if err != nil {
		return models.ChallengeSolution{}, err
	}

	s.recordBuilt(ctx, result.Solution)
	return result, nil
}

// Translate decorates text with a best-effort translation. sess may be nil,
// in which case nothing is cached.
func (s *SentenceService) Translate(ctx context.Context, sess *Session, text, source, target string) models.TranslationResult {
	var cache *TranslationCache
	if sess != nil {
		cache = sess.Cache()
	}
	return s.translator.Translate(ctx, text, source, target, cache)
}

// Options lists the enumerations a control surface offers
func (s *SentenceService) Options() models.Options {
	return models.Options{
		Pronouns:    models.AllPronouns(),
		Verbs:       s.lex.Verbs(),
		Tenses:      models.AllTenses(),
		Structures:  models.AllStructures(),
		Complements: s.lex.AllComplements(),
	}
}

// Catalog returns the display verb list
func (s *SentenceService) Catalog() []models.VerbEntry {
	return s.lex.VerbCatalog()
}

// Conjugations returns the full table for verb. Catalog verbs without a
// table get the forms the builder would render for them.
func (s *SentenceService) Conjugations(ctx context.Context, verb string) (result models.VerbConjugations, err error) {
	_, span := observability.TraceLexiconFunction(ctx, "conjugations", observability.AttributeVerb(verb))
	defer observability.FinishSpan(span, &err)

	name, conjugated, ok := s.lex.ResolveVerb(verb)
	if !ok {
		return models.VerbConjugations{}, contextutils.NewAppError(contextutils.ErrorCodeUnknownVerb, contextutils.SeverityInfo,
			"Verb is not part of the lexicon", verb)
	}
	if conjugated {
		table, _ := s.lex.Table(name)
		return table, nil
	}

	result = models.VerbConjugations{Verb: name, Known: false}
	for _, tense := range models.AllTenses() {
		tc := models.TenseConjugation{Tense: tense}
		for _, pronoun := range models.AllPronouns() {
			conj := sentence.Resolve(s.lex, name, tense, pronoun, s.strict)
			tc.Forms = append(tc.Forms, models.PronounForm{Pronoun: pronoun, Form: conj.Form()})
		}
		result.Tenses = append(result.Tenses, tc)
	}
	return result, nil
}

// LexiconStats summarizes the loaded lexicon
func (s *SentenceService) LexiconStats() lexicon.Stats {
	return s.lex.Stats()
}

func (s *SentenceService) recordBuilt(ctx context.Context, built models.Sentence) {
	observability.RecordSentenceBuilt(ctx, string(built.Request.Tense), string(built.Request.Structure))
	s.logger.Debug(ctx, "Built sentence", map[string]interface{}{
		"verb":       built.Request.Verb,
		"tense":      string(built.Request.Tense),
		"structure":  string(built.Request.Structure),
		"known_verb": built.KnownVerb,
	})
}
