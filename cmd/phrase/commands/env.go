// Package commands provides the subcommands of the phrase CLI
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"phraseapp/internal/config"
	"phraseapp/internal/di"
	"phraseapp/internal/i18n"
	"phraseapp/internal/lexicon"
	"phraseapp/internal/models"
	"phraseapp/internal/observability"
	"phraseapp/internal/services"
	contextutils "phraseapp/internal/utils"
)

// CLISessionID names the single builder session the CLI works in
const CLISessionID = "cli"

// Options are the global flags shared by every subcommand
type Options struct {
	Seed          int64
	Strict        bool
	NoDecorations bool
	Translate     bool
	Target        string
	Lang          string
	JSON          bool
}

// Env carries the configuration and, once Init has run, the services
type Env struct {
	Config  *config.Config
	Logger  *observability.Logger
	Options Options

	container *di.ServiceContainer
	sentence  services.SentenceServiceInterface
	catalog   *i18n.Catalog
	lexicon   *lexicon.Lexicon
}

// NewEnv creates an environment around an already loaded configuration
func NewEnv(cfg *config.Config, logger *observability.Logger) *Env {
	return &Env{
		Config: cfg,
		Logger: logger,
		Options: Options{
			Seed:   cfg.Builder.Seed,
			Strict: cfg.Builder.StrictUnknownVerbs,
			Lang:   "fr",
		},
	}
}

// Init applies the flags to the configuration and builds the services
func (e *Env) Init(ctx context.Context) error {
	if e.container != nil {
		return nil
	}

	e.Config.Builder.Seed = e.Options.Seed
	e.Config.Builder.StrictUnknownVerbs = e.Options.Strict
	if e.Options.NoDecorations {
		e.Config.Builder.AdverbProbability = 0
		e.Config.Builder.FramingProbability = 0
		e.Config.Builder.ArticleProbability = 0
		e.Config.Builder.ObjectPronounProbability = 0
	}
	// the CLI is short lived; no background sweeping
	e.Config.Server.SessionSweepEvery = 0

	container := di.NewServiceContainer(e.Config, e.Logger)
	if err := container.Initialize(ctx); err != nil {
		return err
	}
	sentenceService, err := container.GetSentenceService()
	if err != nil {
		return err
	}
	catalog, err := container.GetCatalog()
	if err != nil {
		return err
	}
	lex, err := container.GetLexicon()
	if err != nil {
		return err
	}

	e.container = container
	e.sentence = sentenceService
	e.catalog = catalog
	e.lexicon = lex
	return nil
}

// Close stops the services
func (e *Env) Close(ctx context.Context) error {
	if e.container == nil {
		return nil
	}
	return e.container.Shutdown(ctx)
}

func (e *Env) session(ctx context.Context) *services.Session {
	return e.sentence.Session(ctx, CLISessionID)
}

func (e *Env) label(key string) string {
	return e.catalog.T(e.Options.Lang, key, nil)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return contextutils.WrapError(err, "failed to encode output")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// sentenceOutput is what build, random and example print with --json
type sentenceOutput struct {
	Sentence    models.Sentence           `json:"sentence"`
	Translation *models.TranslationResult `json:"translation,omitempty"`
}

// printSentence writes a sentence with its grammar details and, when
// --translate is set, its best-effort translation.
func (e *Env) printSentence(ctx context.Context, w io.Writer, built models.Sentence) error {
	out := sentenceOutput{Sentence: built}
	if e.Options.Translate {
		result := e.sentence.Translate(ctx, e.session(ctx), built.Text, "", e.Options.Target)
		out.Translation = &result
	}
	if e.Options.JSON {
		return writeJSON(w, out)
	}

	info := built.GrammarInfo
	fmt.Fprintln(w, built.Text)
	fields := []string{
		e.label("label_pronoun") + ": " + string(info.Pronoun),
		e.label("label_verb") + ": " + info.Verb,
		e.label("label_tense") + ": " + string(info.Tense),
		e.label("label_structure") + ": " + string(info.Structure),
		e.label("label_conjugation") + ": " + info.Conjugation,
	}
	if info.Complement != "" {
		fields = append(fields, e.label("label_complement")+": "+info.Complement)
	}
	fmt.Fprintln(w, "  "+strings.Join(fields, " | "))

	if out.Translation != nil {
		line := fmt.Sprintf("  %s: %s", out.Translation.Target, out.Translation.Translated)
		if out.Translation.Fallback {
			line += " (" + e.label("translation_unavailable") + ")"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
