// Package i18n serves the user-facing labels of the sentence builder in
// French, Portuguese and English.
package i18n

import (
	"embed"
	"sort"

	contextutils "phraseapp/internal/utils"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

var localeFiles = []string{"active.fr.toml", "active.pt.toml", "active.en.toml"}

// MessageIDs lists every single-form label, in display order
var MessageIDs = []string{
	"app_title",
	"select_elements",
	"label_pronoun",
	"label_verb",
	"label_tense",
	"label_structure",
	"label_complement",
	"label_conjugation",
	"button_random",
	"button_example",
	"button_new_example",
	"button_translate",
	"button_solution",
	"built_sentence",
	"grammar_info",
	"example_heading",
	"challenge_heading",
	"challenge_prompt",
	"solution",
	"about_heading",
	"about_body",
	"tips_heading",
	"tip_start_simple",
	"tip_negation",
	"tip_interrogation",
	"tip_challenges",
	"tip_translations",
	"hint",
	"translation_unavailable",
}

// Catalog is a thin wrapper around go-i18n's Bundle. Safe for concurrent use.
type Catalog struct {
	bundle          *goi18n.Bundle
	defaultLanguage language.Tag
}

// NewCatalog loads the embedded catalogs with defaultLocale (e.g. "fr") as
// the last resort language.
func NewCatalog(defaultLocale string) (*Catalog, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.French
	}
	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, contextutils.WrapErrorf(err, "failed to load %s", file)
		}
	}

	return &Catalog{bundle: bundle, defaultLanguage: tag}, nil
}

// Languages returns the loaded languages, sorted
func (c *Catalog) Languages() []string {
	tags := c.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) localizer(locale string) *goi18n.Localizer {
	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, c.defaultLanguage.String())
	return goi18n.NewLocalizer(c.bundle, languages...)
}

// T renders the message identified by key for locale. Unknown locales fall
// back to the default language; unknown keys render as the key itself.
func (c *Catalog) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := c.localizer(locale).Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		return key
	}
	return msg
}

// Plural renders a counted message such as "sentences_built"
func (c *Catalog) Plural(locale, key string, count int) string {
	msg, err := c.localizer(locale).Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
	if err != nil {
		return key
	}
	return msg
}

// Messages renders every label for locale and reports which language
// actually answered. Template fields are left as written.
func (c *Catalog) Messages(locale string) (string, map[string]string) {
	loc := c.localizer(locale)
	resolved := c.defaultLanguage

	out := make(map[string]string, len(MessageIDs))
	for i, id := range MessageIDs {
		msg, tag, err := loc.LocalizeWithTag(&goi18n.LocalizeConfig{
			MessageID:    id,
			TemplateData: map[string]any{"Verb": "{{.Verb}}"},
		})
		if err != nil {
			out[id] = id
			continue
		}
		if i == 0 {
			resolved = tag
		}
		out[id] = msg
	}
	return resolved.String(), out
}
