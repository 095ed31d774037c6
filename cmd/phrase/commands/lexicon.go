package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"phraseapp/internal/di"
	"phraseapp/internal/lexicon"

	"github.com/spf13/cobra"
)

// LexiconCommands groups the lexicon inspection commands
func LexiconCommands(env *Env) *cobra.Command {
	lexiconCmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect and validate the lexicon",
		Annotations: map[string]string{
			"services": "none",
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a lexicon file, or the configured lexicon",
		Args:  cobra.MaximumNArgs(1),
		Annotations: map[string]string{
			"services": "none",
		},
		RunE: runValidateLexicon(env),
	}

	verbsCmd := &cobra.Command{
		Use:   "verbs",
		Short: "List the verb catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printVerbs(cmd, env.lexicon)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <verb>",
		Short: "Show the conjugation table of a verb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := env.sentence.Conjugations(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if env.Options.JSON {
				return writeJSON(cmd.OutOrStdout(), table)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\n", table.Verb)
			for _, tense := range table.Tenses {
				fmt.Fprintf(w, "\n%s\n", tense.Tense)
				for _, form := range tense.Forms {
					fmt.Fprintf(w, "  %s\t%s\n", form.Pronoun, form.Form)
				}
			}
			return w.Flush()
		},
	}
	showCmd.Flags().BoolVar(&env.Options.JSON, "json", false, "Print JSON instead of text")

	lexiconCmd.AddCommand(validateCmd, verbsCmd, showCmd)
	return lexiconCmd
}

func runValidateLexicon(env *Env) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		path := env.Config.Builder.LexiconFile
		if len(args) == 1 {
			path = args[0]
		}

		lex, err := di.LoadLexicon(path)
		if err != nil {
			return err
		}

		stats := lex.Stats()
		name := path
		if name == "" {
			name = "embedded lexicon"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (version %s, %d verbs, %d forms, %d complements, %d catalog verbs, glossaries: %s)\n",
			name, stats.Version, stats.Verbs, stats.Forms, stats.Complements, stats.CatalogVerbs, strings.Join(stats.Glossaries, ", "))
		return nil
	}
}

func printVerbs(cmd *cobra.Command, lex *lexicon.Lexicon) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, entry := range lex.VerbCatalog() {
		marker := ""
		if entry.Conjugated {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\n", entry.Name, marker)
	}
	return w.Flush()
}
