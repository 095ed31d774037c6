package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the phrase command tree around env
func NewRootCommand(env *Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phrase",
		Short: "French sentence builder",
		Long: `French sentence builder

Builds grammatically correct French sentences from a pronoun, a verb,
a tense and a sentence structure, with best-effort translations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["services"] == "none" {
				return nil
			}
			return env.Init(cmd.Context())
		},
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error showing help: %v\n", err)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Int64Var(&env.Options.Seed, "seed", env.Options.Seed, "Seed for the random source (0 seeds from the clock)")
	flags.BoolVar(&env.Options.Strict, "strict", env.Options.Strict, "Mark verbs without conjugation data as unavailable")
	flags.BoolVar(&env.Options.NoDecorations, "no-decorations", false, "Never add adverbs, framings or object pronouns")
	flags.StringVar(&env.Options.Lang, "lang", env.Options.Lang, "Language of the output labels (fr, pt, en)")

	rootCmd.AddCommand(BuildCommand(env))
	rootCmd.AddCommand(RandomCommand(env))
	rootCmd.AddCommand(ExampleCommand(env))
	rootCmd.AddCommand(ChallengeCommand(env))
	rootCmd.AddCommand(TranslateCommand(env))
	rootCmd.AddCommand(LexiconCommands(env))
	rootCmd.AddCommand(VersionCommand())

	return rootCmd
}

func addOutputFlags(cmd *cobra.Command, env *Env) {
	cmd.Flags().BoolVar(&env.Options.Translate, "translate", false, "Also print a best-effort translation")
	cmd.Flags().StringVar(&env.Options.Target, "target", "", "Translation target language (default from configuration)")
	cmd.Flags().BoolVar(&env.Options.JSON, "json", false, "Print JSON instead of text")
}
