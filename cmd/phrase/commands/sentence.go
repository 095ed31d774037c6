package commands

import (
	"fmt"

	"phraseapp/internal/models"

	"github.com/spf13/cobra"
)

// BuildCommand builds one sentence from explicit selections
func BuildCommand(env *Env) *cobra.Command {
	var req models.SentenceRequest
	var pronoun, tense, structure string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a sentence from a pronoun, verb, tense and structure",
		Example: `  phrase build --pronoun elle --verb être --tense présent --complement médecin
  phrase build --pronoun nous --verb aller --tense "futur proche" --structure negative`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Pronoun = models.Pronoun(pronoun)
			req.Tense = models.Tense(tense)
			req.Structure = models.Structure(structure)

			ctx := cmd.Context()
			built, err := env.sentence.Build(ctx, env.session(ctx), req)
			if err != nil {
				return err
			}
			return env.printSentence(ctx, cmd.OutOrStdout(), built)
		},
	}

	cmd.Flags().StringVar(&pronoun, "pronoun", "", "Subject pronoun (je, tu, il, elle, on, nous, vous, ils, elles)")
	cmd.Flags().StringVar(&req.Verb, "verb", "", "Verb infinitive")
	cmd.Flags().StringVar(&tense, "tense", string(models.TensePresent), "Tense")
	cmd.Flags().StringVar(&structure, "structure", string(models.StructureAffirmative), "Affirmative, Négative or Interrogative")
	cmd.Flags().StringVar(&req.Complement, "complement", "", "Complement appended after the verb")
	addOutputFlags(cmd, env)
	_ = cmd.MarkFlagRequired("pronoun")
	_ = cmd.MarkFlagRequired("verb")

	return cmd
}

// RandomCommand builds random sentences
func RandomCommand(env *Env) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Build random sentences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			sess := env.session(ctx)

			for i := 0; i < count; i++ {
				built, err := env.sentence.Random(ctx, sess)
				if err != nil {
					return err
				}
				if err := env.printSentence(ctx, out, built); err != nil {
					return err
				}
			}
			if !env.Options.JSON {
				fmt.Fprintln(out, env.catalog.Plural(env.Options.Lang, "sentences_built", count))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of sentences")
	addOutputFlags(cmd, env)
	return cmd
}

// ExampleCommand builds a random sentence for one verb
func ExampleCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example <verb>",
		Short: "Build an example sentence for a verb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			built, err := env.sentence.Example(ctx, env.session(ctx), args[0])
			if err != nil {
				return err
			}
			if !env.Options.JSON {
				fmt.Fprintln(cmd.OutOrStdout(), env.catalog.T(env.Options.Lang, "example_heading", map[string]any{"Verb": built.Request.Verb}))
			}
			return env.printSentence(ctx, cmd.OutOrStdout(), built)
		},
	}
	addOutputFlags(cmd, env)
	return cmd
}

// ChallengeCommand draws a challenge and prints it with its solution
func ChallengeCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Draw a random selection and show the sentence it builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			sess := env.session(ctx)

			challenge := env.sentence.NewChallenge(ctx, sess)
			solution, err := env.sentence.Solve(ctx, sess)
			if err != nil {
				return err
			}
			if env.Options.JSON {
				return writeJSON(out, solution)
			}

			req := challenge.Request
			fmt.Fprintln(out, env.label("challenge_heading"))
			fmt.Fprintln(out, env.label("challenge_prompt"))
			fmt.Fprintf(out, "  %s: %s\n", env.label("label_pronoun"), req.Pronoun)
			fmt.Fprintf(out, "  %s: %s\n", env.label("label_verb"), req.Verb)
			fmt.Fprintf(out, "  %s: %s\n", env.label("label_tense"), req.Tense)
			fmt.Fprintf(out, "  %s: %s\n", env.label("label_structure"), req.Structure)
			if req.Complement != "" {
				fmt.Fprintf(out, "  %s: %s\n", env.label("label_complement"), req.Complement)
			}
			fmt.Fprintln(out, env.label("solution"))
			return env.printSentence(ctx, out, solution.Solution)
		},
	}
	addOutputFlags(cmd, env)
	return cmd
}
