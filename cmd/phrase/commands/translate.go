package commands

import (
	"fmt"
	"strings"

	contextutils "phraseapp/internal/utils"

	"github.com/spf13/cobra"
)

// TranslateCommand translates free text with the best-effort translator
func TranslateCommand(env *Env) *cobra.Command {
	var source, target string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate text, falling back to the built-in glossary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "text is required", "")
			}
			for _, code := range []string{source, target} {
				if code != "" && !contextutils.IsValidLanguageCode(code) {
					return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "invalid language code", code)
				}
			}

			ctx := cmd.Context()
			result := env.sentence.Translate(ctx, env.session(ctx), text, source, target)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Translated)
			if result.Fallback {
				fmt.Fprintf(cmd.ErrOrStderr(), "(%s)\n", env.label("translation_unavailable"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source language (default: the lexicon language)")
	cmd.Flags().StringVar(&target, "target", "", "Target language (default from configuration)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}
