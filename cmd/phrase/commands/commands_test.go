package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"phraseapp/internal/config"
	"phraseapp/internal/models"
	"phraseapp/internal/observability"
	contextutils "phraseapp/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runPhrase(t *testing.T, args ...string) cliResult {
	t.Helper()
	ctx := context.Background()

	cfg := config.Default()
	cfg.IsTest = true
	cfg.Translation.Enabled = false
	logger := observability.NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})

	env := NewEnv(cfg, logger)
	root := NewRootCommand(env)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	require.NoError(t, env.Close(ctx))
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestBuildCommand(t *testing.T) {
	defer goleak.VerifyNone(t)

	res := runPhrase(t, "build", "--no-decorations", "--lang", "en",
		"--pronoun", "elle", "--verb", "être", "--tense", "présent", "--complement", "médecin")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Elle est médecin.", lines[0])
	assert.Contains(t, lines[1], "Conjugation: est")
	assert.Contains(t, lines[1], "Complement: médecin")
}

func TestBuildCommand_LooseSpelling(t *testing.T) {
	res := runPhrase(t, "build", "--no-decorations",
		"--pronoun", "JE", "--verb", "être", "--tense", "present", "--structure", "negative")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "Je ne suis pas.\n"), res.stdout)
}

func TestBuildCommand_Rejections(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code contextutils.ErrorCode
	}{
		{"unknown pronoun", []string{"--pronoun", "they", "--verb", "être"}, contextutils.ErrorCodeUnknownPronoun},
		{"unknown tense", []string{"--pronoun", "je", "--verb", "être", "--tense", "plus-que-parfait"}, contextutils.ErrorCodeUnknownTense},
		{"unknown verb", []string{"--pronoun", "je", "--verb", "chanter"}, contextutils.ErrorCodeUnknownVerb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runPhrase(t, append([]string{"build"}, tt.args...)...)
			require.Error(t, res.err)
			assert.Equal(t, tt.code, contextutils.GetErrorCode(res.err))
		})
	}

	t.Run("missing required flag", func(t *testing.T) {
		res := runPhrase(t, "build", "--pronoun", "je")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "verb")
	})
}

func TestBuildCommand_JSON(t *testing.T) {
	res := runPhrase(t, "build", "--no-decorations", "--json",
		"--pronoun", "nous", "--verb", "avoir", "--tense", "présent")
	require.NoError(t, res.err)

	var out sentenceOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "avons", out.Sentence.GrammarInfo.Conjugation)
	assert.Equal(t, models.PronounNous, out.Sentence.Request.Pronoun)
	assert.Nil(t, out.Translation)
}

func TestBuildCommand_Translate(t *testing.T) {
	res := runPhrase(t, "build", "--no-decorations", "--translate", "--json",
		"--pronoun", "je", "--verb", "être", "--tense", "présent")
	require.NoError(t, res.err)

	var out sentenceOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.NotNil(t, out.Translation)
	assert.Equal(t, out.Sentence.Text, out.Translation.Text)
	assert.Equal(t, "pt", out.Translation.Target)
	assert.True(t, out.Translation.Fallback)
	assert.NotEmpty(t, out.Translation.Translated)
}

func TestRandomCommand(t *testing.T) {
	defer goleak.VerifyNone(t)

	first := runPhrase(t, "random", "--seed", "42", "--count", "3", "--lang", "en")
	require.NoError(t, first.err)
	assert.True(t, strings.HasSuffix(first.stdout, "3 sentences built\n"), first.stdout)

	second := runPhrase(t, "random", "--seed", "42", "-n", "3", "--lang", "en")
	require.NoError(t, second.err)
	assert.Equal(t, first.stdout, second.stdout)

	single := runPhrase(t, "random", "--seed", "42", "--lang", "en")
	require.NoError(t, single.err)
	assert.True(t, strings.HasSuffix(single.stdout, "1 sentence built\n"), single.stdout)

	bad := runPhrase(t, "random", "--count", "0")
	assert.Error(t, bad.err)
}

func TestExampleCommand(t *testing.T) {
	res := runPhrase(t, "example", "Aller", "--json")
	require.NoError(t, res.err)

	var out sentenceOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "aller", out.Sentence.Request.Verb)
	assert.True(t, out.Sentence.KnownVerb)

	text := runPhrase(t, "example", "faire", "--lang", "en")
	require.NoError(t, text.err)
	assert.True(t, strings.HasPrefix(text.stdout, "Example sentence with faire\n"), text.stdout)

	unknown := runPhrase(t, "example", "chanter")
	assert.Equal(t, contextutils.ErrorCodeUnknownVerb, contextutils.GetErrorCode(unknown.err))
}

func TestChallengeCommand(t *testing.T) {
	res := runPhrase(t, "challenge", "--lang", "en", "--seed", "3")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "Random challenge\nBuild a sentence with\n"), res.stdout)
	assert.Contains(t, res.stdout, "\nSolution\n")

	var solution models.ChallengeSolution
	js := runPhrase(t, "challenge", "--json", "--seed", "3")
	require.NoError(t, js.err)
	require.NoError(t, json.Unmarshal([]byte(js.stdout), &solution))
	assert.Equal(t, solution.Challenge.Request.Verb, solution.Solution.Request.Verb)
	assert.NotEmpty(t, solution.Solution.Text)
}

func TestTranslateCommand(t *testing.T) {
	res := runPhrase(t, "translate", "Je suis fatigué(e).", "--lang", "en")
	require.NoError(t, res.err)
	assert.Equal(t, "Eu sou cansado(a).\n", res.stdout)
	assert.Equal(t, "(Approximate translation (local dictionary))\n", res.stderr)

	unknownTarget := runPhrase(t, "translate", "--target", "de", "Je", "vais.")
	require.NoError(t, unknownTarget.err)
	assert.Equal(t, "Je vais.\n", unknownTarget.stdout)

	bad := runPhrase(t, "translate", "--target", "b@d", "Je vais.")
	assert.Equal(t, contextutils.ErrorCodeInvalidInput, contextutils.GetErrorCode(bad.err))

	blank := runPhrase(t, "translate", "  ")
	assert.Equal(t, contextutils.ErrorCodeInvalidInput, contextutils.GetErrorCode(blank.err))
}

func TestLexiconCommands(t *testing.T) {
	t.Run("validate embedded", func(t *testing.T) {
		res := runPhrase(t, "lexicon", "validate")
		require.NoError(t, res.err)
		assert.True(t, strings.HasPrefix(res.stdout, "embedded lexicon: ok"), res.stdout)
	})

	t.Run("validate missing file", func(t *testing.T) {
		res := runPhrase(t, "lexicon", "validate", "/nonexistent/lexicon.json")
		assert.Error(t, res.err)
	})

	t.Run("verbs", func(t *testing.T) {
		res := runPhrase(t, "lexicon", "verbs")
		require.NoError(t, res.err)
		lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
		assert.Len(t, lines, 92)
		assert.Contains(t, res.stdout, "*")
	})

	t.Run("show", func(t *testing.T) {
		res := runPhrase(t, "lexicon", "show", "avoir")
		require.NoError(t, res.err)
		assert.True(t, strings.HasPrefix(res.stdout, "avoir\n"), res.stdout)
		assert.Contains(t, res.stdout, "ai")
		assert.Contains(t, res.stdout, "avons")
	})

	t.Run("show unknown verb", func(t *testing.T) {
		res := runPhrase(t, "lexicon", "show", "chanter")
		assert.Equal(t, contextutils.ErrorCodeUnknownVerb, contextutils.GetErrorCode(res.err))
	})
}

func TestVersionCommand(t *testing.T) {
	res := runPhrase(t, "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "phrase dev"), res.stdout)

	js := runPhrase(t, "version", "--json")
	require.NoError(t, js.err)
	assert.Contains(t, js.stdout, `"service": "phrase"`)
}
