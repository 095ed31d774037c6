package models

import (
	"testing"

	contextutils "phraseapp/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerations(t *testing.T) {
	assert.Len(t, AllPronouns(), 9)
	assert.Len(t, AllTenses(), 5)
	assert.Equal(t, []Structure{StructureAffirmative, StructureNegative, StructureInterrogative}, AllStructures())
}

func TestPronounInverts(t *testing.T) {
	inverting := map[Pronoun]bool{PronounNous: true, PronounVous: true, PronounIls: true, PronounElles: true}
	for _, p := range AllPronouns() {
		assert.Equal(t, inverting[p], p.Inverts(), string(p))
	}
}

func TestTenseIsCompound(t *testing.T) {
	assert.True(t, TensePasseCompose.IsCompound())
	assert.True(t, TenseFuturProche.IsCompound())
	assert.False(t, TensePresent.IsCompound())
	assert.False(t, TenseImparfait.IsCompound())
	assert.False(t, TenseFuturSimple.IsCompound())
}

func TestParsePronoun(t *testing.T) {
	p, err := ParsePronoun("  Elles ")
	require.NoError(t, err)
	assert.Equal(t, PronounElles, p)

	_, err = ParsePronoun("vosotros")
	require.Error(t, err)
	assert.Equal(t, contextutils.ErrorCodeUnknownPronoun, contextutils.GetErrorCode(err))
}

func TestParseTense(t *testing.T) {
	tests := []struct {
		in   string
		want Tense
	}{
		{"présent", TensePresent},
		{"present", TensePresent},
		{"Passé  Composé", TensePasseCompose},
		{"passe compose", TensePasseCompose},
		{"FUTUR PROCHE", TenseFuturProche},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTense(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTense("plus-que-parfait")
	assert.Equal(t, contextutils.ErrorCodeUnknownTense, contextutils.GetErrorCode(err))
}

func TestParseStructure(t *testing.T) {
	for in, want := range map[string]Structure{
		"Négative":      StructureNegative,
		"Negative":      StructureNegative,
		"affirmative":   StructureAffirmative,
		"INTERROGATIVE": StructureInterrogative,
	} {
		got, err := ParseStructure(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseStructure("Exclamative")
	assert.Equal(t, contextutils.ErrorCodeUnknownStructure, contextutils.GetErrorCode(err))
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "etre", FoldKey("Être"))
	assert.Equal(t, "etre", FoldKey(" ÊTRE "))
	assert.Equal(t, "connaitre", FoldKey("Connaître"))
	assert.Equal(t, "a la maison", FoldKey("à  la maison"))
}

func TestSentenceRequestNormalize(t *testing.T) {
	req := SentenceRequest{
		Pronoun:    "Nous",
		Verb:       " avoir ",
		Tense:      "present",
		Structure:  "Negative",
		Complement: " faim ",
	}

	got, err := req.Normalize()
	require.NoError(t, err)
	assert.Equal(t, SentenceRequest{
		Pronoun:    PronounNous,
		Verb:       "avoir",
		Tense:      TensePresent,
		Structure:  StructureNegative,
		Complement: "faim",
	}, got)
	assert.NoError(t, contextutils.ValidateStruct(got))
}

func TestSentenceRequestNormalize_RejectsUnknownFields(t *testing.T) {
	_, err := SentenceRequest{Pronoun: "je", Verb: "être", Tense: "aoriste", Structure: "Affirmative"}.Normalize()
	assert.Equal(t, contextutils.ErrorCodeUnknownTense, contextutils.GetErrorCode(err))

	_, err = SentenceRequest{Pronoun: "je", Verb: "être", Tense: "présent", Structure: ""}.Normalize()
	assert.Equal(t, contextutils.ErrorCodeUnknownStructure, contextutils.GetErrorCode(err))
}

func TestSentenceRequestValidation(t *testing.T) {
	err := contextutils.ValidateStruct(SentenceRequest{Pronoun: "je", Tense: TensePresent, Structure: StructureAffirmative})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Verb")

	err = contextutils.ValidateStruct(SentenceRequest{Pronoun: "je", Verb: "être", Tense: "aoriste", Structure: StructureAffirmative})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tense")
}
