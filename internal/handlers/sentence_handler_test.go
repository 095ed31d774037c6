package handlers

import (
	"net/http"
	"testing"

	"phraseapp/internal/config"
	"phraseapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"phrase-backend"}`, w.Body.String())
}

func TestVersion(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/v1/version", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Backend map[string]string      `json:"backend"`
		Lexicon map[string]interface{} `json:"lexicon"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "phrase-backend", resp.Backend["service"])
	assert.Equal(t, "dev", resp.Backend["version"])
	assert.Equal(t, "fr", resp.Lexicon["language"])
	assert.EqualValues(t, 92, resp.Lexicon["catalog_verbs"])
}

func TestGetOptions(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/v1/options", "")
	require.Equal(t, http.StatusOK, w.Code)

	var opts models.Options
	decode(t, w, &opts)
	assert.Len(t, opts.Pronouns, 9)
	assert.Equal(t, []string{"être", "avoir", "aller", "faire"}, opts.Verbs)
	assert.Len(t, opts.Tenses, 5)
	assert.Equal(t, []models.Structure{models.StructureAffirmative, models.StructureNegative, models.StructureInterrogative}, opts.Structures)
}

func TestGetVerbs(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/v1/verbs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Verbs []models.VerbEntry `json:"verbs"`
		Total int                `json:"total"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 92, resp.Total)
	assert.Len(t, resp.Verbs, 92)
}

func TestGetConjugations(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/v1/verbs/avoir/conjugations", "")
	require.Equal(t, http.StatusOK, w.Code)
	var table models.VerbConjugations
	decode(t, w, &table)
	assert.Equal(t, "avoir", table.Verb)
	assert.True(t, table.Known)
	require.Len(t, table.Tenses, 5)
	assert.Equal(t, "ai", table.Tenses[0].Forms[0].Form)

	w = api.do(http.MethodGet, "/v1/verbs/chanter/conjugations", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_VERB")
}

func TestBuildSentence(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/v1/sentences", `{"pronoun":"elle","verb":"être","tense":"présent","structure":"Affirmative","complement":"médecin"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var built models.Sentence
	decode(t, w, &built)
	assert.Equal(t, "Elle est médecin.", built.Text)
	assert.Equal(t, "est", built.GrammarInfo.Conjugation)
	assert.True(t, built.KnownVerb)

	// the first call hands out a session cookie
	require.NotEmpty(t, api.cookies)
	assert.Equal(t, config.SessionName, api.cookies[0].Name)
}

func TestBuildSentence_LooseSpelling(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/v1/sentences", `{"pronoun":"JE","verb":"Etre","tense":"present","structure":"Negative"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var built models.Sentence
	decode(t, w, &built)
	assert.Equal(t, "Je ne suis pas.", built.Text)
}

func TestBuildSentence_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"missing verb", `{"pronoun":"je","tense":"présent","structure":"Affirmative"}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"not json", `pronoun=je`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown pronoun", `{"pronoun":"they","verb":"être","tense":"présent","structure":"Affirmative"}`, http.StatusBadRequest, "UNKNOWN_PRONOUN"},
		{"unknown tense", `{"pronoun":"je","verb":"être","tense":"aoriste","structure":"Affirmative"}`, http.StatusBadRequest, "UNKNOWN_TENSE"},
		{"unknown structure", `{"pronoun":"je","verb":"être","tense":"présent","structure":"Exclamative"}`, http.StatusBadRequest, "UNKNOWN_STRUCTURE"},
		{"verb outside lexicon", `{"pronoun":"je","verb":"chanter","tense":"présent","structure":"Affirmative"}`, http.StatusBadRequest, "UNKNOWN_VERB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			w := api.do(http.MethodPost, "/v1/sentences", tt.body)
			assert.Equal(t, tt.status, w.Code)

			var resp map[string]interface{}
			decode(t, w, &resp)
			assert.Equal(t, tt.code, resp["code"])
			assert.NotContains(t, resp, "text")
		})
	}
}

func TestRandomSentence(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/v1/sentences/random", "")
	require.Equal(t, http.StatusOK, w.Code)

	var built models.Sentence
	decode(t, w, &built)
	assert.NotEmpty(t, built.Text)
	assert.Contains(t, []string{"être", "avoir", "aller", "faire"}, built.Request.Verb)
}

func TestRandomSentence_ReproducibleAcrossSessions(t *testing.T) {
	run := func() []string {
		api := newTestAPI(t)
		var out []string
		for i := 0; i < 5; i++ {
			w := api.do(http.MethodPost, "/v1/sentences/random", "")
			require.Equal(t, http.StatusOK, w.Code)
			var built models.Sentence
			decode(t, w, &built)
			out = append(out, built.Text)
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestExampleSentence(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/v1/verbs/Faire/example", "")
	require.Equal(t, http.StatusOK, w.Code)
	var built models.Sentence
	decode(t, w, &built)
	assert.Equal(t, "faire", built.Request.Verb)

	w = api.do(http.MethodGet, "/v1/verbs/chanter/example", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChallengeFlow(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/v1/challenges/solution", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RECORD_NOT_FOUND")

	w = api.do(http.MethodPost, "/v1/challenges", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var challenge models.Challenge
	decode(t, w, &challenge)
	assert.NotEmpty(t, challenge.ID)

	w = api.do(http.MethodGet, "/v1/challenges/solution", "")
	require.Equal(t, http.StatusOK, w.Code)
	var solution models.ChallengeSolution
	decode(t, w, &solution)
	assert.Equal(t, challenge.ID, solution.Challenge.ID)
	assert.Equal(t, challenge.Request.Verb, solution.Solution.Request.Verb)
	assert.NotEmpty(t, solution.Solution.Text)
}

func TestEndSession(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodDelete, "/v1/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ended":false}`, w.Body.String())

	api.do(http.MethodPost, "/v1/challenges", "")
	w = api.do(http.MethodDelete, "/v1/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ended":true}`, w.Body.String())

	// the challenge went with the session
	w = api.do(http.MethodGet, "/v1/challenges/solution", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownAPIPath(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RECORD_NOT_FOUND")
}

func TestRootListsRoutes(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listing RouteListing
	decode(t, w, &listing)
	assert.Equal(t, "phrase-backend", listing.Service)

	var paths []string
	for _, r := range listing.Routes {
		paths = append(paths, r.Method+" "+r.Path)
	}
	assert.Contains(t, paths, "POST /v1/sentences")
	assert.Contains(t, paths, "GET /v1/ui/messages")
	assert.Contains(t, paths, "DELETE /v1/session")
}
