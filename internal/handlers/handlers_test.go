package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"phraseapp/internal/config"
	"phraseapp/internal/i18n"
	"phraseapp/internal/lexicon"
	"phraseapp/internal/middleware"
	"phraseapp/internal/observability"
	"phraseapp/internal/sentence"
	"phraseapp/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.IsTest = true
	cfg.Server.Debug = true
	logger := observability.NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})

	lex, err := lexicon.Load()
	require.NoError(t, err)
	builder, err := sentence.NewBuilder(lex, sentence.Config{Probabilities: sentence.ZeroProbabilities()})
	require.NoError(t, err)

	translator := services.NewBestEffortTranslator(&cfg.Translation, nil, services.NewFallbackTranslator(lex), logger)
	svc := services.NewSentenceService(lex, builder, services.NewSessionStore(7, 10, logger), translator, false, logger)

	catalog, err := i18n.NewCatalog("fr")
	require.NoError(t, err)
	schemas, err := middleware.DefaultSchemaLoader()
	require.NoError(t, err)

	router := NewRouter(cfg, svc, catalog, schemas, logger)
	gin.SetMode(gin.TestMode)
	return &testAPI{t: t, router: router}
}

// do sends a request carrying the cookies of earlier responses
func (a *testAPI) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		a.setCookie(c)
	}
	return w
}

func (a *testAPI) setCookie(c *http.Cookie) {
	for i, existing := range a.cookies {
		if existing.Name == c.Name {
			a.cookies[i] = c
			return
		}
	}
	a.cookies = append(a.cookies, c)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
