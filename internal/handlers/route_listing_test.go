package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouteListingHandler(t *testing.T) {
	handler := NewRouteListingHandler("Test Service")
	assert.NotNil(t, handler)
	assert.Equal(t, "Test Service", handler.serviceName)
	assert.NotNil(t, handler.routes)
}

func TestRouteListingHandler_CollectRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/health", func(_ *gin.Context) {})
	v1 := router.Group("/v1")
	{
		v1.GET("/verbs", func(_ *gin.Context) {})
		v1.GET("/verbs/:verb/example", func(_ *gin.Context) {})
		v1.POST("/sentences", func(_ *gin.Context) {})
		v1.DELETE("/session", func(_ *gin.Context) {})
	}
	router.GET("/debug/pprof", func(_ *gin.Context) {})

	handler := NewRouteListingHandler("Test Service")
	handler.CollectRoutes(router)

	require.Len(t, handler.routes, 5)

	var keys []string
	for _, route := range handler.routes {
		keys = append(keys, route.Method+" "+route.Path)
	}
	assert.Equal(t, []string{
		"GET /health",
		"POST /v1/sentences",
		"DELETE /v1/session",
		"GET /v1/verbs",
		"GET /v1/verbs/:verb/example",
	}, keys)
}

func TestRouteListingHandler_SortsMethodsForSamePath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/test", func(_ *gin.Context) {})
	router.GET("/test", func(_ *gin.Context) {})
	router.DELETE("/test", func(_ *gin.Context) {})

	handler := NewRouteListingHandler("Methods")
	handler.CollectRoutes(router)

	require.Len(t, handler.routes, 3)
	assert.Equal(t, "DELETE", handler.routes[0].Method)
	assert.Equal(t, "GET", handler.routes[1].Method)
	assert.Equal(t, "POST", handler.routes[2].Method)
}

func TestRouteListingHandler_EmptyRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRouteListingHandler("Empty Service")
	handler.CollectRoutes(gin.New())

	assert.Empty(t, handler.routes)
	assert.Equal(t, 0, handler.Listing().Total)
}

func TestRouteListingHandler_GetRouteListingJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/options", func(_ *gin.Context) {})
	router.POST("/v1/translate", func(_ *gin.Context) {})

	handler := NewRouteListingHandler("phrase-backend")
	handler.CollectRoutes(router)
	router.GET("/", handler.GetRouteListingJSON)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))

	var listing RouteListing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, "phrase-backend", listing.Service)
	assert.Equal(t, 2, listing.Total)
	assert.Equal(t, "/v1/options", listing.Routes[0].Path)
	assert.Equal(t, "POST", listing.Routes[1].Method)
}
