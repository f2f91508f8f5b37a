package scan

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthscan-api/internal/core/catalog"
	"healthscan-api/internal/core/recommend"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func newTestRouter(items []catalog.Item) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := recommend.NewMemoryStore(time.Hour, time.Hour)
	svc := recommend.NewService(items, nil, store, recommend.Options{})
	h := NewHandler(svc)

	router := gin.New()
	router.POST("/scan/recommend", h.HandleRecommend)
	router.POST("/scan/advice", h.HandleAdvice)
	router.POST("/chat/recommend", h.HandleChatRecommend)
	router.DELETE("/chat/recommend/:chat_id", h.HandleChatReset)
	return router
}

func testItems() []catalog.Item {
	return []catalog.Item{
		{
			Name:     "Trà Ô Long",
			Brand:    "TeaPlus",
			Category: "tea",
			Nutrition: catalog.NutrientProfile{
				SugarsG:    f(2),
				SodiumG:    f(0.05),
				SatfatG:    f(0.5),
				EnergyKcal: f(20),
			},
		},
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleRecommendOK(t *testing.T) {
	router := newTestRouter(testItems())
	w := doJSON(t, router, http.MethodPost, "/scan/recommend", `{"profile": {}, "category": "tea"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Trà Ô Long")
	assert.Contains(t, w.Body.String(), `"health_level":"Suitable"`)
}

func TestHandleRecommendEmptyCatalogIs503(t *testing.T) {
	router := newTestRouter(nil)
	w := doJSON(t, router, http.MethodPost, "/scan/recommend", `{"profile": {}, "category": "tea"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "CATALOG_EMPTY")
}

func TestHandleRecommendBadBody(t *testing.T) {
	router := newTestRouter(testItems())
	w := doJSON(t, router, http.MethodPost, "/scan/recommend", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChatRecommendAssignsChatID(t *testing.T) {
	router := newTestRouter(testItems())
	w := doJSON(t, router, http.MethodPost, "/chat/recommend", `{"profile": {}, "category": "tea"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"chat_id"`)
	assert.Contains(t, w.Body.String(), `"has_more":false`)
}

func TestHandleChatReset(t *testing.T) {
	router := newTestRouter(testItems())
	w := doJSON(t, router, http.MethodDelete, "/chat/recommend/chat-xyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reset")
}

func TestHandleAdvice(t *testing.T) {
	router := newTestRouter(testItems())
	body := `{
		"profile": {"conditions": {"selected": ["hypertension"]}},
		"label": {
			"ingredients_raw": "nước, muối",
			"nutrition_facts": {
				"nutrients": [{"name": "Sodium", "amount": "500", "unit": "mg"}]
			}
		}
	}`
	w := doJSON(t, router, http.MethodPost, "/scan/advice", body)

	assert.Equal(t, http.StatusOK, w.Code)
	// 高血壓門檻 200/600：500mg 落在 moderate
	assert.Contains(t, w.Body.String(), `"overall":"Consider carefully"`)
}

func TestHandleAdviceRequiresLabel(t *testing.T) {
	router := newTestRouter(testItems())
	w := doJSON(t, router, http.MethodPost, "/scan/advice", `{"profile": {}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
