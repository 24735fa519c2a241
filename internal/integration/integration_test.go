package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/tomato/backend/config"
	"github.com/pageza/tomato/backend/internal/logging"
	"github.com/pageza/tomato/backend/internal/metrics"
	"github.com/pageza/tomato/backend/internal/router"
	"github.com/pageza/tomato/backend/internal/service"
	"github.com/pageza/tomato/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupApp builds the full router on an in-memory database. Order routes
// are served only when rdb is not nil.
func setupApp(t *testing.T, rdb redis.UniversalClient) *gin.Engine {
	t.Helper()
	log := logging.Discard()
	db := testhelpers.SetupSQLite(t)
	uploadDir := t.TempDir()

	cfg := &config.Config{
		CORSOrigins:   []string{"http://localhost:5173"},
		ImageStorage:  config.StorageLocal,
		UploadDir:     uploadDir,
		UploadsPrefix: "/uploads",
		OrderTTL:      time.Hour,
	}

	images, err := service.NewLocalImageStore(uploadDir, cfg.UploadsPrefix, log)
	require.NoError(t, err)
	menu, err := service.NewMenuService()
	require.NoError(t, err)

	m := metrics.New()
	deps := router.Dependencies{
		Config:  cfg,
		Log:     log,
		Metrics: m,
		DB:      db,
		Recipes: service.NewRecipeService(db, images, log, m),
		Reviews: service.NewReviewService(db, log, m),
		Menu:    menu,
	}
	if rdb != nil {
		deps.Redis = rdb
		deps.Orders = service.NewOrderService(rdb, menu, cfg.OrderTTL, log, m)
	}
	return router.SetupRouter(deps)
}

func call(t *testing.T, app *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func listIDs(t *testing.T, app *gin.Engine, path string) []string {
	t.Helper()
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it["id"].(string))
	}
	return ids
}

func TestRecipeLifecycle(t *testing.T) {
	app := setupApp(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, value := range map[string]string{
		"title": "Tomato Soup", "category": "soups", "difficulty": "Easy",
		"cookTime": "30 min", "servings": "4",
	} {
		require.NoError(t, mw.WriteField(name, value))
	}
	for _, v := range []string{"tomatoes", "salt"} {
		require.NoError(t, mw.WriteField("ingredients[]", v))
	}
	for _, v := range []string{"Chop", "Simmer 20 minutes"} {
		require.NoError(t, mw.WriteField("instructions[]", v))
	}
	part, err := mw.CreateFormFile("image", "soup.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/recipes", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	id := recipe["id"].(string)
	assert.NotEmpty(t, recipe["dateAdded"])
	assert.Equal(t, 0.0, recipe["rating"])

	// The stored image is served back from the uploads prefix
	image := recipe["image"].(string)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, image, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg-bytes", w.Body.String())

	// A second recipe is listed first
	w2, second := call(t, app, http.MethodPost, "/api/recipes", map[string]interface{}{
		"title": "Pasta", "category": "italian", "difficulty": "Medium", "cookTime": "20 min",
		"servings": 2, "ingredients": []string{"pasta"}, "instructions": []string{"Boil"},
	})
	require.Equal(t, http.StatusCreated, w2.Code)
	assert.Equal(t, []string{second["id"].(string), id}, listIDs(t, app, "/api/recipes"))

	w, out := call(t, app, http.MethodDelete, "/api/recipes/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe deleted successfully", out["message"])
	assert.Equal(t, []string{second["id"].(string)}, listIDs(t, app, "/api/recipes"))

	w, _ = call(t, app, http.MethodDelete, "/api/recipes/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecipeRejectedIsNotPersisted(t *testing.T) {
	app := setupApp(t, nil)

	w, out := call(t, app, http.MethodPost, "/api/recipes", map[string]interface{}{
		"title": "No steps", "category": "soups", "difficulty": "Easy", "cookTime": "5 min",
		"servings": 1, "ingredients": []string{"water"}, "instructions": []string{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "instructions", out["field"])
	assert.Empty(t, listIDs(t, app, "/api/recipes"))
}

func TestReviewScenarios(t *testing.T) {
	app := setupApp(t, nil)

	w, review := call(t, app, http.MethodPost, "/api/reviews", map[string]interface{}{
		"name": "Alice", "rating": 5, "comment": "Great food, fast delivery", "category": "delivery",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0.0, review["likes"])
	id := review["id"].(string)

	for i := 1; i <= 3; i++ {
		w, liked := call(t, app, http.MethodPatch, "/api/reviews/"+id+"/like", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(i), liked["likes"])
	}

	w, out := call(t, app, http.MethodPost, "/api/reviews", map[string]interface{}{
		"name": "Bob", "rating": 3, "comment": "",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "comment", out["field"])

	w, _ = call(t, app, http.MethodPost, "/api/reviews", map[string]interface{}{
		"name": "Bob", "rating": 6, "comment": "six stars",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out = call(t, app, http.MethodPatch, "/api/reviews/does-not-exist/like", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Review not found", out["message"])

	assert.Equal(t, []string{id}, listIDs(t, app, "/api/reviews"))
}

func TestHealthAndMetrics(t *testing.T) {
	app := setupApp(t, nil)

	w, out := call(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", out["status"])

	w, out = call(t, app, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"database": "ok"}, out["checks"])

	call(t, app, http.MethodGet, "/api/recipes", nil)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `tomato_http_requests_total{method="GET",route="/api/recipes",status="200"} 1`)

	w, _ = call(t, app, http.MethodGet, "/api/orders/anything", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	app := setupApp(t, testhelpers.SetupTestRedis(t))

	w, order := call(t, app, http.MethodPost, "/api/orders", map[string]interface{}{
		"itemId": 2, "quantity": 3, "name": "Nimal Perera", "phone": "0771234567",
		"email": "nimal@example.com", "address": "12 Galle Road, Colombo 03",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 3600.0, order["totalPrice"])
	id := order["id"].(string)

	w, got := call(t, app, http.MethodGet, "/api/orders/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", got["status"])

	expiry := fmt.Sprintf("%d-12", time.Now().Year()+1)
	payment := map[string]interface{}{"name": "Nimal Perera", "cardNumber": "5555 5555 5555 4444", "expiry": expiry, "cvv": "321"}
	w, paid := call(t, app, http.MethodPost, "/api/orders/"+id+"/payment", payment)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "paid", paid["order"].(map[string]interface{})["status"])

	w, _ = call(t, app, http.MethodPost, "/api/orders/"+id+"/payment", payment)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = call(t, app, http.MethodGet, "/api/orders/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
