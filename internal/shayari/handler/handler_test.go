package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suryaansh001/shayari-backend/internal/shayari/service"
	"github.com/suryaansh001/shayari-backend/pkg/middleware"
)

type stubVerifier struct{}

func (stubVerifier) Verify(raw string) (string, bool) {
	if raw == "good" {
		return "admin", true
	}
	return "", false
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.HandleMethodNotAllowed = true
	g.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})
	g.Use(middleware.Authenticate(stubVerifier{}))
	RegisterRoutes(g.Group("/shayaris"), service.NewMemoryService())
	return g
}

func do(g *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func create(t *testing.T, g *gin.Engine, body string) string {
	t.Helper()
	w := do(g, http.MethodPost, "/shayaris", body, "good")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	m := decode(t, w)
	require.Equal(t, m["_id"], m["id"])
	id, _ := m["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestShayariHandler_CRUD(t *testing.T) {
	g := newRouter()

	id := create(t, g, `{"title":"Dil","content":"hi"}`)

	w := do(g, http.MethodGet, "/shayaris/"+id, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	m := decode(t, w)
	assert.Equal(t, true, m["isPublic"])
	assert.Equal(t, []any{}, m["moodTags"])
	reactions := m["reactions"].(map[string]any)
	assert.Len(t, reactions, 5)
	assert.EqualValues(t, 0, reactions["🔥"])

	w = do(g, http.MethodPut, "/shayaris/"+id, `{"title":"Dil 2","content":"bye","isPublic":false}`, "good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dil 2", decode(t, w)["title"])

	w = do(g, http.MethodGet, "/shayaris/all", "", "good")
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)

	w = do(g, http.MethodDelete, "/shayaris/"+id, "", "good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Shayari deleted successfully", decode(t, w)["message"])

	w = do(g, http.MethodGet, "/shayaris/"+id, "", "good")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Shayari not found", decode(t, w)["message"])
}

func TestShayariHandler_AuthStatuses(t *testing.T) {
	g := newRouter()
	body := `{"title":"t","content":"c"}`

	assert.Equal(t, http.StatusUnauthorized, do(g, http.MethodPost, "/shayaris", body, "").Code)
	assert.Equal(t, http.StatusForbidden, do(g, http.MethodPost, "/shayaris", body, "bad").Code)
	assert.Equal(t, http.StatusUnauthorized, do(g, http.MethodGet, "/shayaris/all", "", "").Code)
	assert.Equal(t, http.StatusForbidden, do(g, http.MethodGet, "/shayaris/all", "", "bad").Code)
	assert.Equal(t, http.StatusUnauthorized, do(g, http.MethodPut, "/shayaris/x", body, "").Code)
	assert.Equal(t, http.StatusForbidden, do(g, http.MethodDelete, "/shayaris/x", "", "bad").Code)

	w := do(g, http.MethodPost, "/shayaris", body, "")
	assert.Equal(t, "No token provided", decode(t, w)["message"])
}

func TestShayariHandler_CreateValidation(t *testing.T) {
	g := newRouter()

	w := do(g, http.MethodPost, "/shayaris", `{"content":"c"}`, "good")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title and content required", decode(t, w)["message"])

	w = do(g, http.MethodPost, "/shayaris", "", "good")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(g, http.MethodPost, "/shayaris", `{"title":`, "good")
	require.Equal(t, http.StatusBadRequest, w.Code)

	// POST /all is an alias of POST /
	w = do(g, http.MethodPost, "/shayaris/all", `{"title":"t","content":"c"}`, "good")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, decode(t, w)["isPublic"])
}

func TestShayariHandler_PrivateVisibility(t *testing.T) {
	g := newRouter()
	id := create(t, g, `{"title":"t","content":"c","isPublic":false}`)

	assert.Equal(t, http.StatusForbidden, do(g, http.MethodGet, "/shayaris/"+id, "", "").Code)
	assert.Equal(t, http.StatusForbidden, do(g, http.MethodGet, "/shayaris/"+id, "", "bad").Code)
	assert.Equal(t, http.StatusOK, do(g, http.MethodGet, "/shayaris/"+id, "", "good").Code)

	w := do(g, http.MethodGet, "/shayaris/public", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(g, http.MethodPost, "/shayaris/"+id+"/reaction", `{"emoji":"❤️"}`, "good")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Cannot react to private shayari", decode(t, w)["message"])
}

func TestShayariHandler_Reactions(t *testing.T) {
	g := newRouter()
	id := create(t, g, `{"title":"t","content":"c"}`)

	w := do(g, http.MethodPost, "/shayaris/"+id+"/reaction", `{"emoji":"🔥"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["reactions"].(map[string]any)["🔥"])

	w = do(g, http.MethodPost, "/shayaris/reaction", `{"id":"`+id+`","emoji":"🔥"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["reactions"].(map[string]any)["🔥"])

	w = do(g, http.MethodPost, "/shayaris/"+id+"/reaction", `{"emoji":"💀"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid emoji", decode(t, w)["message"])

	w = do(g, http.MethodPost, "/shayaris/missing/reaction", `{"emoji":"🔥"}`, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(g, http.MethodPost, "/shayaris/reaction", `{"emoji":"🔥"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShayariHandler_MethodNotAllowed(t *testing.T) {
	g := newRouter()
	w := do(g, http.MethodPatch, "/shayaris/public", "", "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method not allowed", decode(t, w)["message"])
}
