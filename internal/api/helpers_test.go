package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/sofregit/backend/internal/middleware"
	"github.com/pageza/sofregit/backend/internal/service"
	"github.com/pageza/sofregit/backend/internal/store"
	"github.com/pageza/sofregit/backend/internal/testhelpers"
)

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	hub     *service.AuthHub
	auth    *service.AuthService
	recipes *service.RecipeService
	files   *store.MemoryObjectStore
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	db := testhelpers.SetupSQLite(t)
	hub := service.NewAuthHub(nil, logger)
	auth := service.NewAuthService(db, store.NewMemorySessionStore(time.Hour), hub, "test-secret", time.Hour, logger)
	files := store.NewMemoryObjectStore("http://api.test")
	recipes := service.NewRecipeService(store.NewGormRecipeStore(db), files, logger)
	profiles := service.NewProfileService(auth, recipes, logger)

	router := gin.New()
	router.Use(middleware.Recovery(logger), middleware.ClientSession(false))
	SetupAPI(router, Services{
		Auth:     auth,
		Recipes:  recipes,
		Profiles: profiles,
		Files:    files,
		Logger:   logger,
	})

	return &testEnv{router: router, db: db, hub: hub, auth: auth, recipes: recipes, files: files}
}

func (e *testEnv) do(t *testing.T, method, path, clientID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clientID != "" {
		req.Header.Set(middleware.ClientIDHeader, clientID)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// register signs clientID in as a new user.
func (e *testEnv) register(t *testing.T, clientID, email string) {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/v1/auth/register", clientID, map[string]string{
		"first_name":       "Anna",
		"last_name":        "Puig",
		"email":            email,
		"password":         "s3cret!",
		"confirm_password": "s3cret!",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

type imagePart struct {
	name        string
	contentType string
	data        []byte
}

func multipartRecipe(t *testing.T, fields map[string]string, image *imagePart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="image"; filename="` + image.name + `"`}
		h["Content-Type"] = []string{image.contentType}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(image.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (e *testEnv) postRecipe(t *testing.T, clientID string, fields map[string]string, image *imagePart) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartRecipe(t, fields, image)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(middleware.ClientIDHeader, clientID)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func tortillaFields() map[string]string {
	return map[string]string{
		"title":        "Tortilla",
		"ingredients":  "eggs, potato",
		"instructions": "fry",
		"type":         "main_course",
		"diet":         "vegetarian",
	}
}
