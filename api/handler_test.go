package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anasir-dev/portfolio-backend/auth"
	"github.com/anasir-dev/portfolio-backend/database"
	"github.com/anasir-dev/portfolio-backend/models"
	"github.com/anasir-dev/portfolio-backend/services"
)

const (
	testSecret   = "test-secret"
	testUsername = "admin"
	testPassword = "s3cret!"
)

type testApp struct {
	server *httptest.Server
	db     database.Database
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := database.New(database.NewMemoryStore())
	authService := auth.NewService(db.AdminRepo(), auth.NewTokenService(testSecret))
	require.NoError(t, authService.Seed(context.Background(), testUsername, testPassword))

	disk, err := services.NewDiskAssetStore(t.TempDir())
	require.NoError(t, err)

	router := newRouter(Deps{
		Database: db,
		Auth:     authService,
		Assets:   disk,
		Disk:     disk,
	}, withConfig(map[string]string{}))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{server: server, db: db}
}

func (a *testApp) login(t *testing.T) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": testUsername, "password": testPassword})
	resp, err := http.Post(a.server.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload["token"])
	return payload["token"]
}

type filePart struct {
	fieldName   string
	filename    string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, file *filePart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.fieldName, file.filename))
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func (a *testApp) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, a.server.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	t.Run("valid credentials", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"username": testUsername, "password": testPassword})
		resp, err := http.Post(app.server.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		payload := decodeJSON[map[string]string](t, resp)
		assert.Equal(t, testUsername, payload["username"])
		assert.NotEmpty(t, payload["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"username": testUsername, "password": "nope"})
		resp, err := http.Post(app.server.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown username", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"username": "nobody", "password": testPassword})
		resp, err := http.Post(app.server.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(app.server.URL+"/api/admin/login", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestProtectedRouteAuthMatrix(t *testing.T) {
	app := newTestApp(t)
	body, contentType := multipartBody(t, map[string]string{"title": "t", "content": "c"}, nil)

	t.Run("missing token is 401", func(t *testing.T) {
		resp := app.do(t, http.MethodPost, "/api/blogs", "", bytes.NewReader(body.Bytes()), contentType)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbled token is 403", func(t *testing.T) {
		resp := app.do(t, http.MethodPost, "/api/blogs", "not.a.token", bytes.NewReader(body.Bytes()), contentType)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("expired token is 403", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   testUsername,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		resp := app.do(t, http.MethodPost, "/api/blogs", expired, bytes.NewReader(body.Bytes()), contentType)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token := app.login(t)
		resp := app.do(t, http.MethodPost, "/api/blogs", token, bytes.NewReader(body.Bytes()), contentType)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestBlogCRUD(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	// Create
	body, contentType := multipartBody(t, map[string]string{
		"title":   "Hi",
		"content": strings.Repeat("a", 200),
	}, nil)
	resp := app.do(t, http.MethodPost, "/api/blogs", token, body, contentType)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeJSON[models.BlogPost](t, resp)

	assert.Equal(t, "Hi", created.Title)
	assert.Equal(t, "Admin", created.Author)
	assert.Equal(t, strings.Repeat("a", 150)+"...", created.Excerpt)

	// Read back
	resp = app.do(t, http.MethodGet, "/api/blogs/"+created.ID.String(), "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeJSON[models.BlogPost](t, resp)
	assert.Equal(t, created.ID, fetched.ID)

	// List
	resp = app.do(t, http.MethodGet, "/api/blogs", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeJSON[[]models.BlogPost](t, resp)
	require.Len(t, list, 1)

	// Partial update: only title changes
	body, contentType = multipartBody(t, map[string]string{"title": "Updated"}, nil)
	resp = app.do(t, http.MethodPut, "/api/blogs/"+created.ID.String(), token, body, contentType)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeJSON[models.BlogPost](t, resp)
	assert.Equal(t, "Updated", updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, created.Excerpt, updated.Excerpt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// Delete
	resp = app.do(t, http.MethodDelete, "/api/blogs/"+created.ID.String(), token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	message := decodeJSON[map[string]string](t, resp)
	assert.Equal(t, "blog deleted successfully", message["message"])

	resp = app.do(t, http.MethodGet, "/api/blogs/"+created.ID.String(), "", nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProjectCRUD(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	body, contentType := multipartBody(t, map[string]string{
		"title":        "Site",
		"description":  "a personal site",
		"technologies": "Go, Rust , C++",
		"githubLink":   "https://github.com/x/site",
	}, nil)
	resp := app.do(t, http.MethodPost, "/api/projects", token, body, contentType)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeJSON[models.Project](t, resp)

	assert.Equal(t, []string{"Go", "Rust", "C++"}, created.Technologies)
	assert.Equal(t, "", created.LiveLink)

	// Explicit empty githubLink clears it; omitted liveLink stays.
	body, contentType = multipartBody(t, map[string]string{"githubLink": ""}, nil)
	resp = app.do(t, http.MethodPut, "/api/projects/"+created.ID.String(), token, body, contentType)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeJSON[models.Project](t, resp)
	assert.Equal(t, "", updated.GithubLink)
	assert.Equal(t, created.Technologies, updated.Technologies)

	resp = app.do(t, http.MethodDelete, "/api/projects/"+created.ID.String(), token, nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateBlogValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	body, contentType := multipartBody(t, map[string]string{"content": "no title"}, nil)
	resp := app.do(t, http.MethodPost, "/api/blogs", token, body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOversizedUploadIsRejected(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	body, contentType := multipartBody(t, map[string]string{"title": "Hi", "content": "c"}, &filePart{
		fieldName:   "image",
		filename:    "big.png",
		contentType: "image/png",
		data:        make([]byte, 6<<20),
	})
	resp := app.do(t, http.MethodPost, "/api/blogs", token, body, contentType)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	// No orphan record was created.
	listResp := app.do(t, http.MethodGet, "/api/blogs", "", nil, "")
	list := decodeJSON[[]models.BlogPost](t, listResp)
	assert.Empty(t, list)
}

func TestUploadsAreServed(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	imageData := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	body, contentType := multipartBody(t, map[string]string{"title": "Hi", "content": "c"}, &filePart{
		fieldName:   "image",
		filename:    "pic.png",
		contentType: "image/png",
		data:        imageData,
	})
	resp := app.do(t, http.MethodPost, "/api/blogs", token, body, contentType)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeJSON[models.BlogPost](t, resp)
	require.NotNil(t, created.Image)

	fileResp := app.do(t, http.MethodGet, *created.Image, "", nil, "")
	defer fileResp.Body.Close()
	require.Equal(t, http.StatusOK, fileResp.StatusCode)
	served, err := io.ReadAll(fileResp.Body)
	require.NoError(t, err)
	assert.Equal(t, imageData, served)

	missingResp := app.do(t, http.MethodGet, "/uploads/missing.png", "", nil, "")
	defer missingResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, missingResp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, err := http.Get(app.server.URL + "/api/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload := decodeJSON[map[string]string](t, resp)
	assert.Equal(t, "OK", payload["status"])
	assert.Equal(t, "memory", payload["storage"])

	_, err = time.Parse(time.RFC3339, payload["timestamp"])
	assert.NoError(t, err)
}

func TestUnknownIDFormatsAreNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, err := http.Get(app.server.URL + "/api/blogs/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(app.server.URL + "/api/projects/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
