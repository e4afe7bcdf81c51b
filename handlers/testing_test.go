package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"server/auth"
	"server/config"
	"server/db"
	"server/models"
	"server/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Strong enough to pass the entropy gate
const testPassword = "Gwc5C5KuavgeP5kBfhx7"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestRouter wires the full API surface against a fresh in-memory
// database and a disk bucket in a temp dir
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db.InitTest()
	models.Init()
	config.DEFAULT_BUCKET_DIR = t.TempDir()
	storage.Init()
	InitIDCodec()
	InitEmailer()

	router := gin.New()
	store := cookie.NewStore([]byte("test session key"))
	router.Use(sessions.Sessions("token", store))

	authRouter := &auth.Router{Base: router}
	router.POST("/api/register", UserRegister)
	router.POST("/api/login", UserLogin)
	router.POST("/api/password-reset", PasswordResetStart)
	router.PUT("/api/password-reset/:token", PasswordResetComplete)
	authRouter.POST("/api/logout", UserLogout)
	authRouter.GET("/api/user/status", UserGetStatus)
	authRouter.POST("/api/photos", PhotoCreate, auth.Subscriber)
	authRouter.GET("/api/photos", PhotoList)
	authRouter.POST("/api/photos/confirm", PhotoConfirm)
	authRouter.PUT("/api/photos/upload/*path", PhotoUpload, auth.Subscriber)
	authRouter.POST("/api/albums", AlbumCreate)
	authRouter.GET("/api/albums", AlbumList)
	authRouter.GET("/api/albums/:id", AlbumFetch)
	authRouter.PUT("/api/albums/:id/photos", AlbumAddPhotos)
	authRouter.DELETE("/api/albums/:id/photos", AlbumRemovePhotos)
	authRouter.POST("/api/albums/:id/publish", AlbumPublish)
	authRouter.GET("/api/published", PublishedList)
	authRouter.POST("/api/published/:hash/toggle", PublishedToggle)
	authRouter.DELETE("/api/published/:hash", PublishedDelete)
	router.GET("/api/published/:hash/photos", PublishedPhotos)
	authRouter.GET("/api/admin/dashboard", AdminDashboard, auth.Admin)
	return router
}

// apiClient replays session cookies between requests, one logged-in
// browser per instance
type apiClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newClient(t *testing.T, router *gin.Engine) *apiClient {
	return &apiClient{t: t, router: router}
}

func (a *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if cs := w.Result().Cookies(); len(cs) > 0 {
		a.cookies = cs
	}
	return w
}

// signUp registers and logs in a fresh user, returning their client
func signUp(t *testing.T, router *gin.Engine, email string) *apiClient {
	t.Helper()
	client := newClient(t, router)
	w := client.do("POST", "/api/register", gin.H{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code)
	w = client.do("POST", "/api/login", gin.H{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code)
	return client
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// uploadPhoto runs the create/upload/confirm dance and returns the photo
func uploadPhoto(t *testing.T, client *apiClient, filename string) PhotoInfo {
	t.Helper()
	w := client.do("POST", "/api/photos", gin.H{"filename": filename, "file_type": "image/jpeg"})
	require.Equal(t, http.StatusOK, w.Code)
	created := decode[PendingUpload](t, w)

	up := httptest.NewRequest("PUT", created.UploadURL, bytes.NewReader([]byte("jpegbytes")))
	for _, c := range client.cookies {
		up.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	client.router.ServeHTTP(rec, up)
	require.Equal(t, http.StatusOK, rec.Code)

	w = client.do("POST", "/api/photos/confirm", gin.H{"uuid": created.Photo.UUID})
	require.Equal(t, http.StatusOK, w.Code)
	created.Photo.Present = true
	return created.Photo
}
