package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/repositories"
	"github.com/cppla/yatube/routes"
	"github.com/cppla/yatube/utils"
)

// smallGIF is a valid 1x1 transparent GIF.
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	t      *testing.T
	cfg    config.AppConfig
	db     *gorm.DB
	repo   repositories.ContentRepository
	router *gin.Engine
	seq    int
}

func newApp(t *testing.T, mutate ...func(*config.AppConfig)) *testApp {
	t.Helper()
	cfg := config.AppConfig{
		DBDriver:    "sqlite",
		DatabaseURI: ":memory:",
		GinMode:     "test",
		JWTSecret:   "controller-test-secret",
		LogLevel:    "silent",
		MediaRoot:   t.TempDir(),
	}
	config.ApplyDefaults(&cfg)
	for _, m := range mutate {
		m(&cfg)
	}

	db, err := config.InitDatabase(cfg, models.All()...)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &testApp{
		t:      t,
		cfg:    cfg,
		db:     db,
		repo:   repositories.NewContentRepository(db),
		router: routes.SetupRouter(db, cfg, zap.NewNop()),
	}
}

func (a *testApp) user(username string) *models.User {
	a.t.Helper()
	hash, err := utils.HashPassword("correcthorse")
	require.NoError(a.t, err)
	u := &models.User{Username: username, PasswordHash: hash}
	require.NoError(a.t, a.repo.CreateUser(u))
	return u
}

func (a *testApp) group(slug string) *models.Group {
	a.t.Helper()
	g := &models.Group{Slug: slug, Title: "Group " + slug, Description: "about " + slug}
	require.NoError(a.t, a.repo.CreateGroup(g))
	return g
}

// post stores a post; later calls get later publication dates.
func (a *testApp) post(author *models.User, group *models.Group, text string) *models.Post {
	a.t.Helper()
	a.seq++
	p := &models.Post{Text: text, AuthorID: author.ID, PubDate: base.Add(time.Duration(a.seq) * time.Minute)}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(a.t, a.repo.CreatePost(p))
	return p
}

func (a *testApp) countPosts() int64 {
	var n int64
	require.NoError(a.t, a.db.Model(&models.Post{}).Count(&n).Error)
	return n
}

type request struct {
	method string
	target string
	form   url.Values
	as     *models.User
	json   bool
	body   io.Reader
	ctype  string
	cookie *http.Cookie
}

func (a *testApp) do(r request) *httptest.ResponseRecorder {
	a.t.Helper()
	if r.method == "" {
		r.method = http.MethodGet
	}
	body := r.body
	if body == nil && r.form != nil {
		body = strings.NewReader(r.form.Encode())
		r.ctype = "application/x-www-form-urlencoded"
	}
	req := httptest.NewRequest(r.method, r.target, body)
	if r.ctype != "" {
		req.Header.Set("Content-Type", r.ctype)
	}
	if r.json {
		req.Header.Set("Accept", "application/json")
	}
	if r.as != nil {
		token, err := utils.GenerateToken(a.cfg.JWTSecret, r.as.ID, r.as.Username, time.Hour)
		require.NoError(a.t, err)
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}
	if r.cookie != nil {
		req.AddCookie(r.cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// page fetches a listing as JSON and decodes its page.
func (a *testApp) page(target string) (*utils.Page[models.Post], map[string]json.RawMessage) {
	a.t.Helper()
	w := a.do(request{target: target, json: true})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	data := decode(a.t, w)
	var page utils.Page[models.Post]
	require.NoError(a.t, json.Unmarshal(data["page_obj"], &page))
	return &page, data
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var env struct {
		Code int                        `json:"code"`
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Data
}

func multipartBody(t *testing.T, fields map[string]string, image []byte) (io.Reader, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "pixel.gif")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func idString(id uint) string {
	return fmt.Sprint(id)
}
