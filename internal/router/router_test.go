package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aangan-site/aangan-api/internal/config"
	"github.com/aangan-site/aangan-api/internal/models"
	"github.com/aangan-site/aangan-api/internal/provider"
	"github.com/aangan-site/aangan-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newAPIFixture(t *testing.T) (*gin.Engine, *provider.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.Blog{},
		&models.Admin{},
		&models.Testimonial{},
		&models.Faq{},
		&models.ContactMessage{},
		&models.WaitlistEntry{},
		&models.Setting{},
	)
	if err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.JWT.SecretKey = "api-test-secret"
	cfg.JWT.ExpireMinutes = 15
	cfg.Blog.PageSize = 9
	cfg.Upload.MaxSize = 10 << 20

	c := provider.NewContainer(cfg)
	t.Cleanup(c.Close)
	return SetupRouter(cfg, c), c
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response failed: %v (%s)", err, w.Body.String())
	}
	return envelope
}

func TestHealthz(t *testing.T) {
	r, _ := newAPIFixture(t)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPublicBlogListAndSlugLookup(t *testing.T) {
	r, c := newAPIFixture(t)

	if _, err := c.BlogService.Create(service.CreateBlogInput{
		Title:        "Winter Thali",
		HTML:         "<p>Warm plates.</p>",
		ThumbnailURL: "/t.jpg",
	}); err != nil {
		t.Fatalf("seed blog failed: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/public/blogs", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	envelope := decodeEnvelope(t, w)
	if envelope["status_code"].(float64) != 0 {
		t.Fatalf("unexpected envelope: %v", envelope)
	}
	if _, ok := envelope["pagination"]; !ok {
		t.Fatalf("expected pagination in listing response")
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/public/blogs/slug/winter-thali", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("slug lookup: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/public/blogs/slug/no-such-post", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing slug: expected 404, got %d", w.Code)
	}
}

func TestPublicLikeEndpoint(t *testing.T) {
	r, c := newAPIFixture(t)

	blog, err := c.BlogService.Create(service.CreateBlogInput{
		Title:        "Likeable Post",
		HTML:         "<p>x</p>",
		ThumbnailURL: "/t.jpg",
	})
	if err != nil {
		t.Fatalf("seed blog failed: %v", err)
	}

	path := fmt.Sprintf("/api/v1/public/blogs/%d/like", blog.ID)
	w := doJSON(t, r, http.MethodPost, path, map[string]string{"deviceId": "device-1"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("like: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	if data["likes"].(float64) != 1 || data["liked"].(bool) != true {
		t.Fatalf("unexpected like payload: %v", data)
	}

	// Missing device id is rejected.
	w = doJSON(t, r, http.MethodPost, path, map[string]string{}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without device id, got %d", w.Code)
	}
}

func TestPublicWaitlistValidation(t *testing.T) {
	r, _ := newAPIFixture(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/public/waitlist",
		map[string]string{"email": "not-an-email"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/public/waitlist",
		map[string]string{"email": "early@example.com"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminLoginAndGuardedRoutes(t *testing.T) {
	r, c := newAPIFixture(t)

	hash, err := c.AuthService.HashPassword("letmein")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	admin := &models.Admin{Email: "admin@aangan.in", PasswordHash: hash}
	if err := c.AdminRepo.Create(admin); err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/login",
		map[string]string{"email": "admin@aangan.in", "password": "wrong"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/login",
		map[string]string{"email": "admin@aangan.in", "password": "letmein"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("expected a token in login response: %v", data)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/me", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated me: expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/me", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/blogs", map[string]interface{}{
		"title":        "Admin Created",
		"html":         "<p>x</p>",
		"thumbnailUrl": "/t.jpg",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("create blog: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate title collides on slug.
	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/blogs", map[string]interface{}{
		"title":        "Admin Created",
		"html":         "<p>x</p>",
		"thumbnailUrl": "/t.jpg",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate slug: expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
