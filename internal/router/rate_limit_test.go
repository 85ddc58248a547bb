package router

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func limiterContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.9:51234"
	c.Request = req
	return c
}

func TestKeyByIP(t *testing.T) {
	c := limiterContext(t, "")
	if key := KeyByIP(c); key != "203.0.113.9" {
		t.Fatalf("unexpected key: %q", key)
	}
}

func TestKeyByIPAndJSONField(t *testing.T) {
	keyFunc := KeyByIPAndJSONField("email")

	c := limiterContext(t, `{"email":"  Admin@Aangan.IN  "}`)
	if key := keyFunc(c); key != "admin@aangan.in|203.0.113.9" {
		t.Fatalf("unexpected key: %q", key)
	}

	// The body must still be readable by the handler afterwards.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	if !bytes.Contains(body, []byte("Admin@Aangan.IN")) {
		t.Fatalf("body not restored: %s", body)
	}

	// Missing or unreadable field falls back to the IP alone.
	c = limiterContext(t, `not-json`)
	if key := keyFunc(c); key != "203.0.113.9" {
		t.Fatalf("unexpected fallback key: %q", key)
	}
}

func TestRateLimitMiddlewarePassThroughWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected pass-through 200, got %d", i, w.Code)
		}
	}
}
