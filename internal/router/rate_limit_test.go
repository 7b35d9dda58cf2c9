package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newLoginRequestContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "203.0.113.9:40312"
	return c
}

func TestKeyByIPAndJSONFieldCombinesEmailAndIP(t *testing.T) {
	c := newLoginRequestContext(t, `{"email":" Khach@ViETour.VN ","password":"x"}`)

	key := KeyByIPAndJSONField("email")(c)
	if key != "khach@vietour.vn|203.0.113.9" {
		t.Fatalf("key want khach@vietour.vn|203.0.113.9 got %s", key)
	}

	// 后续的 ShouldBindJSON 还要再读一遍请求体
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("re-read body failed: %v", err)
	}
	if !strings.Contains(string(body), "Khach@ViETour.VN") {
		t.Fatalf("request body not restored, got %s", string(body))
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	for _, body := range []string{"", "{}", `{"email":42}`, "not-json"} {
		c := newLoginRequestContext(t, body)
		if key := KeyByIPAndJSONField("email")(c); key != "203.0.113.9" {
			t.Fatalf("body %q want plain ip key got %s", body, key)
		}
	}
}

func TestRateLimitMiddlewareSkipsWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d want 200 got %d", i, w.Code)
		}
	}
}

func TestToInt64(t *testing.T) {
	valid := map[string]struct {
		input interface{}
		want  int64
	}{
		"int64":   {input: int64(7), want: 7},
		"int":     {input: 8, want: 8},
		"uint8":   {input: uint8(9), want: 9},
		"float64": {input: 10.6, want: 10},
	}
	for name, tc := range valid {
		got, ok := toInt64(tc.input)
		if !ok || got != tc.want {
			t.Fatalf("%s want (%d,true) got (%d,%v)", name, tc.want, got, ok)
		}
	}
	if _, ok := toInt64("seven"); ok {
		t.Fatalf("string input should not convert")
	}
}
