package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRateLimitedRouter(requests int, window time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(RateLimitMiddleware(&config.APIConfig{
		RateLimitRequests: requests,
		RateLimitWindow:   window,
	}))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func doRequest(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":12345"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitAllowsWithinBudget(t *testing.T) {
	r := newRateLimitedRouter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if w := doRequest(r, "10.0.0.1"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	r := newRateLimitedRouter(2, time.Minute)

	doRequest(r, "10.0.0.1")
	doRequest(r, "10.0.0.1")
	w := doRequest(r, "10.0.0.1")

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	errObj, ok := resp["error"].(map[string]interface{})
	if !ok || errObj["code"] != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("unexpected error payload: %s", w.Body)
	}
}

func TestRateLimitIsPerClient(t *testing.T) {
	r := newRateLimitedRouter(1, time.Minute)

	if w := doRequest(r, "10.0.0.1"); w.Code != http.StatusOK {
		t.Fatalf("first client: status = %d, want 200", w.Code)
	}
	if w := doRequest(r, "10.0.0.1"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("first client second request: status = %d, want 429", w.Code)
	}
	if w := doRequest(r, "10.0.0.2"); w.Code != http.StatusOK {
		t.Fatalf("second client: status = %d, want 200", w.Code)
	}
}
