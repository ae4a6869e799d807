package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/leadman/internal/content"
	"github.com/hitoshi/leadman/internal/email"
	"github.com/hitoshi/leadman/internal/lead"
	"github.com/hitoshi/leadman/internal/metrics"
	"github.com/hitoshi/leadman/internal/ratelimit"
	"github.com/hitoshi/leadman/internal/repository"
)

// newTestRouter は縮退実装（ログ保存・ログ通知・メモリレート制限）で
// フルにワイヤリングしたルーターを構築する。
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := testLogger()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	limiter := ratelimit.NewMemory(ratelimit.DefaultMemoryConfig())
	t.Cleanup(limiter.Stop)

	svc := lead.NewService(
		repository.NewLogLeadRepo(logger),
		repository.NewLogSubscriberRepo(logger),
		limiter,
		email.NewLogNotifier(logger),
		collector,
		logger,
		lead.Config{SiteName: "YourAgency", NotifyAddress: "ops@youragency.com"},
	)

	return NewRouter(&RouterDeps{
		Logger:            logger,
		Metrics:           collector,
		Gatherer:          reg,
		CORSAllowedOrigin: "http://localhost:3000",
		SubmissionService: svc,
		ContentSource:     content.DisabledSource{},
		SiteURL:           "",
		HealthPinger:      nil,
	})
}

func doRequest(t *testing.T, router http.Handler, method, path, body, forwardedFor string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_ContactSubmission(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/contact", validContactJSON, "203.0.113.1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("body = %v", body)
	}
}

func TestRouter_ContactValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/contact",
		`{"name":"J","email":"bad","service":"unknown","message":"hi"}`, "203.0.113.1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	details, ok := body["details"].(map[string]any)
	if !ok {
		t.Fatalf("details = %v", body["details"])
	}
	for _, field := range []string{"name", "email", "service", "message"} {
		if _, ok := details[field]; !ok {
			t.Errorf("details missing %q", field)
		}
	}
}

func TestRouter_ContactHoneypotLooksLikeSuccess(t *testing.T) {
	router := newTestRouter(t)

	payload := `{
		"name": "Bot Bot",
		"email": "bot@example.com",
		"service": "seo",
		"message": "buy cheap backlinks now please",
		"honeypot": "http://spam.example.com"
	}`
	w := doRequest(t, router, http.MethodPost, "/api/contact", payload, "203.0.113.9")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("body = %v, bot must receive the same success shape", body)
	}
}

func TestRouter_RateLimitSharedAcrossForms(t *testing.T) {
	router := newTestRouter(t)

	// 同一識別子で3回までは許可
	for i := 0; i < 2; i++ {
		w := doRequest(t, router, http.MethodPost, "/api/contact", validContactJSON, "198.51.100.5")
		if w.Code != http.StatusOK {
			t.Fatalf("request #%d: status = %d, want 200", i+1, w.Code)
		}
	}
	w := doRequest(t, router, http.MethodPost, "/api/newsletter",
		`{"email":"subscriber@example.com"}`, "198.51.100.5")
	if w.Code != http.StatusOK {
		t.Fatalf("request #3: status = %d, want 200", w.Code)
	}

	// 4回目はフォーム種別に関わらず429
	w = doRequest(t, router, http.MethodPost, "/api/newsletter",
		`{"email":"subscriber@example.com"}`, "198.51.100.5")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("request #4: status = %d, want 429", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Too many requests. Please try again later." {
		t.Errorf("error = %v", body["error"])
	}

	// 別識別子は影響を受けない
	w = doRequest(t, router, http.MethodPost, "/api/contact", validContactJSON, "198.51.100.6")
	if w.Code != http.StatusOK {
		t.Errorf("different identifier: status = %d, want 200", w.Code)
	}
}

func TestRouter_NewsletterValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/newsletter", `{"email":"bad"}`, "203.0.113.1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Please enter a valid email address." {
		t.Errorf("error = %v", body["error"])
	}
}

func TestRouter_ContentAndCatalogRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/posts", http.StatusOK},
		{"/api/posts/slugs", http.StatusOK},
		{"/api/posts/anything", http.StatusNotFound}, // CMS未構成なので未発見
		{"/api/site", http.StatusOK},
		{"/api/services", http.StatusOK},
		{"/api/services/seo", http.StatusOK},
		{"/api/services/unknown", http.StatusNotFound},
		{"/api/case-studies", http.StatusOK},
		{"/api/case-studies/local-business-seo", http.StatusOK},
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
	}
	for _, tt := range tests {
		w := doRequest(t, router, http.MethodGet, tt.path, "", "")
		if w.Code != tt.wantStatus {
			t.Errorf("GET %s: status = %d, want %d", tt.path, w.Code, tt.wantStatus)
		}
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/contact", "", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/contact: status = %d, want 405", w.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	// POST専用ルートへのOPTIONSプリフライトはルーティングに到達する前に
	// CORSミドルウェアが204で応答する（405にならないこと）
	for _, path := range []string{"/api/contact", "/api/newsletter"} {
		w := doRequest(t, router, http.MethodOptions, path, "", "")
		if w.Code != http.StatusNoContent {
			t.Errorf("OPTIONS %s: status = %d, want 204", path, w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("OPTIONS %s: Access-Control-Allow-Origin = %q", path, got)
		}
	}
}

func TestRouter_CORSHeadersOnActualRequest(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/contact", validContactJSON, "203.0.113.2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_SecurityHeadersOnAllRoutes(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/site", "", "")
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}

func TestRouter_MetricsReflectSubmissions(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/api/contact", validContactJSON, "203.0.113.7")

	w := doRequest(t, router, http.MethodGet, "/metrics", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics: status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "leadman_submissions_accepted_total") {
		t.Error("metrics output missing leadman_submissions_accepted_total")
	}
}
