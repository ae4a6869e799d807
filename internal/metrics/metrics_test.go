package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue はレジストリから指定カウンタの値を取り出すテストヘルパー。
// ラベル付きカウンタは最初のラベル値が一致するものを返す。
func counterValue(t *testing.T, reg *prometheus.Registry, name, label string) float64 {
	t.Helper()
	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label == "" || (len(m.GetLabel()) > 0 && m.GetLabel()[0].GetValue() == label) {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s{%s} not found", name, label)
	return 0
}

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestRecordSubmissionAccepted_IncrementsCounter は受理カウンタがフォーム別に増加することを検証する。
func TestRecordSubmissionAccepted_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSubmissionAccepted(FormContact)
	c.RecordSubmissionAccepted(FormContact)
	c.RecordSubmissionAccepted(FormNewsletter)

	if got := counterValue(t, reg, "leadman_submissions_accepted_total", FormContact); got != 2 {
		t.Errorf("submissions_accepted_total{form=contact} = %v, want 2", got)
	}
	if got := counterValue(t, reg, "leadman_submissions_accepted_total", FormNewsletter); got != 1 {
		t.Errorf("submissions_accepted_total{form=newsletter} = %v, want 1", got)
	}
}

// TestRecordSpamDropped_IncrementsCounter はスパム破棄カウンタが増加することを検証する。
func TestRecordSpamDropped_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSpamDropped(FormContact)
	c.RecordSpamDropped(FormNewsletter)
	c.RecordSpamDropped(FormNewsletter)

	if got := counterValue(t, reg, "leadman_spam_dropped_total", FormNewsletter); got != 2 {
		t.Errorf("spam_dropped_total{form=newsletter} = %v, want 2", got)
	}
}

// TestRecordRateLimitDenied_IncrementsCounter はレート制限拒否カウンタが増加することを検証する。
func TestRecordRateLimitDenied_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRateLimitDenied(FormContact)

	if got := counterValue(t, reg, "leadman_rate_limit_denied_total", FormContact); got != 1 {
		t.Errorf("rate_limit_denied_total{form=contact} = %v, want 1", got)
	}
}

// TestRecordBestEffortFailures_IncrementCounters は永続化・メール失敗のカウンタが増加することを検証する。
func TestRecordBestEffortFailures_IncrementCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordStoreFailure(FormContact)
	c.RecordEmailFailure(EmailLeadAlert)
	c.RecordEmailFailure(EmailLeadAlert)
	c.RecordEmailSent(EmailLeadAck)
	c.RecordLimiterError(FormNewsletter)

	if got := counterValue(t, reg, "leadman_store_failures_total", FormContact); got != 1 {
		t.Errorf("store_failures_total{form=contact} = %v, want 1", got)
	}
	if got := counterValue(t, reg, "leadman_email_failures_total", EmailLeadAlert); got != 2 {
		t.Errorf("email_failures_total{kind=lead_alert} = %v, want 2", got)
	}
	if got := counterValue(t, reg, "leadman_emails_sent_total", EmailLeadAck); got != 1 {
		t.Errorf("emails_sent_total{kind=lead_ack} = %v, want 1", got)
	}
	if got := counterValue(t, reg, "leadman_limiter_errors_total", FormNewsletter); got != 1 {
		t.Errorf("limiter_errors_total{form=newsletter} = %v, want 1", got)
	}
}

// TestRecordHTTPStatus_IncrementsCounterWithLabel はHTTPステータスカウンタがラベル付きで増加することを検証する。
func TestRecordHTTPStatus_IncrementsCounterWithLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(429)

	if got := counterValue(t, reg, "leadman_http_status_total", "200"); got != 2 {
		t.Errorf("http_status_total{status_code=200} = %v, want 2", got)
	}
	if got := counterValue(t, reg, "leadman_http_status_total", "429"); got != 1 {
		t.Errorf("http_status_total{status_code=429} = %v, want 1", got)
	}
}

// TestRecordSubmissionLatency_ObservesHistogram は処理時間のヒストグラムに値が記録されることを検証する。
func TestRecordSubmissionLatency_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSubmissionLatency(100 * time.Millisecond)
	c.RecordSubmissionLatency(2 * time.Second)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "leadman_submission_latency_seconds" {
			found = true
			h := mf.GetMetric()[0].GetHistogram()
			if h.GetSampleCount() != 2 {
				t.Errorf("sample_count = %d, want 2", h.GetSampleCount())
			}
			// 合計は0.1 + 2.0 = 2.1秒
			if h.GetSampleSum() < 2.0 || h.GetSampleSum() > 2.2 {
				t.Errorf("sample_sum = %v, want ~2.1", h.GetSampleSum())
			}
		}
	}
	if !found {
		t.Error("leadman_submission_latency_seconds metric not found")
	}
}

// TestMetricsHandler_ReturnsPrometheusFormat は/metricsエンドポイントがPrometheus形式で返すことを検証する。
func TestMetricsHandler_ReturnsPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	// いくつかのメトリクスを記録
	c.RecordSubmissionAccepted(FormContact)
	c.RecordSpamDropped(FormNewsletter)
	c.RecordHTTPStatus(200)
	c.RecordSubmissionLatency(500 * time.Millisecond)
	c.RecordEmailSent(EmailNewsletterWelcome)

	handler := Handler(reg)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	// Prometheus形式のメトリクスが含まれていることを確認
	expectedMetrics := []string{
		"leadman_submissions_accepted_total",
		"leadman_spam_dropped_total",
		"leadman_http_status_total",
		"leadman_submission_latency_seconds",
		"leadman_emails_sent_total",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(bodyStr, metric) {
			t.Errorf("response body does not contain %q", metric)
		}
	}
}

// TestCollector_ImplementsMetricsCollectorInterface はCollectorがMetricsCollectorインターフェースを実装することを検証する。
func TestCollector_ImplementsMetricsCollectorInterface(t *testing.T) {
	reg := prometheus.NewRegistry()
	var _ MetricsCollector = NewCollector(reg)
}

// TestSetupMetricsRoute_ServesMetrics は/metricsパスでメトリクスが返ることを検証する。
func TestSetupMetricsRoute_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordSubmissionAccepted(FormContact)

	handler := SetupMetricsRoute(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "leadman_submissions_accepted_total") {
		t.Error("response should contain leadman_submissions_accepted_total metric")
	}
}
