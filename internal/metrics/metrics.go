// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// フォームラベルの値。
const (
	FormContact    = "contact"
	FormNewsletter = "newsletter"
)

// メール種別ラベルの値。
const (
	EmailLeadAlert         = "lead_alert"
	EmailLeadAck           = "lead_ack"
	EmailNewsletterWelcome = "newsletter_welcome"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とハンドラーから利用する。
type MetricsCollector interface {
	RecordSubmissionAccepted(form string)
	RecordValidationFailure(form string)
	RecordSpamDropped(form string)
	RecordRateLimitDenied(form string)
	RecordLimiterError(form string)
	RecordStoreFailure(form string)
	RecordEmailSent(kind string)
	RecordEmailFailure(kind string)
	RecordHTTPStatus(statusCode int)
	RecordSubmissionLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	submissionsAccepted *prometheus.CounterVec
	validationFailures  *prometheus.CounterVec
	spamDropped         *prometheus.CounterVec
	rateLimitDenied     *prometheus.CounterVec
	limiterErrors       *prometheus.CounterVec
	storeFailures       *prometheus.CounterVec
	emailsSent          *prometheus.CounterVec
	emailFailures       *prometheus.CounterVec
	httpStatus          *prometheus.CounterVec
	submissionLatency   prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		submissionsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadman_submissions_accepted_total",
			Help: "受理されたフォーム送信の合計数（フォーム種別ごと）",
		}, []string{"form"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadman_validation_failures_total",
			Help: "バリデーションで拒否されたフォーム送信の合計数",
		}, []string{"form"}),
		spamDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadman_spam_dropped_total",
			Help: "honeypotで破棄されたボット送信の合計数",
		}, []string{"form"}),
		rateLimitDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadman_rate_limit_denied_total",
			Help: "レート制限で拒否されたリクエストの合計数",
		}, []string{"form"}),
		limiterErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadman_limiter_errors_total",
			Help: "レート制限バックエンドのエラー数（フェイルオープンした回数）",
		}, []string{"form"}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadman_store_failures_total",
			Help: "永続化に失敗した送信の合計数（ベストエフォートのため応答には影響しない）",
		}, []string{"form"}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadman_emails_sent_total",
			Help: "送信に成功したメールの合計数（種別ごと）",
		}, []string{"kind"}),
		emailFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadman_email_failures_total",
			Help: "送信に失敗したメールの合計数（種別ごと）",
		}, []string{"kind"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadman_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		submissionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leadman_submission_latency_seconds",
			Help:    "フォーム送信パイプラインの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.submissionsAccepted,
		c.validationFailures,
		c.spamDropped,
		c.rateLimitDenied,
		c.limiterErrors,
		c.storeFailures,
		c.emailsSent,
		c.emailFailures,
		c.httpStatus,
		c.submissionLatency,
	)

	return c
}

// RecordSubmissionAccepted は受理されたフォーム送信を記録する。
func (c *Collector) RecordSubmissionAccepted(form string) {
	c.submissionsAccepted.WithLabelValues(form).Inc()
}

// RecordValidationFailure はバリデーション拒否を記録する。
func (c *Collector) RecordValidationFailure(form string) {
	c.validationFailures.WithLabelValues(form).Inc()
}

// RecordSpamDropped はhoneypotによるボット送信の破棄を記録する。
func (c *Collector) RecordSpamDropped(form string) {
	c.spamDropped.WithLabelValues(form).Inc()
}

// RecordRateLimitDenied はレート制限による拒否を記録する。
func (c *Collector) RecordRateLimitDenied(form string) {
	c.rateLimitDenied.WithLabelValues(form).Inc()
}

// RecordLimiterError はレート制限バックエンドのエラーを記録する。
func (c *Collector) RecordLimiterError(form string) {
	c.limiterErrors.WithLabelValues(form).Inc()
}

// RecordStoreFailure は永続化失敗を記録する。
func (c *Collector) RecordStoreFailure(form string) {
	c.storeFailures.WithLabelValues(form).Inc()
}

// RecordEmailSent はメール送信成功を記録する。
func (c *Collector) RecordEmailSent(kind string) {
	c.emailsSent.WithLabelValues(kind).Inc()
}

// RecordEmailFailure はメール送信失敗を記録する。
func (c *Collector) RecordEmailFailure(kind string) {
	c.emailFailures.WithLabelValues(kind).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordSubmissionLatency は送信パイプラインの処理時間を記録する。
func (c *Collector) RecordSubmissionLatency(duration time.Duration) {
	c.submissionLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
