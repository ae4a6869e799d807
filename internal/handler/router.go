package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/leadman/internal/content"
	"github.com/hitoshi/leadman/internal/metrics"
	"github.com/hitoshi/leadman/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	Logger            *slog.Logger
	Metrics           metrics.MetricsCollector
	Gatherer          prometheus.Gatherer
	CORSAllowedOrigin string

	// フォーム送信パイプライン
	SubmissionService SubmissionServiceInterface

	// ブログ記事
	ContentSource content.Source

	// サイトカタログ
	SiteURL string

	// ヘルスチェック（DB未構成の場合はnil）
	HealthPinger HealthPinger
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging
//
// CORSは最上位に適用する。インライングループのミドルウェアは登録済み
// メソッドハンドラーにしか適用されず、POST専用ルートへのOPTIONSプリフライトが
// 405で落ちるため。/health と /metrics はロギングの対象外として最上位に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	submissionHandler := NewSubmissionHandler(deps.SubmissionService, deps.Logger)
	contentHandler := NewContentHandler(deps.ContentSource, deps.Logger)
	siteHandler := NewSiteHandler(deps.SiteURL)
	healthHandler := NewHealthHandler(deps.HealthPinger, deps.Logger)

	// 運用エンドポイント
	r.Get("/health", healthHandler.Health)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// 公開API
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics))

		// フォーム送信
		r.Post("/api/contact", submissionHandler.Contact)
		r.Post("/api/newsletter", submissionHandler.Newsletter)

		// ブログ記事
		r.Route("/api/posts", func(r chi.Router) {
			r.Get("/", contentHandler.ListPosts)
			// /slugs は /{slug} より先に登録する（chiは静的パスを優先する）
			r.Get("/slugs", contentHandler.ListSlugs)
			r.Get("/{slug}", contentHandler.GetPost)
		})

		// サイトカタログ
		r.Get("/api/site", siteHandler.GetSite)
		r.Route("/api/services", func(r chi.Router) {
			r.Get("/", siteHandler.ListServices)
			r.Get("/{slug}", siteHandler.GetService)
		})
		r.Route("/api/case-studies", func(r chi.Router) {
			r.Get("/", siteHandler.ListCaseStudies)
			r.Get("/{slug}", siteHandler.GetCaseStudy)
		})
	})

	return r
}
