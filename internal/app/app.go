// Package app はアプリケーションの起動と依存関係のワイヤリングを提供する。
//
// 外部バックエンド（PostgreSQL、Resend、Upstash、CMS）はすべて任意であり、
// 未設定のものは起動時に縮退実装へ差し替えられる。フォームAPIは
// どの構成でも同じ応答を返し続ける。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/leadman/internal/config"
	"github.com/hitoshi/leadman/internal/content"
	"github.com/hitoshi/leadman/internal/database"
	"github.com/hitoshi/leadman/internal/email"
	"github.com/hitoshi/leadman/internal/handler"
	"github.com/hitoshi/leadman/internal/lead"
	"github.com/hitoshi/leadman/internal/logger"
	"github.com/hitoshi/leadman/internal/metrics"
	"github.com/hitoshi/leadman/internal/ratelimit"
	"github.com/hitoshi/leadman/internal/repository"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたログレベルで再セットアップする
	logger.SetupDefault(w, logger.ParseLevel(cfg.LogLevel))

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("rate_limit_backend", cfg.RateLimitBackend),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// 設定された外部バックエンドごとに実装を選択し、全依存関係を
// ワイヤリングしてHTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	log := slog.Default()

	// 1. メトリクス
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 2. 永続化（DATABASE_URL未設定の場合はログ保存に縮退）
	var (
		leadRepo   repository.LeadRepository       = repository.NewLogLeadRepo(log)
		subRepo    repository.SubscriberRepository = repository.NewLogSubscriberRepo(log)
		healthPing handler.HealthPinger
	)
	if cfg.HasDatabase() {
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		slog.Info("database connection established")
		leadRepo = repository.NewPostgresLeadRepo(db)
		subRepo = repository.NewPostgresSubscriberRepo(db)
		healthPing = db
	} else {
		slog.Warn("DATABASE_URL not set, submissions will be logged instead of persisted")
	}

	// 3. メール通知（RESEND_API_KEY未設定の場合はログ出力に縮退）
	var notifier email.Notifier = email.NewLogNotifier(log)
	if cfg.HasEmail() {
		notifier = email.NewResendClient(email.ResendConfig{
			APIKey:  cfg.ResendAPIKey,
			From:    cfg.EmailFrom,
			Timeout: cfg.EmailTimeout,
		}, log)
	} else {
		slog.Warn("RESEND_API_KEY not set, emails will be logged instead of sent")
	}

	// 4. レート制限
	var limiter ratelimit.Limiter
	switch cfg.RateLimitBackend {
	case config.RateLimitBackendUpstash:
		limiter = ratelimit.NewUpstash(ratelimit.UpstashConfig{
			RestURL:   cfg.UpstashRedisRESTURL,
			RestToken: cfg.UpstashRedisRESTToken,
			Limit:     ratelimit.DefaultLimit,
			Window:    ratelimit.DefaultWindow,
		}, log)
	case config.RateLimitBackendMemory:
		memory := ratelimit.NewMemory(ratelimit.DefaultMemoryConfig())
		defer memory.Stop()
		limiter = memory
	default:
		slog.Warn("rate limiting disabled, all requests will be allowed")
		limiter = ratelimit.NewAllowAll()
	}

	// 5. CMS（未設定の場合は空の結果に縮退）
	var source content.Source = content.DisabledSource{}
	if cfg.HasCMS() {
		source = content.NewSanityClient(content.SanityConfig{
			ProjectID:  cfg.CMSProjectID,
			Dataset:    cfg.CMSDataset,
			APIVersion: cfg.CMSAPIVersion,
			Timeout:    cfg.CMSTimeout,
		}, content.NewPostSanitizer(), log)
	} else {
		slog.Info("CMS not configured, blog endpoints will return empty results")
	}

	// 6. 送信パイプライン
	submissionService := lead.NewService(
		leadRepo, subRepo, limiter, notifier, collector, log,
		lead.Config{
			SiteName:      cfg.SiteName,
			NotifyAddress: cfg.NotifyEmail,
		},
	)

	// 7. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            log,
		Metrics:           collector,
		Gatherer:          registry,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		SubmissionService: submissionService,
		ContentSource:     source,
		SiteURL:           cfg.SiteURL,
		HealthPinger:      healthPing,
	})

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	if !cfg.HasDatabase() {
		return fmt.Errorf("DATABASE_URL is required for migrate")
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
