// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// レート制限バックエンドの選択値。
const (
	RateLimitBackendUpstash = "upstash"
	RateLimitBackendMemory  = "memory"
	RateLimitBackendNone    = "none"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
//
// 外部バックエンド（DB、メール、レート制限、CMS）はすべて任意であり、
// 未設定の場合は対応する縮退実装が選択される。フォームAPIは
// どの組み合わせでも応答し続ける。
type Config struct {
	// Database
	DatabaseURL string

	// Email
	ResendAPIKey string
	EmailFrom    string
	NotifyEmail  string
	EmailTimeout time.Duration

	// Rate Limit
	RateLimitBackend      string
	UpstashRedisRESTURL   string
	UpstashRedisRESTToken string

	// CMS
	CMSProjectID  string
	CMSDataset    string
	CMSAPIVersion string
	CMSTimeout    time.Duration

	// Site
	SiteName string
	SiteURL  string

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string

	// Logging
	LogLevel string
}

// Load は環境変数からConfigを読み込む。
// カレントディレクトリに.envがあれば先に読み込む（無くてもエラーにしない）。
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailFrom:    getEnvString("EMAIL_FROM", "YourAgency <hello@youragency.com>"),
		NotifyEmail:  getEnvString("NOTIFY_EMAIL", "hello@youragency.com"),
		EmailTimeout: getEnvDuration("EMAIL_TIMEOUT", 10*time.Second),

		UpstashRedisRESTURL:   os.Getenv("UPSTASH_REDIS_REST_URL"),
		UpstashRedisRESTToken: os.Getenv("UPSTASH_REDIS_REST_TOKEN"),

		CMSProjectID:  os.Getenv("CMS_PROJECT_ID"),
		CMSDataset:    getEnvString("CMS_DATASET", "production"),
		CMSAPIVersion: os.Getenv("CMS_API_VERSION"),
		CMSTimeout:    getEnvDuration("CMS_TIMEOUT", 10*time.Second),

		SiteName: getEnvString("SITE_NAME", "YourAgency"),
		SiteURL:  os.Getenv("SITE_URL"),

		ServerPort:        getEnvString("SERVER_PORT", "8080"),
		CORSAllowedOrigin: getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		LogLevel:          getEnvString("LOG_LEVEL", "info"),
	}

	// バックエンド未指定の場合はUpstash認証情報の有無で自動選択する
	backend := os.Getenv("RATE_LIMIT_BACKEND")
	switch backend {
	case "":
		if cfg.UpstashRedisRESTURL != "" && cfg.UpstashRedisRESTToken != "" {
			cfg.RateLimitBackend = RateLimitBackendUpstash
		} else {
			cfg.RateLimitBackend = RateLimitBackendNone
		}
	case RateLimitBackendUpstash:
		if cfg.UpstashRedisRESTURL == "" || cfg.UpstashRedisRESTToken == "" {
			return nil, fmt.Errorf("RATE_LIMIT_BACKEND=upstash requires UPSTASH_REDIS_REST_URL and UPSTASH_REDIS_REST_TOKEN")
		}
		cfg.RateLimitBackend = RateLimitBackendUpstash
	case RateLimitBackendMemory, RateLimitBackendNone:
		cfg.RateLimitBackend = backend
	default:
		return nil, fmt.Errorf("unknown RATE_LIMIT_BACKEND: %q", backend)
	}

	return cfg, nil
}

// HasDatabase はDBが構成されているかを返す。
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasEmail はメール送信が構成されているかを返す。
func (c *Config) HasEmail() bool {
	return c.ResendAPIKey != ""
}

// HasCMS はCMSが構成されているかを返す。
func (c *Config) HasCMS() bool {
	return c.CMSProjectID != ""
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
