package ratelimit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// keyPrefix はRedisキーの名前空間。他用途のキーとの衝突を避ける。
const keyPrefix = "leadman:ratelimit:"

// UpstashConfig はUpstash Redis RESTバックエンドの設定を保持する。
type UpstashConfig struct {
	RestURL   string        // UpstashのREST URL（例: https://xxx.upstash.io）
	RestToken string        // RESTトークン
	Limit     int           // ウィンドウあたりの許可リクエスト数
	Window    time.Duration // クォータウィンドウの長さ
	Timeout   time.Duration // リクエストタイムアウト
}

// Upstash はUpstash Redis REST APIを使用した固定ウィンドウカウンター。
// INCRとEXPIRE NXのパイプライン呼び出しで、最初のリクエスト時点から
// ウィンドウを開始する。カウンター状態はUpstash側が所有し、
// 複数レプリカ間でクォータが共有される。
type Upstash struct {
	httpClient *http.Client
	logger     *slog.Logger
	restURL    string
	restToken  string
	limit      int
	window     time.Duration
}

// NewUpstash はUpstashリミッターを生成する。
func NewUpstash(cfg UpstashConfig, logger *slog.Logger) *Upstash {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Upstash{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		restURL:    cfg.RestURL,
		restToken:  cfg.RestToken,
		limit:      cfg.Limit,
		window:     cfg.Window,
	}
}

// pipelineResult はUpstashパイプラインレスポンスの1要素。
type pipelineResult struct {
	Result json.Number `json:"result"`
	Error  string      `json:"error"`
}

// Allow は識別子のカウンターをインクリメントし、クォータ内かを返す。
// バックエンド障害時はエラーを返す。フェイルオープンの判断は呼び出し側が行う。
func (u *Upstash) Allow(ctx context.Context, identifier string) (bool, error) {
	key := keyPrefix + identifier
	windowSec := strconv.Itoa(int(u.window.Seconds()))

	// INCRでカウントし、キーが新規の場合のみEXPIREでウィンドウを開始する
	commands := [][]string{
		{"INCR", key},
		{"EXPIRE", key, windowSec, "NX"},
	}

	body, err := json.Marshal(commands)
	if err != nil {
		return false, fmt.Errorf("failed to encode pipeline commands: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.restURL+"/pipeline", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to create rate limit request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.restToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("rate limit backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("rate limit backend returned status %d", resp.StatusCode)
	}

	var results []pipelineResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return false, fmt.Errorf("failed to decode rate limit response: %w", err)
	}

	if len(results) < 1 {
		return false, fmt.Errorf("rate limit backend returned empty pipeline response")
	}
	if results[0].Error != "" {
		return false, fmt.Errorf("rate limit backend command failed: %s", results[0].Error)
	}

	count, err := results[0].Result.Int64()
	if err != nil {
		return false, fmt.Errorf("unexpected INCR result %q: %w", results[0].Result, err)
	}

	allowed := count <= int64(u.limit)
	if !allowed {
		u.logger.Warn("rate limit exceeded",
			slog.String("identifier", identifier),
			slog.Int64("count", count),
			slog.Int("limit", u.limit),
		)
	}

	return allowed, nil
}

// compile-time interface check
var _ Limiter = (*Upstash)(nil)
