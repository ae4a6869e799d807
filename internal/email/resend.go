package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// defaultEndpoint はResendのメール送信APIエンドポイント。
const defaultEndpoint = "https://api.resend.com/emails"

// ResendConfig はResendクライアントの設定を保持する。
type ResendConfig struct {
	APIKey  string
	From    string        // 送信元（例: "YourAgency <hello@youragency.com>"）
	Timeout time.Duration // リクエストタイムアウト
}

// ResendClient はResend REST APIを使用したNotifier実装。
type ResendClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	from       string
	endpoint   string // テスト用にエンドポイントを差し替え可能
}

// NewResendClient はResendClientを生成する。
func NewResendClient(cfg ResendConfig, logger *slog.Logger) *ResendClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ResendClient{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		endpoint:   defaultEndpoint,
	}
}

// resendRequest はResend APIのリクエストボディ。
type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send はメールを1通送信する。2xx以外のレスポンスはエラーとして返す。
func (c *ResendClient) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(resendRequest{
		From:    c.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// エラーレスポンスの本文は診断のためログに残す（呼び出し元には返さない）
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("email API returned error status",
			slog.Int("status", resp.StatusCode),
			slog.String("response", string(respBody)),
			slog.String("subject", msg.Subject),
		)
		return fmt.Errorf("email API returned status %d", resp.StatusCode)
	}

	return nil
}

// compile-time interface check
var _ Notifier = (*ResendClient)(nil)
