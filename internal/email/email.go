// Package email はトランザクションメールの送信を提供する。
//
// 実装はResend REST APIを使用するResendClientと、メールバックエンド
// 未設定の環境でログ出力に縮退するLogNotifierの2種類。どちらを使うかは
// 起動時の構築で決まり、パイプラインは送信の成否に関わらず同一の挙動をとる
// （送信失敗はログとメトリクスに記録され、呼び出し元には波及しない）。
package email

import (
	"context"
	"log/slog"
	"strings"
)

// Message は送信する1通のメールを表す。
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Notifier はメール送信のインターフェース。
type Notifier interface {
	// Send はメールを1通送信する。1回のみ試行し、リトライしない。
	Send(ctx context.Context, msg Message) error
}

// LogNotifier はメールバックエンド未設定の環境で使用するNotifier。
// 送信の代わりにログへ記録し、成功を報告する。
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier はLogNotifierを生成する。
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send はメール内容をログに記録して成功を返す。
// 本文は先頭のみ記録する（ログ肥大の抑制）。
func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	preview := msg.HTML
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}

	n.logger.Info("email skipped (email backend not configured)",
		slog.String("to", strings.Join(msg.To, ", ")),
		slog.String("subject", msg.Subject),
		slog.String("body_preview", preview),
	)
	return nil
}

// compile-time interface check
var _ Notifier = (*LogNotifier)(nil)
