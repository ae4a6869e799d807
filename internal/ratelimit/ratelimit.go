// Package ratelimit はフォーム送信の流量制御を提供する。
//
// クォータはクライアント識別子ごとに1時間あたり3リクエストで、
// 問い合わせフォームとニュースレターフォームは同一バケットを共有する。
// バックエンドが未設定の環境ではフェイルオープン（全許可）で動作し、
// 外部クォータストアなしでもパイプラインが利用可能であることを保証する。
package ratelimit

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultLimit は1ウィンドウあたりの許可リクエスト数。
	DefaultLimit = 3
	// DefaultWindow はクォータウィンドウの長さ。
	DefaultWindow = time.Hour
)

// Limiter はクライアント識別子ごとの流量判定インターフェース。
// Allowは識別子のリクエストを許可してよいかを返す。
// エラーを返した場合の扱い（フェイルオープン）は呼び出し側の責務とする。
type Limiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

// AllowAll は全リクエストを許可するリミッター。
// レート制限バックエンドが未設定の環境で選択されるヌル実装。
type AllowAll struct{}

// NewAllowAll はAllowAllを生成する。
func NewAllowAll() *AllowAll {
	return &AllowAll{}
}

// Allow は常にtrueを返す。
func (a *AllowAll) Allow(ctx context.Context, identifier string) (bool, error) {
	return true, nil
}

// ClientIdentifier はリクエストからクォータバケットのキーとなる
// クライアント識別子を導出する。X-Forwarded-Forヘッダーの先頭値を使用し、
// ヘッダーがない場合は"unknown"を返す（ヘッダーなしの全呼び出し元が
// 1つのグローバルバケットを共有する粗さは許容仕様）。
func ClientIdentifier(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return "unknown"
	}

	// カンマ区切りの先頭がオリジナルのクライアント
	first, _, _ := strings.Cut(forwarded, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return "unknown"
	}
	return first
}

// compile-time interface check
var _ Limiter = (*AllowAll)(nil)
