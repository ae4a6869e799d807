// Package model はドメインモデルを定義する。
package model

import (
	"fmt"
	"net/http"
)

// APIError は呼び出し元に返す構造化エラーを表す。
// パイプラインの結果を変えられるのはバリデーション失敗とレート制限超過のみで、
// ストア障害・メール障害はここには現れない（ログとメトリクスにのみ記録される）。
type APIError struct {
	Code    string              // エラーコード
	Message string              // ユーザー向けメッセージ
	Status  int                 // 対応するHTTPステータスコード
	Details map[string][]string // フィールドごとの違反一覧（バリデーション失敗時のみ）
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// NewValidationError はバリデーション失敗エラーを生成する。
// detailsには違反したすべてのフィールドを列挙する（最初の1件だけではない）。
func NewValidationError(message string, details map[string][]string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: message,
		Status:  http.StatusBadRequest,
		Details: details,
	}
}

// NewRateLimitExceededError はレート制限超過エラーを生成する。
func NewRateLimitExceededError() *APIError {
	return &APIError{
		Code:    ErrCodeRateLimitExceeded,
		Message: "Too many requests. Please try again later.",
		Status:  http.StatusTooManyRequests,
	}
}
