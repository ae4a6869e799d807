// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/leadman/internal/model"
)

// LeadRepository はリードデータの永続化インターフェース。
type LeadRepository interface {
	// Create は受理された問い合わせ送信をリードとして1件INSERTする。
	// source="website"、status="new" は呼び出し側で設定済みであること。
	// このパイプラインは作成後のリードを更新しない。
	Create(ctx context.Context, lead *model.Lead) error
}

// SubscriberRepository はニュースレター購読者の永続化インターフェース。
type SubscriberRepository interface {
	// Upsert はemailをユニークキーとして購読者を冪等にUPSERTする。
	// 既存の場合はsubscribed_atをsubscribedAtで更新する（行は重複しない）。
	Upsert(ctx context.Context, email string, subscribedAt time.Time) error
}
