package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/leadman/internal/model"
)

// LogLeadRepo はデータベース未設定の環境で使用するリードリポジトリ。
// 永続化の代わりにログへ記録し、成功を報告する。
// ローカル/開発環境で資格情報なしにパイプラインを動作させるための
// 明示的な縮退モード実装であり、本番ではPostgresLeadRepoが選択される。
type LogLeadRepo struct {
	logger *slog.Logger
}

// NewLogLeadRepo はLogLeadRepoを生成する。
func NewLogLeadRepo(logger *slog.Logger) *LogLeadRepo {
	return &LogLeadRepo{logger: logger}
}

// Create はリードをログに記録して成功を返す。
func (r *LogLeadRepo) Create(ctx context.Context, lead *model.Lead) error {
	r.logger.Info("lead received (database not configured, skipping persistence)",
		slog.String("name", lead.Name),
		slog.String("email", lead.Email),
		slog.String("service", lead.Service),
	)
	return nil
}

// LogSubscriberRepo はデータベース未設定の環境で使用する購読者リポジトリ。
type LogSubscriberRepo struct {
	logger *slog.Logger
}

// NewLogSubscriberRepo はLogSubscriberRepoを生成する。
func NewLogSubscriberRepo(logger *slog.Logger) *LogSubscriberRepo {
	return &LogSubscriberRepo{logger: logger}
}

// Upsert は購読申込をログに記録して成功を返す。
func (r *LogSubscriberRepo) Upsert(ctx context.Context, email string, subscribedAt time.Time) error {
	r.logger.Info("newsletter subscriber received (database not configured, skipping persistence)",
		slog.String("email", email),
	)
	return nil
}

// compile-time interface checks
var (
	_ LeadRepository       = (*LogLeadRepo)(nil)
	_ SubscriberRepository = (*LogSubscriberRepo)(nil)
)
