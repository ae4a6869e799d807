package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresSubscriberRepo はPostgreSQLを使用した購読者リポジトリ。
type PostgresSubscriberRepo struct {
	db *sql.DB
}

// NewPostgresSubscriberRepo はPostgresSubscriberRepoを生成する。
func NewPostgresSubscriberRepo(db *sql.DB) *PostgresSubscriberRepo {
	return &PostgresSubscriberRepo{db: db}
}

// Upsert は購読者を冪等にUPSERTする。
// UNIQUE(email)制約を利用したINSERT ON CONFLICTで、再購読時は
// subscribed_atのみを更新する。重複行もエラーも発生しない。
// 競合解決はデータベースが保証するため、並行する同一emailの申込も安全。
func (r *PostgresSubscriberRepo) Upsert(ctx context.Context, email string, subscribedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscribers (email, subscribed_at)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE SET subscribed_at = EXCLUDED.subscribed_at`,
		email, subscribedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscriber: %w", err)
	}

	return nil
}

// compile-time interface check
var _ SubscriberRepository = (*PostgresSubscriberRepo)(nil)
