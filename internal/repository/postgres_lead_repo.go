package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hitoshi/leadman/internal/model"
)

// PostgresLeadRepo はPostgreSQLを使用したリードリポジトリ。
type PostgresLeadRepo struct {
	db *sql.DB
}

// NewPostgresLeadRepo はPostgresLeadRepoを生成する。
func NewPostgresLeadRepo(db *sql.DB) *PostgresLeadRepo {
	return &PostgresLeadRepo{db: db}
}

// Create はリードを1件INSERTする。
// IDとcreated_atはこのメソッドが採番・設定し、leadに書き戻す。
// 任意項目（company、budget_range）の空文字列はNULLとして保存する。
func (r *PostgresLeadRepo) Create(ctx context.Context, lead *model.Lead) error {
	lead.ID = uuid.New().String()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO leads (id, name, email, company, service, budget_range, message, source, status)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8, $9)
		 RETURNING created_at`,
		lead.ID, lead.Name, lead.Email, lead.Company,
		lead.Service, lead.BudgetRange, lead.Message,
		lead.Source, lead.Status,
	).Scan(&lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	return nil
}

// compile-time interface check
var _ LeadRepository = (*PostgresLeadRepo)(nil)
