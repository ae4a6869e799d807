package model

import "time"

const (
	// LeadSourceWebsite はこのパイプラインが作成するリードの固定ソース値。
	LeadSourceWebsite = "website"
	// LeadStatusNew は新規リードの初期ステータス。
	// 以降のステータス遷移はバックオフィス側のプロセスが所有し、
	// このパイプラインはリードを一度作成したら更新しない。
	LeadStatusNew = "new"
)

// Lead は問い合わせフォームから受理された送信の永続化レコードを表す。
type Lead struct {
	ID          string
	Name        string
	Email       string
	Company     string // 空文字列はNULLとして保存される
	Service     string
	BudgetRange string // 空文字列はNULLとして保存される
	Message     string
	Source      string
	Status      string
	CreatedAt   time.Time
}

// Subscriber はニュースレター購読者の永続化レコードを表す。
// emailがユニークキーであり、再購読時はsubscribed_atのみが更新される。
type Subscriber struct {
	Email        string
	SubscribedAt time.Time
}
