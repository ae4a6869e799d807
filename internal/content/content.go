// Package content はヘッドレスCMSからのブログ記事取得を提供する。
//
// 実装はSanity互換のクエリAPIを呼び出すSanityClientと、CMS未設定の環境で
// 空の結果に縮退するDisabledSourceの2種類。記事本文のHTMLはサービスの
// 外に出る前に必ずサニタイズされる。
package content

import (
	"context"

	"github.com/hitoshi/leadman/internal/model"
)

// Source はブログ記事の取得インターフェース。
type Source interface {
	// ListPosts は公開済み記事を公開日時の降順で返す。本文は含まない。
	ListPosts(ctx context.Context) ([]model.Post, error)
	// GetPost はスラッグで記事を1件取得する。見つからない場合は(nil, nil)を返す。
	GetPost(ctx context.Context, slug string) (*model.Post, error)
	// ListSlugs は公開済み記事のスラッグを列挙する。
	ListSlugs(ctx context.Context) ([]string, error)
}

// DisabledSource はCMS未設定の環境で使用するSource。
// 一覧は空、個別取得は未発見として応答し、APIの形は保ったまま縮退する。
type DisabledSource struct{}

// ListPosts は常に空のスライスを返す。
func (DisabledSource) ListPosts(ctx context.Context) ([]model.Post, error) {
	return []model.Post{}, nil
}

// GetPost は常に未発見を返す。
func (DisabledSource) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	return nil, nil
}

// ListSlugs は常に空のスライスを返す。
func (DisabledSource) ListSlugs(ctx context.Context) ([]string, error) {
	return []string{}, nil
}

// compile-time interface check
var _ Source = DisabledSource{}
