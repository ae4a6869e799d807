package content

import (
	"net/url"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer はCMS記事本文のHTMLをサニタイズするインターフェース。
// 記事本文がAPIレスポンスに載る前に必ず適用される。
type Sanitizer interface {
	// Sanitize はHTMLを許可リストベースでサニタイズして安全なHTMLを返す。
	// 見出し・段落・リスト・引用・コード・画像・リンクのみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// imgタグのsrc属性はhttpsスキームのみ許可される。
	// aタグにはtarget="_blank"とrel="noopener noreferrer"が自動付与される。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(rawHTML string) string
}

// postSanitizer はSanitizerの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type postSanitizer struct {
	policy *bluemonday.Policy
}

// NewPostSanitizer はSanitizerの新しいインスタンスを生成する。
// ポリシーの内容:
//   - 許可タグ: h2, h3, h4, p, br, a, ul, ol, li, blockquote, pre, code,
//     strong, em, figure, figcaption, img
//   - 禁止タグ: script, iframe, style および全てのon*イベント属性
//   - imgのsrc属性: httpsスキームのみ許可
//   - aタグ: target="_blank" と rel="noopener noreferrer" を自動付与
func NewPostSanitizer() *postSanitizer {
	p := bluemonday.NewPolicy()

	// 記事本文に現れる構造タグ。許可リストに含めないタグは自動的に除去される。
	p.AllowElements(
		"h2", "h3", "h4",
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
		"figure", "figcaption",
	)

	// リンクは絶対URLのみ。外部リンクとして開かせる。
	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	// 画像はhttpsのみ（http, javascript, data等は拒否）。altは残す。
	p.AllowAttrs("src").OnElements("img")
	p.AllowAttrs("alt").OnElements("img")
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})

	return &postSanitizer{
		policy: p,
	}
}

// Sanitize はHTMLをサニタイズして安全なHTMLを返す。
func (s *postSanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}

// compile-time interface check
var _ Sanitizer = (*postSanitizer)(nil)
