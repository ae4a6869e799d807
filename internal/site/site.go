// Package site はバイナリに焼き込まれた静的なサイトカタログを提供する。
//
// サイトのメタデータ、提供サービス、導入事例はデプロイごとに固定であり、
// CMSではなくコードで管理する。読み取り専用であり、返却された値を
// 変更してはならない。
package site

// Contact はサイトの連絡先情報。
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Config はサイトの基本メタデータ。
type Config struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	URL         string            `json:"url"`
	Creator     string            `json:"creator"`
	Keywords    []string          `json:"keywords"`
	Links       map[string]string `json:"links"`
	Contact     Contact           `json:"contact"`
}

// defaultSiteURL はSITE_URL未設定時の公開URL。
const defaultSiteURL = "https://youragency.com"

// Metadata はサイトメタデータを返す。siteURLが空の場合はデフォルトを使う。
func Metadata(siteURL string) Config {
	if siteURL == "" {
		siteURL = defaultSiteURL
	}
	return Config{
		Name:        "YourAgency",
		Description: "We build websites, grow your SEO, manage social media, and consult on business & finance.",
		URL:         siteURL,
		Creator:     "YourAgency Team",
		Keywords: []string{
			"web development agency",
			"SEO services",
			"social media management",
			"business consulting",
			"finance consultancy",
		},
		Links: map[string]string{
			"twitter":   "https://twitter.com/youragency",
			"linkedin":  "https://linkedin.com/company/youragency",
			"github":    "https://github.com/youragency",
			"instagram": "https://instagram.com/youragency",
		},
		Contact: Contact{
			Email: "hello@youragency.com",
			Phone: "+1 (555) 000-0000",
		},
	}
}
