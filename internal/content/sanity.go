package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hitoshi/leadman/internal/model"
)

// defaultAPIVersion はSanityクエリAPIのデフォルトバージョン。
const defaultAPIVersion = "2024-01-01"

// 公開済み記事を取得するGROQクエリ。下書き（publishedAt未設定）は除外する。
const (
	postsQuery = `*[_type == "post" && defined(publishedAt)] | order(publishedAt desc) {
  _id, title, "slug": slug.current, excerpt, publishedAt,
  "image_url": mainImage.asset->url,
  "category": categories[0]->title,
  "author": author->{name, "avatar_url": image.asset->url}
}`
	postBySlugQuery = `*[_type == "post" && slug.current == $slug][0] {
  _id, title, "slug": slug.current, excerpt, publishedAt, body,
  "image_url": mainImage.asset->url,
  "category": categories[0]->title,
  "author": author->{name, "avatar_url": image.asset->url}
}`
	postSlugsQuery = `*[_type == "post" && defined(slug.current)].slug.current`
)

// SanityConfig はSanityクライアントの設定を保持する。
type SanityConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string        // 空の場合はdefaultAPIVersion
	Timeout    time.Duration // リクエストタイムアウト
}

// SanityClient はSanity互換クエリAPIを使用したSource実装。
type SanityClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	sanitizer  Sanitizer
	baseURL    string // テスト用にベースURLを差し替え可能
}

// NewSanityClient はSanityClientを生成する。
func NewSanityClient(cfg SanityConfig, sanitizer Sanitizer, logger *slog.Logger) *SanityClient {
	version := cfg.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SanityClient{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		sanitizer:  sanitizer,
		baseURL: fmt.Sprintf("https://%s.api.sanity.io/v%s/data/query/%s",
			cfg.ProjectID, version, cfg.Dataset),
	}
}

// sanityPost はクエリAPIが返す記事のレスポンス形。
type sanityPost struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	PublishedAt time.Time `json:"publishedAt"`
	Body        string    `json:"body"`
	Author      struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"author"`
}

func (p *sanityPost) toModel() model.Post {
	return model.Post{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		PublishedAt: p.PublishedAt,
		Body:        p.Body,
		Author: model.PostAuthor{
			Name:      p.Author.Name,
			AvatarURL: p.Author.AvatarURL,
		},
	}
}

// query はGROQクエリを実行し、レスポンスのresultフィールドをdestにデコードする。
// パラメータ値はJSONエンコードして渡す（文字列は引用符付きになる）。
func (c *SanityClient) query(ctx context.Context, groq string, params map[string]string, dest any) error {
	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse CMS base URL: %w", err)
	}

	q := reqURL.Query()
	q.Set("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode query param %s: %w", name, err)
		}
		q.Set("$"+name, string(encoded))
	}
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create CMS request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("CMS query failed", slog.String("error", err.Error()))
		return fmt.Errorf("CMS query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("CMS returned error status",
			slog.Int("status", resp.StatusCode),
			slog.String("response", string(body)),
		)
		return fmt.Errorf("CMS returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode CMS response: %w", err)
	}

	// スラッグ一致なしの個別取得ではresultがnullになる
	if len(envelope.Result) == 0 || bytes.Equal(envelope.Result, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, dest); err != nil {
		return fmt.Errorf("failed to decode CMS result: %w", err)
	}
	return nil
}

// ListPosts は公開済み記事を公開日時の降順で返す。本文は含まない。
func (c *SanityClient) ListPosts(ctx context.Context) ([]model.Post, error) {
	var rows []sanityPost
	if err := c.query(ctx, postsQuery, nil, &rows); err != nil {
		return nil, err
	}

	posts := make([]model.Post, len(rows))
	for i := range rows {
		posts[i] = rows[i].toModel()
		posts[i].Body = "" // 一覧に本文は載せない
	}
	return posts, nil
}

// GetPost はスラッグで記事を1件取得する。見つからない場合は(nil, nil)を返す。
// 本文HTMLはサニタイズ済みで返す。
func (c *SanityClient) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	var row *sanityPost
	if err := c.query(ctx, postBySlugQuery, map[string]string{"slug": slug}, &row); err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	post := row.toModel()
	post.Body = c.sanitizer.Sanitize(post.Body)
	return &post, nil
}

// ListSlugs は公開済み記事のスラッグを列挙する。
func (c *SanityClient) ListSlugs(ctx context.Context) ([]string, error) {
	slugs := []string{}
	if err := c.query(ctx, postSlugsQuery, nil, &slugs); err != nil {
		return nil, err
	}
	return slugs, nil
}

// compile-time interface check
var _ Source = (*SanityClient)(nil)
