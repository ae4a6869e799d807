package model

import "time"

// PostAuthor はブログ記事の著者情報を表す。
type PostAuthor struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Post はCMSから取得した公開済みブログ記事を表す。
// BodyはサニタイズされたHTML。一覧取得時は空になる。
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Category    string     `json:"category,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Author      PostAuthor `json:"author"`
	PublishedAt time.Time  `json:"published_at"`
	Body        string     `json:"body,omitempty"`
}
