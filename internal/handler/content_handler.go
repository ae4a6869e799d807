package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/leadman/internal/content"
	"github.com/hitoshi/leadman/internal/middleware"
)

// ContentHandler はブログ記事APIのHTTPハンドラー。
type ContentHandler struct {
	source content.Source
	logger *slog.Logger
}

// NewContentHandler はContentHandlerを生成する。
func NewContentHandler(source content.Source, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		source: source,
		logger: logger,
	}
}

// ListPosts は公開済み記事の一覧を返す。
// GET /api/posts
func (h *ContentHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.source.ListPosts(r.Context())
	if err != nil {
		h.logger.Error("failed to list posts", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, posts)
}

// GetPost はスラッグで記事を1件返す。
// GET /api/posts/{slug}
func (h *ContentHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.source.GetPost(r.Context(), slug)
	if err != nil {
		h.logger.Error("failed to get post",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
		middleware.WriteInternalServerError(w)
		return
	}
	if post == nil {
		middleware.WriteJSON(w, http.StatusNotFound, middleware.ErrorResponseBody{Error: "Post not found"})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, post)
}

// ListSlugs は公開済み記事のスラッグ一覧を返す。サイトマップ生成用。
// GET /api/posts/slugs
func (h *ContentHandler) ListSlugs(w http.ResponseWriter, r *http.Request) {
	slugs, err := h.source.ListSlugs(r.Context())
	if err != nil {
		h.logger.Error("failed to list post slugs", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, slugs)
}
