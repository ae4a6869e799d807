package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/leadman/internal/middleware"
	"github.com/hitoshi/leadman/internal/site"
)

// SiteHandler は静的サイトカタログのHTTPハンドラー。
type SiteHandler struct {
	siteURL string
}

// NewSiteHandler はSiteHandlerを生成する。
func NewSiteHandler(siteURL string) *SiteHandler {
	return &SiteHandler{siteURL: siteURL}
}

// GetSite はサイトメタデータを返す。
// GET /api/site
func (h *SiteHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, site.Metadata(h.siteURL))
}

// ListServices は提供サービスの一覧を返す。
// GET /api/services
func (h *SiteHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, site.Services())
}

// GetService はスラッグでサービスを1件返す。
// GET /api/services/{slug}
func (h *SiteHandler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, ok := site.ServiceBySlug(chi.URLParam(r, "slug"))
	if !ok {
		middleware.WriteJSON(w, http.StatusNotFound, middleware.ErrorResponseBody{Error: "Service not found"})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, svc)
}

// ListCaseStudies は導入事例の一覧を返す。
// featured=trueクエリで注目事例のみに絞り込める。
// GET /api/case-studies
func (h *SiteHandler) ListCaseStudies(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("featured") == "true" {
		middleware.WriteJSON(w, http.StatusOK, site.FeaturedCaseStudies())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, site.CaseStudies())
}

// GetCaseStudy はスラッグで導入事例を1件返す。
// GET /api/case-studies/{slug}
func (h *SiteHandler) GetCaseStudy(w http.ResponseWriter, r *http.Request) {
	cs, ok := site.CaseStudyBySlug(chi.URLParam(r, "slug"))
	if !ok {
		middleware.WriteJSON(w, http.StatusNotFound, middleware.ErrorResponseBody{Error: "Case study not found"})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, cs)
}
