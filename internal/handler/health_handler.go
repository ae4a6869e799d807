package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/leadman/internal/middleware"
)

// HealthPinger はヘルスチェックが必要とするDB疎通確認のインターフェース。
// *sql.DBが満たす。
type HealthPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はヘルスチェックのHTTPハンドラー。
// DB未構成（縮退モード）の場合はDB疎通を確認せず healthy とみなす。
type HealthHandler struct {
	pinger HealthPinger
	logger *slog.Logger
}

// NewHealthHandler はHealthHandlerを生成する。pingerはnilでもよい。
func NewHealthHandler(pinger HealthPinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		pinger: pinger,
		logger: logger,
	}
}

// healthResponse はヘルスチェックのレスポンスボディ。
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health はサービスの稼働状態を返す。
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		middleware.WriteJSON(w, http.StatusOK, healthResponse{
			Status:   "ok",
			Database: "not_configured",
		})
		return
	}

	if err := h.pinger.PingContext(r.Context()); err != nil {
		h.logger.Error("health check: database ping failed", slog.String("error", err.Error()))
		middleware.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "unavailable",
			Database: "down",
		})
		return
	}

	middleware.WriteJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Database: "up",
	})
}
