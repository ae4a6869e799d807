// Package handler はHTTP APIのハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/leadman/internal/middleware"
	"github.com/hitoshi/leadman/internal/model"
	"github.com/hitoshi/leadman/internal/ratelimit"
	"github.com/hitoshi/leadman/internal/validate"
)

// SubmissionServiceInterface はフォーム送信ハンドラーが必要とするサービスインターフェース。
type SubmissionServiceInterface interface {
	// SubmitContact は問い合わせフォームの送信を処理する。
	SubmitContact(ctx context.Context, identifier string, in validate.ContactInput) error
	// SubmitNewsletter はニュースレター購読の申込を処理する。
	SubmitNewsletter(ctx context.Context, identifier string, in validate.NewsletterInput) error
}

// SubmissionHandler はフォーム送信のHTTPハンドラー。
type SubmissionHandler struct {
	service SubmissionServiceInterface
	logger  *slog.Logger
}

// NewSubmissionHandler はSubmissionHandlerを生成する。
func NewSubmissionHandler(service SubmissionServiceInterface, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger,
	}
}

// successResponse は受理時のレスポンスボディ。
type successResponse struct {
	Success bool `json:"success"`
}

// Contact は問い合わせフォームの送信を処理する。
// POST /api/contact
func (h *SubmissionHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var in validate.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteErrorResponse(w, model.NewValidationError("Invalid form data", nil))
		return
	}

	identifier := ratelimit.ClientIdentifier(r)
	if err := h.service.SubmitContact(r.Context(), identifier, in); err != nil {
		h.writeSubmissionError(w, r, err, "Internal server error. Please try again.")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

// Newsletter はニュースレター購読の申込を処理する。
// POST /api/newsletter
func (h *SubmissionHandler) Newsletter(w http.ResponseWriter, r *http.Request) {
	var in validate.NewsletterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteErrorResponse(w, model.NewValidationError("Please enter a valid email address.", nil))
		return
	}

	identifier := ratelimit.ClientIdentifier(r)
	if err := h.service.SubmitNewsletter(r.Context(), identifier, in); err != nil {
		h.writeSubmissionError(w, r, err, "Something went wrong. Please try again.")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

// writeSubmissionError はパイプラインのエラーをHTTPレスポンスに変換する。
// APIError（バリデーション失敗・レート制限超過）以外は想定外のため500を返す。
func (h *SubmissionHandler) writeSubmissionError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, apiErr)
		return
	}

	h.logger.Error("submission failed unexpectedly",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	middleware.WriteJSON(w, http.StatusInternalServerError, middleware.ErrorResponseBody{Error: internalMsg})
}
