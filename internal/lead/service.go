// Package lead はフォーム送信パイプラインのドメインロジックを提供する。
//
// パイプラインは レート制限 → 検証 → スパムフィルタ → 永続化 → メール通知 の
// 順で処理する。結果（成功/失敗）を左右するのはレート制限と検証のみであり、
// 永続化とメール通知はベストエフォートで、失敗してもログとメトリクスに
// 記録されるだけで呼び出し元には成功が返る。リードを1件取りこぼすより、
// 訪問者にエラーを見せて離脱させる方が損失が大きい。
package lead

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/leadman/internal/email"
	"github.com/hitoshi/leadman/internal/metrics"
	"github.com/hitoshi/leadman/internal/model"
	"github.com/hitoshi/leadman/internal/ratelimit"
	"github.com/hitoshi/leadman/internal/repository"
	"github.com/hitoshi/leadman/internal/validate"
)

// Config はパイプラインの動作設定。
type Config struct {
	SiteName      string // メール文面に使用するサイト名
	NotifyAddress string // 新規リード通知の宛先
}

// Service はフォーム送信パイプラインのサービス層。
type Service struct {
	leadRepo repository.LeadRepository
	subRepo  repository.SubscriberRepository
	limiter  ratelimit.Limiter
	notifier email.Notifier
	metrics  metrics.MetricsCollector
	logger   *slog.Logger
	cfg      Config
}

// NewService はServiceの新しいインスタンスを生成する。
// 各依存は縮退実装（LogLeadRepo、LogNotifier、AllowAllなど）でもよく、
// パイプラインはどの実装が注入されても同じ制御フローをとる。
func NewService(
	leadRepo repository.LeadRepository,
	subRepo repository.SubscriberRepository,
	limiter ratelimit.Limiter,
	notifier email.Notifier,
	collector metrics.MetricsCollector,
	logger *slog.Logger,
	cfg Config,
) *Service {
	return &Service{
		leadRepo: leadRepo,
		subRepo:  subRepo,
		limiter:  limiter,
		notifier: notifier,
		metrics:  collector,
		logger:   logger,
		cfg:      cfg,
	}
}

// SubmitContact は問い合わせフォームの送信を処理する。
// 戻り値がnilなら成功。バリデーション失敗とレート制限超過のみ
// *model.APIErrorを返す。
func (s *Service) SubmitContact(ctx context.Context, identifier string, in validate.ContactInput) error {
	start := time.Now()
	defer func() {
		s.metrics.RecordSubmissionLatency(time.Since(start))
	}()

	if err := s.checkRateLimit(ctx, identifier, metrics.FormContact); err != nil {
		return err
	}

	sub, violations := validate.Contact(in)
	if len(violations) > 0 {
		s.metrics.RecordValidationFailure(metrics.FormContact)
		return model.NewValidationError("Invalid form data", violations)
	}

	// honeypotが埋まっていればボット送信。保存も通知もせず成功を装って破棄する。
	if sub.IsSpam() {
		s.metrics.RecordSpamDropped(metrics.FormContact)
		s.logger.Info("spam submission dropped",
			slog.String("form", metrics.FormContact),
			slog.String("identifier", identifier),
		)
		return nil
	}

	s.storeLead(ctx, sub)
	s.sendContactEmails(ctx, sub)

	s.metrics.RecordSubmissionAccepted(metrics.FormContact)
	s.logger.Info("contact submission accepted",
		slog.String("email", sub.Email),
		slog.String("service", string(sub.Service)),
	)
	return nil
}

// SubmitNewsletter はニュースレター購読の申込を処理する。
// 再購読も成功として扱い、歓迎メールを再送する。
func (s *Service) SubmitNewsletter(ctx context.Context, identifier string, in validate.NewsletterInput) error {
	start := time.Now()
	defer func() {
		s.metrics.RecordSubmissionLatency(time.Since(start))
	}()

	if err := s.checkRateLimit(ctx, identifier, metrics.FormNewsletter); err != nil {
		return err
	}

	sub, violations := validate.Newsletter(in)
	if len(violations) > 0 {
		s.metrics.RecordValidationFailure(metrics.FormNewsletter)
		return model.NewValidationError("Please enter a valid email address.", nil)
	}

	if sub.IsSpam() {
		s.metrics.RecordSpamDropped(metrics.FormNewsletter)
		s.logger.Info("spam submission dropped",
			slog.String("form", metrics.FormNewsletter),
			slog.String("identifier", identifier),
		)
		return nil
	}

	if err := s.subRepo.Upsert(ctx, sub.Email, time.Now()); err != nil {
		s.metrics.RecordStoreFailure(metrics.FormNewsletter)
		s.logger.Error("failed to store subscriber",
			slog.String("email", sub.Email),
			slog.String("error", err.Error()),
		)
	}

	s.sendEmail(ctx, metrics.EmailNewsletterWelcome, func() (email.Message, error) {
		return email.NewNewsletterWelcome(s.cfg.SiteName, sub.Email)
	})

	s.metrics.RecordSubmissionAccepted(metrics.FormNewsletter)
	s.logger.Info("newsletter subscription accepted", slog.String("email", sub.Email))
	return nil
}

// checkRateLimit はレート制限を検査する。バックエンドのエラーはフェイルオープン
// （許可）とする。制限器が落ちているあいだ正規の送信を拒否しないため。
func (s *Service) checkRateLimit(ctx context.Context, identifier, form string) error {
	allowed, err := s.limiter.Allow(ctx, identifier)
	if err != nil {
		s.metrics.RecordLimiterError(form)
		s.logger.Warn("rate limiter check failed, allowing request",
			slog.String("form", form),
			slog.String("identifier", identifier),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if !allowed {
		s.metrics.RecordRateLimitDenied(form)
		s.logger.Info("rate limit exceeded",
			slog.String("form", form),
			slog.String("identifier", identifier),
		)
		return model.NewRateLimitExceededError()
	}
	return nil
}

// storeLead は受理された問い合わせをリードとして保存する。ベストエフォート。
func (s *Service) storeLead(ctx context.Context, sub *model.ContactSubmission) {
	lead := &model.Lead{
		Name:        sub.Name,
		Email:       sub.Email,
		Company:     sub.Company,
		Service:     string(sub.Service),
		BudgetRange: string(sub.Budget),
		Message:     sub.Message,
		Source:      model.LeadSourceWebsite,
		Status:      model.LeadStatusNew,
	}
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		s.metrics.RecordStoreFailure(metrics.FormContact)
		s.logger.Error("failed to store lead",
			slog.String("email", sub.Email),
			slog.String("error", err.Error()),
		)
	}
}

// sendContactEmails は運用者への通知と送信者への受付確認の2通を送る。
// どちらかが失敗しても他方は送る。
func (s *Service) sendContactEmails(ctx context.Context, sub *model.ContactSubmission) {
	s.sendEmail(ctx, metrics.EmailLeadAlert, func() (email.Message, error) {
		return email.NewLeadAlert(s.cfg.SiteName, s.cfg.NotifyAddress, sub)
	})
	s.sendEmail(ctx, metrics.EmailLeadAck, func() (email.Message, error) {
		return email.NewLeadAck(s.cfg.SiteName, sub)
	})
}

// sendEmail はメールを1通組み立てて送信する。ベストエフォート。
func (s *Service) sendEmail(ctx context.Context, kind string, build func() (email.Message, error)) {
	msg, err := build()
	if err != nil {
		s.metrics.RecordEmailFailure(kind)
		s.logger.Error("failed to build email",
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.metrics.RecordEmailFailure(kind)
		s.logger.Error("failed to send email",
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
		return
	}
	s.metrics.RecordEmailSent(kind)
}
