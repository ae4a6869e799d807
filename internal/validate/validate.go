// Package validate はフォーム送信ペイロードのスキーマ検証と正規化を提供する。
//
// 検証は純粋関数であり、I/Oを行わない。入力はすべてのフィールド制約に対して
// 検査され、違反があれば最初の1件ではなく全件を列挙して返す。
// 列挙型（サービス種別・予算帯）は閉じた集合で、定義外の値は拒否される。
// honeypotは検証違反として扱わない。スパム判定はパイプライン側の責務であり、
// ボットに罠フィールドの存在を悟らせないため検証は成功させる。
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/hitoshi/leadman/internal/model"
)

const (
	nameMinLen    = 2
	nameMaxLen    = 100
	messageMinLen = 10
	messageMaxLen = 2000
)

// ContactInput は問い合わせフォームの生のリクエストボディを表す。
type ContactInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Service  string `json:"service"`
	Budget   string `json:"budget"`
	Message  string `json:"message"`
	Honeypot string `json:"honeypot"`
}

// NewsletterInput はニュースレター購読フォームの生のリクエストボディを表す。
type NewsletterInput struct {
	Email    string `json:"email"`
	Honeypot string `json:"honeypot"`
}

// Violations はフィールド名から違反メッセージ一覧へのマップ。
type Violations map[string][]string

func (v Violations) add(field, message string) {
	v[field] = append(v[field], message)
}

// Contact は問い合わせ送信を検証し、正規化済みのContactSubmissionを返す。
// 違反がある場合はnilと全違反の一覧を返す。部分的な成功はない。
func Contact(in ContactInput) (*model.ContactSubmission, Violations) {
	violations := Violations{}

	name := strings.TrimSpace(in.Name)
	if l := utf8.RuneCountInString(name); l < nameMinLen {
		violations.add("name", fmt.Sprintf("must be at least %d characters", nameMinLen))
	} else if l > nameMaxLen {
		violations.add("name", fmt.Sprintf("must be at most %d characters", nameMaxLen))
	}

	email, ok := normalizeEmail(in.Email)
	if !ok {
		violations.add("email", "must be a valid email address")
	}

	service := model.ServiceCategory(strings.TrimSpace(in.Service))
	if !service.Valid() {
		violations.add("service", "must be one of: web-development, seo, social-media, business-development, finance, multiple, other")
	}

	budget := model.BudgetRange(strings.TrimSpace(in.Budget))
	if budget != "" && !budget.Valid() {
		violations.add("budget", "must be one of: <5k, 5k-15k, 15k-50k, 50k+, not-sure")
	}

	message := strings.TrimSpace(in.Message)
	if l := utf8.RuneCountInString(message); l < messageMinLen {
		violations.add("message", fmt.Sprintf("must be at least %d characters", messageMinLen))
	} else if l > messageMaxLen {
		violations.add("message", fmt.Sprintf("must be at most %d characters", messageMaxLen))
	}

	if len(violations) > 0 {
		return nil, violations
	}

	return &model.ContactSubmission{
		Name:     name,
		Email:    email,
		Company:  strings.TrimSpace(in.Company),
		Service:  service,
		Budget:   budget,
		Message:  message,
		Honeypot: in.Honeypot,
	}, nil
}

// Newsletter はニュースレター購読申込を検証し、正規化済みの
// NewsletterSubmissionを返す。違反がある場合はnilと違反一覧を返す。
func Newsletter(in NewsletterInput) (*model.NewsletterSubmission, Violations) {
	violations := Violations{}

	email, ok := normalizeEmail(in.Email)
	if !ok {
		violations.add("email", "must be a valid email address")
	}

	if len(violations) > 0 {
		return nil, violations
	}

	return &model.NewsletterSubmission{
		Email:    email,
		Honeypot: in.Honeypot,
	}, nil
}

// normalizeEmail はメールアドレスの構文を検証し、正規化した値を返す。
// 表示名付きの形式（"Name <a@b.com>"）はフォーム入力として不正とみなす。
// 小文字化までが正規化の範囲。購読者のUPSERTはemailをユニークキーとするため、
// 大文字小文字だけが異なる入力が別行にならないことをここで保証する。
func normalizeEmail(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", false
	}

	return strings.ToLower(addr.Address), true
}
