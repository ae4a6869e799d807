package email

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/hitoshi/leadman/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates は埋め込みHTMLテンプレートをパッケージ初期化時にパースしたもの。
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// leadAlertData はlead_alert.htmlのテンプレートデータ。
type leadAlertData struct {
	Name    string
	Email   string
	Company string
	Service string
	Budget  string
	Message string
}

// teamData はlead_ack.html / newsletter_welcome.htmlのテンプレートデータ。
type teamData struct {
	Name     string
	SiteName string
}

func render(name string, data any) (string, error) {
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", name, err)
	}
	return buf.String(), nil
}

// NewLeadAlert は新規リードを運用者へ通知するメールを組み立てる。
// 任意項目が未入力の場合はプレースホルダー文字列で埋める。
func NewLeadAlert(siteName, notifyAddress string, sub *model.ContactSubmission) (Message, error) {
	data := leadAlertData{
		Name:    sub.Name,
		Email:   sub.Email,
		Company: sub.Company,
		Service: string(sub.Service),
		Budget:  string(sub.Budget),
		Message: sub.Message,
	}
	if data.Company == "" {
		data.Company = "N/A"
	}
	if data.Budget == "" {
		data.Budget = "Not specified"
	}

	html, err := render("lead_alert.html", data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{notifyAddress},
		Subject: fmt.Sprintf("New Lead: %s - %s", sub.Name, sub.Service),
		HTML:    html,
	}, nil
}

// NewLeadAck は問い合わせ送信者への受付確認メールを組み立てる。
func NewLeadAck(siteName string, sub *model.ContactSubmission) (Message, error) {
	html, err := render("lead_ack.html", teamData{Name: sub.Name, SiteName: siteName})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{sub.Email},
		Subject: fmt.Sprintf("We received your message - %s", siteName),
		HTML:    html,
	}, nil
}

// NewNewsletterWelcome はニュースレター購読者への歓迎メールを組み立てる。
// 再購読時にも同じメールを再送する。
func NewNewsletterWelcome(siteName, to string) (Message, error) {
	html, err := render("newsletter_welcome.html", teamData{SiteName: siteName})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Welcome to the %s Newsletter!", siteName),
		HTML:    html,
	}, nil
}
