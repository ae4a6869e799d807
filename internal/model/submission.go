package model

// ServiceCategory は問い合わせフォームで選択できるサービス種別を表す。
// 閉じた列挙であり、定義外の値はバリデーションで拒否される（強制変換しない）。
type ServiceCategory string

const (
	ServiceWebDevelopment      ServiceCategory = "web-development"
	ServiceSEO                 ServiceCategory = "seo"
	ServiceSocialMedia         ServiceCategory = "social-media"
	ServiceBusinessDevelopment ServiceCategory = "business-development"
	ServiceFinance             ServiceCategory = "finance"
	ServiceMultiple            ServiceCategory = "multiple"
	ServiceOther               ServiceCategory = "other"
)

// serviceCategories は有効なサービス種別の集合。
var serviceCategories = map[ServiceCategory]struct{}{
	ServiceWebDevelopment:      {},
	ServiceSEO:                 {},
	ServiceSocialMedia:         {},
	ServiceBusinessDevelopment: {},
	ServiceFinance:             {},
	ServiceMultiple:            {},
	ServiceOther:               {},
}

// Valid はサービス種別が列挙に含まれるかを返す。
func (s ServiceCategory) Valid() bool {
	_, ok := serviceCategories[s]
	return ok
}

// BudgetRange は問い合わせフォームの予算帯を表す。任意項目。
type BudgetRange string

const (
	BudgetUnder5K BudgetRange = "<5k"
	Budget5To15K  BudgetRange = "5k-15k"
	Budget15To50K BudgetRange = "15k-50k"
	BudgetOver50K BudgetRange = "50k+"
	BudgetNotSure BudgetRange = "not-sure"
)

// budgetRanges は有効な予算帯の集合。
var budgetRanges = map[BudgetRange]struct{}{
	BudgetUnder5K: {},
	Budget5To15K:  {},
	Budget15To50K: {},
	BudgetOver50K: {},
	BudgetNotSure: {},
}

// Valid は予算帯が列挙に含まれるかを返す。
func (b BudgetRange) Valid() bool {
	_, ok := budgetRanges[b]
	return ok
}

// ContactSubmission はバリデーション済みの問い合わせフォーム送信を表す。
// バリデーション通過後は不変として扱う。全項目が受理されるか全体が拒否されるかの
// いずれかであり、部分的な永続化は行わない。
// Honeypotは正規ユーザーが入力しない隠しフィールドで、非空の場合はボット判定となる
// （バリデーション違反ではなくスパムフィルタで処理する）。
type ContactSubmission struct {
	Name     string
	Email    string
	Company  string // 任意
	Service  ServiceCategory
	Budget   BudgetRange // 任意（空文字列は未指定）
	Message  string
	Honeypot string
}

// IsSpam はhoneypotフィールドが埋められているか（＝ボット送信か）を返す。
func (s *ContactSubmission) IsSpam() bool {
	return s.Honeypot != ""
}

// NewsletterSubmission はバリデーション済みのニュースレター購読申込を表す。
type NewsletterSubmission struct {
	Email    string
	Honeypot string
}

// IsSpam はhoneypotフィールドが埋められているか（＝ボット送信か）を返す。
func (s *NewsletterSubmission) IsSpam() bool {
	return s.Honeypot != ""
}
