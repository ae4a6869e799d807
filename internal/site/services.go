package site

// Service は提供サービスの記述子。
type Service struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
}

var services = []Service{
	{
		Title:       "Web Development",
		Slug:        "web-development",
		Description: "Custom websites and web applications built with modern technologies that convert visitors into customers.",
		Icon:        "code",
		Features: []string{
			"Custom Website Design",
			"E-commerce Development",
			"Web Application Development",
			"Landing Page Optimization",
			"Performance Optimization",
			"Maintenance & Support",
		},
	},
	{
		Title:       "SEO",
		Slug:        "seo",
		Description: "Data-driven SEO strategies that improve your rankings, drive organic traffic, and deliver measurable ROI.",
		Icon:        "search",
		Features: []string{
			"Technical SEO Audit",
			"Keyword Research & Strategy",
			"On-Page Optimization",
			"Link Building",
			"Local SEO",
			"SEO Reporting & Analytics",
		},
	},
	{
		Title:       "Social Media",
		Slug:        "social-media",
		Description: "Strategic social media management that builds brand awareness, engages your audience, and drives growth.",
		Icon:        "share",
		Features: []string{
			"Social Media Strategy",
			"Content Creation",
			"Community Management",
			"Paid Social Campaigns",
			"Influencer Marketing",
			"Analytics & Reporting",
		},
	},
	{
		Title:       "Business Development",
		Slug:        "business-development",
		Description: "Strategic consulting to identify growth opportunities, optimize operations, and scale your business.",
		Icon:        "trending-up",
		Features: []string{
			"Market Research & Analysis",
			"Growth Strategy",
			"Sales Process Optimization",
			"Partnership Development",
			"Business Model Innovation",
			"Go-to-Market Strategy",
		},
	},
	{
		Title:       "Finance Consultancy",
		Slug:        "finance-consultancy",
		Description: "Expert financial guidance to help you make informed decisions, manage cash flow, and maximize profitability.",
		Icon:        "calculator",
		Features: []string{
			"Financial Planning",
			"Cash Flow Management",
			"Investment Advisory",
			"Tax Strategy",
			"Financial Modeling",
			"Fundraising Support",
		},
	},
}

// Services は全サービスを定義順で返す。
func Services() []Service {
	return services
}

// ServiceBySlug はスラッグでサービスを1件返す。見つからない場合はfalseを返す。
func ServiceBySlug(slug string) (Service, bool) {
	for _, s := range services {
		if s.Slug == slug {
			return s, true
		}
	}
	return Service{}, false
}
