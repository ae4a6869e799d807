package site

// CaseStudyResult は導入事例の成果指標（施策前後の比較）。
type CaseStudyResult struct {
	Metric string `json:"metric"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Testimonial はクライアントからの推薦コメント。
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
}

// CaseStudy は導入事例の記述子。
type CaseStudy struct {
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Client      string            `json:"client"`
	Industry    string            `json:"industry"`
	Services    []string          `json:"services"`
	Excerpt     string            `json:"excerpt"`
	Challenge   string            `json:"challenge"`
	Solution    string            `json:"solution"`
	Results     []CaseStudyResult `json:"results"`
	Testimonial *Testimonial      `json:"testimonial"`
	Featured    bool              `json:"featured"`
}

var caseStudies = []CaseStudy{
	{
		Title:    "E-commerce Revenue Grew 3x in 6 Months",
		Slug:     "ecommerce-revenue-3x",
		Client:   "StyleHub",
		Industry: "E-commerce / Fashion",
		Services: []string{"web-development", "seo", "social-media"},
		Excerpt:  "A complete digital overhaul that transformed a struggling online store into a revenue-generating machine.",
		Challenge: "StyleHub had a slow, outdated website with poor mobile experience and virtually no organic traffic. " +
			"Their conversion rate was below 1% and they were entirely dependent on paid ads for sales.",
		Solution: "We rebuilt their entire e-commerce platform on a modern stack with blazing-fast performance. " +
			"Simultaneously, we launched an aggressive SEO campaign targeting high-intent product keywords and " +
			"built a social media presence that drove engaged traffic back to the store.",
		Results: []CaseStudyResult{
			{Metric: "Revenue", Before: "$45K/mo", After: "$142K/mo"},
			{Metric: "Organic Traffic", Before: "1,200/mo", After: "18,500/mo"},
			{Metric: "Conversion Rate", Before: "0.8%", After: "3.2%"},
			{Metric: "Page Load Time", Before: "6.2s", After: "1.4s"},
		},
		Testimonial: &Testimonial{
			Quote:  "They didn't just build us a website, they built us a business. The results speak for themselves. Best investment we've ever made.",
			Author: "Jessica Martinez",
			Role:   "Founder, StyleHub",
		},
		Featured: true,
	},
	{
		Title:    "SaaS Startup: From 0 to 10K Organic Visitors",
		Slug:     "saas-seo-growth",
		Client:   "CloudMetrics",
		Industry: "SaaS / Technology",
		Services: []string{"seo", "web-development"},
		Excerpt:  "A targeted SEO strategy that established a new SaaS product as an authority in their niche within 8 months.",
		Challenge: "CloudMetrics was a new SaaS product with zero domain authority and no organic presence. " +
			"They were spending $15K/month on Google Ads with diminishing returns and needed a sustainable traffic source.",
		Solution: "We developed a comprehensive content strategy targeting the entire buyer journey, from awareness to decision. " +
			"We built a resource hub with in-depth guides, comparison pages, and technical documentation, all optimized for search.",
		Results: []CaseStudyResult{
			{Metric: "Organic Traffic", Before: "0/mo", After: "10,200/mo"},
			{Metric: "Domain Authority", Before: "0", After: "34"},
			{Metric: "Ranking Keywords", Before: "0", After: "850+"},
			{Metric: "Ad Spend Saved", Before: "$15K/mo", After: "$5K/mo"},
		},
		Testimonial: &Testimonial{
			Quote:  "Our organic channel now drives more signups than paid ads at a fraction of the cost. The ROI has been incredible.",
			Author: "Ryan Park",
			Role:   "CEO, CloudMetrics",
		},
		Featured: true,
	},
	{
		Title:    "Local Business Dominates City Search Results",
		Slug:     "local-business-seo",
		Client:   "Premier Dental",
		Industry: "Healthcare / Dental",
		Services: []string{"seo", "web-development"},
		Excerpt:  "Local SEO strategy that made a dental practice the #1 result in their city for all major keywords.",
		Challenge: "Premier Dental was invisible in local search results despite being one of the best practices in the city. " +
			"New patient inquiries were declining and competitors were dominating Google Maps.",
		Solution: "We redesigned their website with a local SEO focus, optimized their Google Business Profile, built local " +
			"citations, implemented review generation campaigns, and created location-specific content targeting every service they offer.",
		Results: []CaseStudyResult{
			{Metric: "Google Maps Ranking", Before: "Not ranked", After: "#1 for 12 keywords"},
			{Metric: "Monthly Inquiries", Before: "15/mo", After: "65/mo"},
			{Metric: "Website Traffic", Before: "800/mo", After: "4,200/mo"},
			{Metric: "Google Reviews", Before: "23", After: "180+"},
		},
		Testimonial: &Testimonial{
			Quote:  "We went from barely getting any calls to being fully booked three weeks out. They completely transformed our online presence.",
			Author: "Dr. Sarah Mitchell",
			Role:   "Owner, Premier Dental",
		},
		Featured: true,
	},
	{
		Title:    "Restaurant Chain Social Media Transformation",
		Slug:     "restaurant-social-media",
		Client:   "Fuego Kitchen",
		Industry: "Food & Beverage",
		Services: []string{"social-media"},
		Excerpt:  "A social media strategy that turned a local restaurant into a regional brand with a cult following.",
		Challenge: "Fuego Kitchen had 3 locations but minimal social media presence. Their Instagram had 500 followers with " +
			"almost no engagement, and they weren't leveraging social media for customer acquisition at all.",
		Solution: "We created a content strategy centered around behind-the-scenes kitchen content, chef stories, and " +
			"user-generated content campaigns. We launched a micro-influencer program and ran targeted campaigns around new menu launches.",
		Results: []CaseStudyResult{
			{Metric: "Instagram Followers", Before: "500", After: "28,000"},
			{Metric: "Monthly Engagement", Before: "50", After: "12,000+"},
			{Metric: "In-Store Traffic", Before: "Baseline", After: "+40%"},
			{Metric: "UGC Posts/Month", Before: "2", After: "150+"},
		},
		Testimonial: &Testimonial{
			Quote:  "People now come to our restaurants because they saw us on Instagram. Social media went from an afterthought to our biggest marketing channel.",
			Author: "Marco Rivera",
			Role:   "Co-founder, Fuego Kitchen",
		},
		Featured: false,
	},
	{
		Title:    "Startup Raises $2M After Financial Restructuring",
		Slug:     "startup-fundraising",
		Client:   "GreenLoop",
		Industry: "CleanTech / Startup",
		Services: []string{"finance", "business-development"},
		Excerpt:  "Financial modeling and business strategy that helped a cleantech startup secure Series A funding.",
		Challenge: "GreenLoop had a great product but messy financials, no clear unit economics, and a pitch that wasn't " +
			"resonating with investors. They had been rejected by 15 VCs.",
		Solution: "We restructured their financial model, clarified unit economics, built investor-ready projections, and " +
			"refined their pitch narrative. We also introduced them to our network of climate-focused investors.",
		Results: []CaseStudyResult{
			{Metric: "Funding Raised", Before: "$0", After: "$2M Series A"},
			{Metric: "Investor Meetings", Before: "2/month", After: "8/month"},
			{Metric: "Burn Rate", Before: "$120K/mo", After: "$75K/mo"},
			{Metric: "Runway", Before: "4 months", After: "18 months"},
		},
		Testimonial: &Testimonial{
			Quote:  "They didn't just fix our financials, they changed how we think about our business. We closed our round in 6 weeks after working with them.",
			Author: "Aisha Thompson",
			Role:   "CEO, GreenLoop",
		},
		Featured: false,
	},
}

// CaseStudies は全導入事例を定義順で返す。
func CaseStudies() []CaseStudy {
	return caseStudies
}

// CaseStudyBySlug はスラッグで導入事例を1件返す。見つからない場合はfalseを返す。
func CaseStudyBySlug(slug string) (CaseStudy, bool) {
	for _, cs := range caseStudies {
		if cs.Slug == slug {
			return cs, true
		}
	}
	return CaseStudy{}, false
}

// FeaturedCaseStudies は注目フラグ付きの導入事例のみを返す。
func FeaturedCaseStudies() []CaseStudy {
	featured := make([]CaseStudy, 0, len(caseStudies))
	for _, cs := range caseStudies {
		if cs.Featured {
			featured = append(featured, cs)
		}
	}
	return featured
}

// CaseStudySlugs は全導入事例のスラッグを返す。
func CaseStudySlugs() []string {
	slugs := make([]string, len(caseStudies))
	for i, cs := range caseStudies {
		slugs[i] = cs.Slug
	}
	return slugs
}
