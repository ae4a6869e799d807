package site

import "testing"

func TestMetadata_Defaults(t *testing.T) {
	meta := Metadata("")

	if meta.Name != "YourAgency" {
		t.Errorf("Name = %q, want YourAgency", meta.Name)
	}
	if meta.URL != defaultSiteURL {
		t.Errorf("URL = %q, want %q", meta.URL, defaultSiteURL)
	}
	if meta.Contact.Email != "hello@youragency.com" {
		t.Errorf("Contact.Email = %q", meta.Contact.Email)
	}
	if meta.Contact.Phone != "+1 (555) 000-0000" {
		t.Errorf("Contact.Phone = %q", meta.Contact.Phone)
	}
	if len(meta.Keywords) == 0 {
		t.Error("Keywords is empty")
	}
	for _, key := range []string{"twitter", "linkedin", "github", "instagram"} {
		if meta.Links[key] == "" {
			t.Errorf("Links missing %q", key)
		}
	}
}

func TestMetadata_OverridesURL(t *testing.T) {
	meta := Metadata("https://staging.youragency.com")

	if meta.URL != "https://staging.youragency.com" {
		t.Errorf("URL = %q, want override", meta.URL)
	}
}

func TestServices_ContainsAllOfferings(t *testing.T) {
	all := Services()
	if len(all) != 5 {
		t.Fatalf("len(Services()) = %d, want 5", len(all))
	}

	wantSlugs := []string{
		"web-development",
		"seo",
		"social-media",
		"business-development",
		"finance-consultancy",
	}
	for i, want := range wantSlugs {
		if all[i].Slug != want {
			t.Errorf("Services()[%d].Slug = %q, want %q", i, all[i].Slug, want)
		}
		if all[i].Title == "" || all[i].Description == "" {
			t.Errorf("service %q missing title or description", want)
		}
		if len(all[i].Features) == 0 {
			t.Errorf("service %q has no features", want)
		}
	}
}

func TestServiceBySlug(t *testing.T) {
	svc, ok := ServiceBySlug("seo")
	if !ok {
		t.Fatal("ServiceBySlug(seo) not found")
	}
	if svc.Title != "SEO" {
		t.Errorf("Title = %q, want SEO", svc.Title)
	}

	if _, ok := ServiceBySlug("space-travel"); ok {
		t.Error("ServiceBySlug(space-travel) = found, want not found")
	}
}

func TestCaseStudies_ContainsAllStudies(t *testing.T) {
	all := CaseStudies()
	if len(all) != 5 {
		t.Fatalf("len(CaseStudies()) = %d, want 5", len(all))
	}

	for _, cs := range all {
		if cs.Slug == "" || cs.Title == "" || cs.Client == "" {
			t.Errorf("case study %+v missing basic fields", cs)
		}
		if len(cs.Results) == 0 {
			t.Errorf("case study %q has no results", cs.Slug)
		}
	}
}

func TestCaseStudyBySlug(t *testing.T) {
	cs, ok := CaseStudyBySlug("ecommerce-revenue-3x")
	if !ok {
		t.Fatal("CaseStudyBySlug(ecommerce-revenue-3x) not found")
	}
	if cs.Client != "StyleHub" {
		t.Errorf("Client = %q, want StyleHub", cs.Client)
	}
	if cs.Testimonial == nil || cs.Testimonial.Author != "Jessica Martinez" {
		t.Errorf("Testimonial = %+v", cs.Testimonial)
	}

	if _, ok := CaseStudyBySlug("missing"); ok {
		t.Error("CaseStudyBySlug(missing) = found, want not found")
	}
}

func TestFeaturedCaseStudies(t *testing.T) {
	featured := FeaturedCaseStudies()
	if len(featured) != 3 {
		t.Fatalf("len(FeaturedCaseStudies()) = %d, want 3", len(featured))
	}
	for _, cs := range featured {
		if !cs.Featured {
			t.Errorf("case study %q is not featured", cs.Slug)
		}
	}
}

func TestCaseStudySlugs(t *testing.T) {
	slugs := CaseStudySlugs()
	if len(slugs) != len(CaseStudies()) {
		t.Fatalf("len(CaseStudySlugs()) = %d, want %d", len(slugs), len(CaseStudies()))
	}
	if slugs[0] != "ecommerce-revenue-3x" {
		t.Errorf("slugs[0] = %q", slugs[0])
	}
}
