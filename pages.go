package site

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brainbridge/site/views"
)

type marketingPage struct {
	Title       string
	Description string
	Body        views.MarketingPageData
}

// marketingPages holds the static pages listed in StaticPages, keyed by path.
var marketingPages = map[string]marketingPage{
	"features": {
		Title:       "Features",
		Description: "Attendance analytics, early-warning alerts and family outreach tools that help schools reduce chronic absenteeism.",
		Body: views.MarketingPageData{
			Heading: "Everything you need to get students back in class",
			Intro:   "BrainBridge turns daily attendance data into early warnings and coordinated outreach.",
			Sections: []views.Section{
				{Title: "Early-warning alerts", Body: "Spot students trending toward chronic absence weeks before they cross the threshold."},
				{Title: "Family outreach", Body: "Send multilingual messages and track every contact from one place."},
				{Title: "Attendance analytics", Body: "See patterns by grade, school and student group with dashboards built for educators."},
			},
			CTA: true,
		},
	},
	"solutions/k12-schools": {
		Title:       "K-12 Schools",
		Description: "Help every student show up: attendance intelligence for K-12 schools.",
		Body: views.MarketingPageData{
			Heading: "BrainBridge for K-12 schools",
			Intro:   "Give teachers, counselors and attendance teams a shared view of who needs support.",
			Sections: []views.Section{
				{Title: "Built for school teams", Body: "Assign follow-ups, log interventions and see what works for each student."},
			},
			CTA: true,
		},
	},
	"solutions/districts": {
		Title:       "Districts",
		Description: "District-wide attendance intelligence and reporting.",
		Body: views.MarketingPageData{
			Heading: "BrainBridge for districts",
			Intro:   "Compare schools, target resources and report progress on chronic absenteeism goals.",
			Sections: []views.Section{
				{Title: "District reporting", Body: "Roll up attendance trends across every school with consistent definitions."},
			},
			CTA: true,
		},
	},
	"solutions/community-organizations": {
		Title:       "Community Organizations",
		Description: "Partner with schools to support students and families.",
		Body: views.MarketingPageData{
			Heading: "BrainBridge for community organizations",
			Intro:   "Coordinate with school partners so families get support from the people they already trust.",
			Sections: []views.Section{
				{Title: "Shared caseloads", Body: "Work alongside school staff with permissioned access to the students you serve."},
			},
			CTA: true,
		},
	},
	"pricing": {
		Title:       "Pricing",
		Description: "Simple per-student pricing for schools, districts and community organizations.",
		Body: views.MarketingPageData{
			Heading: "Pricing",
			Intro:   "Plans scale with the number of students you serve. Request a demo for a quote.",
			CTA:     true,
		},
	},
	"about": {
		Title:       "About",
		Description: "BrainBridge helps schools prevent chronic absenteeism.",
		Body: views.MarketingPageData{
			Heading: "About BrainBridge",
			Intro:   "We build tools that help schools and families keep students engaged and in class.",
		},
	},
	"privacy": {
		Title:       "Privacy Policy",
		Description: "How BrainBridge collects, uses and protects information.",
		Body: views.MarketingPageData{
			Heading: "Privacy Policy",
			Sections: []views.Section{
				{Title: "Information we collect", Body: "Contact details you submit through our demo request form and anonymous usage analytics."},
				{Title: "How we use it", Body: "To respond to your request and improve our website. We do not sell personal information."},
			},
		},
	},
	"terms": {
		Title:       "Terms of Service",
		Description: "The terms that govern use of the BrainBridge website.",
		Body: views.MarketingPageData{
			Heading: "Terms of Service",
			Sections: []views.Section{
				{Title: "Use of this site", Body: "Content on this site is provided for information only and may change without notice."},
			},
		},
	},
}

func (a *App) setupMarketingRoutes() {
	for _, p := range StaticPages {
		page, ok := marketingPages[p.Path]
		if !ok {
			continue
		}
		a.Echo.GET("/"+p.Path+"/", a.marketingHandler(p.Path, page))
	}
}

func (a *App) marketingHandler(path string, page marketingPage) echo.HandlerFunc {
	segments := strings.Split(path, "/")
	return func(c echo.Context) error {
		meta := a.PageMeta(page.Title, page.Description, segments...)
		return a.renderPage(c, http.StatusOK, meta, views.MarketingPage(page.Body))
	}
}
