package site

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/careerforge/careerforge/internal/domain"
)

type sitemapURL struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod"`
	ChangeFreq string   `xml:"changefreq"`
	Priority   string   `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// BuildSitemap emits the XML sitemap: the root, one entry per company
// careers page, and one per open job page. Crawl hints follow how often
// each page class actually changes.
func BuildSitemap(baseURL string, companies []*domain.Company, jobs []*domain.JobWithCompany, now time.Time) ([]byte, error) {
	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{{
			Loc:        baseURL,
			LastMod:    now.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "1.0",
		}},
	}

	for _, c := range companies {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + "/" + c.Slug + "/careers",
			LastMod:    c.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	for _, j := range jobs {
		if j.CompanySlug == "" {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + "/" + j.CompanySlug + "/careers/" + j.Slug,
			LastMod:    j.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "daily",
			Priority:   "0.9",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("site.BuildSitemap: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}
