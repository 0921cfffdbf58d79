// Package site renders the public, server-side half of the product: themed
// company careers pages, job detail pages with embedded structured data,
// and the sitemap.
package site

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/careerforge/careerforge/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type Renderer struct {
	careers *template.Template
	job     *template.Template
	baseURL string
}

// NewRenderer parses the embedded page templates. baseURL is the public
// origin, used for structured data; it may be empty for relative-only use.
func NewRenderer(baseURL string) (*Renderer, error) {
	careers, err := template.ParseFS(templateFS, "templates/careers.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("site.NewRenderer: %w", err)
	}

	job, err := template.ParseFS(templateFS, "templates/job.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("site.NewRenderer: %w", err)
	}

	return &Renderer{careers: careers, job: job, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

type careersData struct {
	Company *domain.Company
	Jobs    []*domain.Job
	Filter  Filter
	Facets  Facets
	Year    int
}

// Careers renders the company page: themed header, content sections in
// order, the filterable open-roles list and footer.
func (r *Renderer) Careers(w io.Writer, company *domain.Company, open []*domain.Job, f Filter) error {
	company.Theme.ApplyDefaults()
	company.SortSections()

	data := careersData{
		Company: company,
		Jobs:    FilterJobs(open, f),
		Filter:  f,
		Facets:  BuildFacets(open),
		Year:    time.Now().Year(),
	}

	if err := r.careers.Execute(w, data); err != nil {
		return fmt.Errorf("site.Renderer.Careers: %w", err)
	}
	return nil
}

type jobData struct {
	Company  *domain.Company
	Job      *domain.Job
	ApplyURL string
	JSONLD   template.JS
}

// Job renders a single posting with its JSON-LD JobPosting block.
func (r *Renderer) Job(w io.Writer, company *domain.Company, job *domain.Job) error {
	company.Theme.ApplyDefaults()

	ld, err := jobPostingLD(r.baseURL, company, job)
	if err != nil {
		return fmt.Errorf("site.Renderer.Job: %w", err)
	}

	data := jobData{
		Company:  company,
		Job:      job,
		ApplyURL: applyMailto(company, job),
		JSONLD:   template.JS(ld), //nolint:gosec // G203: marshaled by encoding/json, which escapes <, > and &
	}

	if err := r.job.Execute(w, data); err != nil {
		return fmt.Errorf("site.Renderer.Job: %w", err)
	}
	return nil
}

func applyMailto(company *domain.Company, job *domain.Job) string {
	addr := strings.ReplaceAll(strings.ToLower(company.Name), " ", "") + "@example.com"
	return "mailto:" + addr + "?subject=" + url.QueryEscape("Application for "+job.Title)
}

// jobPostingValidity is how long a posting stays advertised as open in
// structured data after being posted.
const jobPostingValidity = 3 // months

type organizationLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Logo string `json:"logo,omitempty"`
}

type addressLD struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality"`
}

type placeLD struct {
	Type    string    `json:"@type"`
	Address addressLD `json:"address"`
}

type jobPostingLDPayload struct {
	Context            string         `json:"@context"`
	Type               string         `json:"@type"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	DatePosted         string         `json:"datePosted"`
	ValidThrough       string         `json:"validThrough"`
	EmploymentType     string         `json:"employmentType"`
	HiringOrganization organizationLD `json:"hiringOrganization"`
	JobLocation        placeLD        `json:"jobLocation"`
	BaseSalary         string         `json:"baseSalary,omitempty"`
	ExperienceLevel    string         `json:"experienceRequirements,omitempty"`
	URL                string         `json:"url,omitempty"`
}

func jobPostingLD(baseURL string, company *domain.Company, job *domain.Job) ([]byte, error) {
	var pageURL, orgURL string
	if baseURL != "" {
		orgURL = baseURL + "/" + company.Slug + "/careers"
		pageURL = orgURL + "/" + job.Slug
	}

	payload := jobPostingLDPayload{
		Context:        "https://schema.org",
		Type:           "JobPosting",
		Title:          job.Title,
		Description:    job.Description,
		DatePosted:     job.PostedAt.Format("2006-01-02"),
		ValidThrough:   job.PostedAt.AddDate(0, jobPostingValidity, 0).Format("2006-01-02"),
		EmploymentType: job.EmploymentType,
		HiringOrganization: organizationLD{
			Type: "Organization",
			Name: company.Name,
			URL:  orgURL,
			Logo: company.LogoURL,
		},
		JobLocation: placeLD{
			Type:    "Place",
			Address: addressLD{Type: "PostalAddress", AddressLocality: job.Location},
		},
		BaseSalary:      job.SalaryRange,
		ExperienceLevel: job.ExperienceLevel,
		URL:             pageURL,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("site.jobPostingLD: %w", err)
	}
	return b, nil
}
