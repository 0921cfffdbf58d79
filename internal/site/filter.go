package site

import (
	"net/url"
	"strings"

	"github.com/careerforge/careerforge/internal/domain"
)

// FilterAll is the select option that disables a categorical filter.
const FilterAll = "All"

// Filter narrows a company's open postings. The zero value (empty search,
// "All" everywhere) matches every job; criteria are AND-combined.
type Filter struct {
	Search          string
	Department      string
	Location        string
	EmploymentType  string
	WorkPolicy      string
	ExperienceLevel string
}

// FilterFromQuery reads the careers-page filter form. Absent parameters
// collapse to "All".
func FilterFromQuery(q url.Values) Filter {
	get := func(key string) string {
		v := strings.TrimSpace(q.Get(key))
		if v == "" {
			return FilterAll
		}
		return v
	}

	return Filter{
		Search:          strings.TrimSpace(q.Get("q")),
		Department:      get("department"),
		Location:        get("location"),
		EmploymentType:  get("job_type"),
		WorkPolicy:      get("work_policy"),
		ExperienceLevel: get("experience_level"),
	}
}

// IsEmpty reports whether no criterion is active.
func (f Filter) IsEmpty() bool {
	inactive := func(v string) bool { return v == "" || v == FilterAll }
	return f.Search == "" &&
		inactive(f.Department) &&
		inactive(f.Location) &&
		inactive(f.EmploymentType) &&
		inactive(f.WorkPolicy) &&
		inactive(f.ExperienceLevel)
}

// Matches reports whether the job satisfies every active criterion. The
// title search is a case-insensitive substring match; categorical filters
// compare exactly.
func (f Filter) Matches(j *domain.Job) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Department != "" && f.Department != FilterAll && j.Department != f.Department {
		return false
	}
	if f.Location != "" && f.Location != FilterAll && j.Location != f.Location {
		return false
	}
	if f.EmploymentType != "" && f.EmploymentType != FilterAll && j.EmploymentType != f.EmploymentType {
		return false
	}
	if f.WorkPolicy != "" && f.WorkPolicy != FilterAll && j.WorkPolicy != f.WorkPolicy {
		return false
	}
	if f.ExperienceLevel != "" && f.ExperienceLevel != FilterAll && j.ExperienceLevel != f.ExperienceLevel {
		return false
	}
	return true
}

// FilterJobs returns the jobs matching the filter, preserving input order.
func FilterJobs(list []*domain.Job, f Filter) []*domain.Job {
	out := make([]*domain.Job, 0, len(list))
	for _, j := range list {
		if f.Matches(j) {
			out = append(out, j)
		}
	}
	return out
}

// Facets holds the select options for each categorical filter, derived
// from the full (unfiltered) job list so narrowing one facet never hides
// the others' options.
type Facets struct {
	Departments      []string
	Locations        []string
	EmploymentTypes  []string
	WorkPolicies     []string
	ExperienceLevels []string
}

// BuildFacets collects the distinct values per attribute, "All" first,
// in first-seen order.
func BuildFacets(list []*domain.Job) Facets {
	return Facets{
		Departments:      distinct(list, func(j *domain.Job) string { return j.Department }),
		Locations:        distinct(list, func(j *domain.Job) string { return j.Location }),
		EmploymentTypes:  distinct(list, func(j *domain.Job) string { return j.EmploymentType }),
		WorkPolicies:     distinct(list, func(j *domain.Job) string { return j.WorkPolicy }),
		ExperienceLevels: distinct(list, func(j *domain.Job) string { return j.ExperienceLevel }),
	}
}

func distinct(list []*domain.Job, key func(*domain.Job) string) []string {
	seen := make(map[string]struct{}, len(list))
	out := []string{FilterAll}
	for _, j := range list {
		v := key(j)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
