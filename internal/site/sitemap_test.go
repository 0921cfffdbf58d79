package site_test

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforge/careerforge/internal/domain"
	"github.com/careerforge/careerforge/internal/site"
)

func TestBuildSitemap(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	companies := []*domain.Company{
		{Slug: "acme-robotics", UpdatedAt: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)},
		{Slug: "globex", UpdatedAt: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)},
	}
	jobs := []*domain.JobWithCompany{
		{Job: domain.Job{Slug: "backend-engineer", UpdatedAt: time.Date(2026, 5, 28, 0, 0, 0, 0, time.UTC)}, CompanySlug: "acme-robotics"},
		{Job: domain.Job{Slug: "orphaned-job"}, CompanySlug: ""},
	}

	payload, err := site.BuildSitemap("https://careers.example.com", companies, jobs, now)
	require.NoError(t, err)

	var set struct {
		XMLName xml.Name `xml:"urlset"`
		URLs    []struct {
			Loc        string `xml:"loc"`
			LastMod    string `xml:"lastmod"`
			ChangeFreq string `xml:"changefreq"`
			Priority   string `xml:"priority"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(payload, &set))

	// Root + two companies + one job; the entry without a company slug is
	// skipped rather than emitting a broken URL.
	require.Len(t, set.URLs, 4)

	root := set.URLs[0]
	assert.Equal(t, "https://careers.example.com", root.Loc)
	assert.Equal(t, "monthly", root.ChangeFreq)
	assert.Equal(t, "1.0", root.Priority)

	company := set.URLs[1]
	assert.Equal(t, "https://careers.example.com/acme-robotics/careers", company.Loc)
	assert.Equal(t, "2026-05-20", company.LastMod)
	assert.Equal(t, "weekly", company.ChangeFreq)
	assert.Equal(t, "0.8", company.Priority)

	jobEntry := set.URLs[3]
	assert.Equal(t, "https://careers.example.com/acme-robotics/careers/backend-engineer", jobEntry.Loc)
	assert.Equal(t, "daily", jobEntry.ChangeFreq)
	assert.Equal(t, "0.9", jobEntry.Priority)

	assert.Contains(t, string(payload), `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.NotContains(t, string(payload), "orphaned-job")
}
