package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careerforge/careerforge/internal/domain"
	redisstore "github.com/careerforge/careerforge/internal/store/redis"
)

// JobFinder resolves a public job by slug, with an id fallback for old
// links. *jobs.Service satisfies this interface.
type JobFinder interface {
	GetPublic(ctx context.Context, companyID uuid.UUID, slugOrID string) (*domain.Job, error)
}

// Handler serves the public HTML routes. The page cache may be nil.
type Handler struct {
	companies domain.CompanyRepository
	jobs      domain.JobRepository
	finder    JobFinder
	cache     *redisstore.PageCache
	renderer  *Renderer
	baseURL   string
}

func NewHandler(companies domain.CompanyRepository, jobs domain.JobRepository, finder JobFinder, cache *redisstore.PageCache, baseURL string) (*Handler, error) {
	renderer, err := NewRenderer(baseURL)
	if err != nil {
		return nil, err
	}

	return &Handler{
		companies: companies,
		jobs:      jobs,
		finder:    finder,
		cache:     cache,
		renderer:  renderer,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}, nil
}

// Routes mounts the public pages on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/sitemap.xml", h.sitemap)
	r.Get("/{companySlug}/careers", h.careersPage)
	r.Get("/{companySlug}/careers/{jobSlug}", h.jobPage)
}

func (h *Handler) careersPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := strings.ToLower(chi.URLParam(r, "companySlug"))
	f := FilterFromQuery(r.URL.Query())

	// Only the unfiltered page is cached; filtered variants are cheap and
	// unbounded in key space.
	cacheKey := ""
	if f.IsEmpty() {
		cacheKey = redisstore.Key(slug, "careers")
		if h.serveCached(w, r, cacheKey) {
			return
		}
	}

	company, err := h.companies.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Str("company", slug).Msg("careers page: company lookup failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	open, err := h.jobs.ListByCompany(ctx, company.ID, false)
	if err != nil {
		log.Error().Err(err).Str("company", slug).Msg("careers page: job listing failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Careers(&buf, company, open, f); err != nil {
		log.Error().Err(err).Str("company", slug).Msg("careers page: render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.storeCached(ctx, cacheKey, buf.Bytes())
	writeHTML(w, buf.Bytes())
}

func (h *Handler) jobPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	companySlug := strings.ToLower(chi.URLParam(r, "companySlug"))
	jobSlug := strings.ToLower(chi.URLParam(r, "jobSlug"))

	cacheKey := redisstore.Key(companySlug, "job", jobSlug)
	if h.serveCached(w, r, cacheKey) {
		return
	}

	company, err := h.companies.GetBySlug(ctx, companySlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Str("company", companySlug).Msg("job page: company lookup failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	job, err := h.finder.GetPublic(ctx, company.ID, jobSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Str("company", companySlug).Str("job", jobSlug).Msg("job page: lookup failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Job(&buf, company, job); err != nil {
		log.Error().Err(err).Str("company", companySlug).Str("job", jobSlug).Msg("job page: render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.storeCached(ctx, cacheKey, buf.Bytes())
	writeHTML(w, buf.Bytes())
}

func (h *Handler) sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if payload, found, err := h.cache.Get(ctx, redisstore.SitemapKey); err != nil {
		log.Warn().Err(err).Msg("sitemap: cache read failed")
	} else if found {
		writeXML(w, payload)
		return
	}

	companies, err := h.companies.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sitemap: company listing failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	jobs, err := h.jobs.ListOpenWithCompanySlug(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sitemap: job listing failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	payload, err := BuildSitemap(h.baseURL, companies, jobs, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("sitemap: build failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Set(ctx, redisstore.SitemapKey, payload); err != nil {
		log.Warn().Err(err).Msg("sitemap: cache write failed")
	}

	writeXML(w, payload)
}

// serveCached writes a cache hit and reports whether it did.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if key == "" {
		return false
	}

	payload, found, err := h.cache.Get(r.Context(), key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("page cache read failed")
		return false
	}
	if !found {
		return false
	}

	writeHTML(w, payload)
	return true
}

func (h *Handler) storeCached(ctx context.Context, key string, payload []byte) {
	if key == "" {
		return
	}
	if err := h.cache.Set(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("page cache write failed")
	}
}

func writeHTML(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(payload)
}

func writeXML(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(payload)
}
