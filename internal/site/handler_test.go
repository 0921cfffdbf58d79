package site_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforge/careerforge/internal/domain"
	"github.com/careerforge/careerforge/internal/site"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockCompanyRepo struct {
	getBySlugFunc func(ctx context.Context, slug string) (*domain.Company, error)
	listFunc      func(ctx context.Context) ([]*domain.Company, error)
}

func (m *mockCompanyRepo) Create(context.Context, *domain.Company) error { panic("unused") }
func (m *mockCompanyRepo) GetByID(context.Context, uuid.UUID) (*domain.Company, error) {
	panic("unused")
}
func (m *mockCompanyRepo) GetByEmail(context.Context, string) (*domain.Company, error) {
	panic("unused")
}
func (m *mockCompanyRepo) Update(context.Context, uuid.UUID, domain.CompanyUpdate) (*domain.Company, error) {
	panic("unused")
}

func (m *mockCompanyRepo) GetBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	return m.getBySlugFunc(ctx, slug)
}

func (m *mockCompanyRepo) List(ctx context.Context) ([]*domain.Company, error) {
	return m.listFunc(ctx)
}

type mockJobRepo struct {
	listByCompanyFunc func(ctx context.Context, companyID uuid.UUID, includeClosed bool) ([]*domain.Job, error)
	listOpenFunc      func(ctx context.Context) ([]*domain.JobWithCompany, error)
}

func (m *mockJobRepo) Create(context.Context, *domain.Job) error { panic("unused") }
func (m *mockJobRepo) GetByID(context.Context, uuid.UUID) (*domain.Job, error) {
	panic("unused")
}
func (m *mockJobRepo) GetOpenBySlug(context.Context, uuid.UUID, string) (*domain.Job, error) {
	panic("unused")
}
func (m *mockJobRepo) SlugExists(context.Context, uuid.UUID, string) (bool, error) {
	panic("unused")
}
func (m *mockJobRepo) Update(context.Context, uuid.UUID, uuid.UUID, domain.JobUpdate) (*domain.Job, error) {
	panic("unused")
}
func (m *mockJobRepo) Delete(context.Context, uuid.UUID, uuid.UUID) (*domain.Job, error) {
	panic("unused")
}

func (m *mockJobRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, includeClosed bool) ([]*domain.Job, error) {
	return m.listByCompanyFunc(ctx, companyID, includeClosed)
}

func (m *mockJobRepo) ListOpenWithCompanySlug(ctx context.Context) ([]*domain.JobWithCompany, error) {
	return m.listOpenFunc(ctx)
}

type mockFinder struct {
	getPublicFunc func(ctx context.Context, companyID uuid.UUID, slugOrID string) (*domain.Job, error)
}

func (m *mockFinder) GetPublic(ctx context.Context, companyID uuid.UUID, slugOrID string) (*domain.Job, error) {
	return m.getPublicFunc(ctx, companyID, slugOrID)
}

func newRouter(t *testing.T, companies domain.CompanyRepository, jobs domain.JobRepository, finder site.JobFinder) *chi.Mux {
	t.Helper()

	h, err := site.NewHandler(companies, jobs, finder, nil, "https://careers.example.com")
	require.NoError(t, err)

	r := chi.NewRouter()
	h.Routes(r)
	return r
}

// ---------------------------------------------------------------------------
// GET /{companySlug}/careers
// ---------------------------------------------------------------------------

func TestCareersPage(t *testing.T) {
	t.Parallel()

	company := fixtureCompany()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		companies := &mockCompanyRepo{
			getBySlugFunc: func(_ context.Context, slug string) (*domain.Company, error) {
				require.Equal(t, "acme-robotics", slug)
				return company, nil
			},
		}
		jobs := &mockJobRepo{
			listByCompanyFunc: func(_ context.Context, companyID uuid.UUID, includeClosed bool) ([]*domain.Job, error) {
				assert.Equal(t, company.ID, companyID)
				assert.False(t, includeClosed, "public page never lists closed jobs")
				return []*domain.Job{{Title: "Backend Engineer", Slug: "backend-engineer", Department: "Engineering"}}, nil
			},
		}

		router := newRouter(t, companies, jobs, &mockFinder{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/acme-robotics/careers", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "Backend Engineer")
		assert.Contains(t, rec.Body.String(), "Welcome to Acme Robotics")
	})

	t.Run("slug_is_lowercased", func(t *testing.T) {
		t.Parallel()

		companies := &mockCompanyRepo{
			getBySlugFunc: func(_ context.Context, slug string) (*domain.Company, error) {
				require.Equal(t, "acme-robotics", slug)
				return company, nil
			},
		}
		jobs := &mockJobRepo{
			listByCompanyFunc: func(_ context.Context, _ uuid.UUID, _ bool) ([]*domain.Job, error) {
				return nil, nil
			},
		}

		router := newRouter(t, companies, jobs, &mockFinder{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Acme-Robotics/careers", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown_company_404", func(t *testing.T) {
		t.Parallel()

		companies := &mockCompanyRepo{
			getBySlugFunc: func(_ context.Context, _ string) (*domain.Company, error) {
				return nil, domain.ErrNotFound
			},
		}

		router := newRouter(t, companies, &mockJobRepo{}, &mockFinder{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-co/careers", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("filtered_view", func(t *testing.T) {
		t.Parallel()

		companies := &mockCompanyRepo{
			getBySlugFunc: func(_ context.Context, _ string) (*domain.Company, error) {
				return company, nil
			},
		}
		jobs := &mockJobRepo{
			listByCompanyFunc: func(_ context.Context, _ uuid.UUID, _ bool) ([]*domain.Job, error) {
				return []*domain.Job{
					{Title: "Backend Engineer", Slug: "backend-engineer", Department: "Engineering"},
					{Title: "Sales Lead", Slug: "sales-lead", Department: "Sales"},
				}, nil
			},
		}

		router := newRouter(t, companies, jobs, &mockFinder{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/acme-robotics/careers?department=Sales", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/careers/sales-lead")
		assert.NotContains(t, rec.Body.String(), "/careers/backend-engineer")
	})

	// A posting that gets closed stops appearing on the public page on the
	// next render.
	t.Run("closed_job_disappears", func(t *testing.T) {
		t.Parallel()

		listing := []*domain.Job{
			{Title: "Backend Engineer", Slug: "backend-engineer", IsOpen: true},
		}
		companies := &mockCompanyRepo{
			getBySlugFunc: func(_ context.Context, _ string) (*domain.Company, error) {
				return company, nil
			},
		}
		jobs := &mockJobRepo{
			listByCompanyFunc: func(_ context.Context, _ uuid.UUID, _ bool) ([]*domain.Job, error) {
				open := make([]*domain.Job, 0, len(listing))
				for _, j := range listing {
					if j.IsOpen {
						open = append(open, j)
					}
				}
				return open, nil
			},
		}

		router := newRouter(t, companies, jobs, &mockFinder{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/acme-robotics/careers", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Backend Engineer")

		listing[0].IsOpen = false

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/acme-robotics/careers", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Backend Engineer")
		assert.Contains(t, rec.Body.String(), "No open positions")
	})
}

// ---------------------------------------------------------------------------
// GET /{companySlug}/careers/{jobSlug}
// ---------------------------------------------------------------------------

func TestJobPage(t *testing.T) {
	t.Parallel()

	company := fixtureCompany()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		companies := &mockCompanyRepo{
			getBySlugFunc: func(_ context.Context, _ string) (*domain.Company, error) {
				return company, nil
			},
		}
		finder := &mockFinder{
			getPublicFunc: func(_ context.Context, companyID uuid.UUID, slugOrID string) (*domain.Job, error) {
				assert.Equal(t, company.ID, companyID)
				assert.Equal(t, "backend-engineer", slugOrID)
				return &domain.Job{
					Title: "Backend Engineer", Slug: "backend-engineer",
					Department: "Engineering", Location: "Berlin",
					EmploymentType: "Full Time", IsOpen: true,
				}, nil
			},
		}

		router := newRouter(t, companies, &mockJobRepo{}, finder)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/acme-robotics/careers/backend-engineer", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Backend Engineer")
		assert.Contains(t, rec.Body.String(), "application/ld+json")
	})

	t.Run("closed_or_unknown_job_404", func(t *testing.T) {
		t.Parallel()

		companies := &mockCompanyRepo{
			getBySlugFunc: func(_ context.Context, _ string) (*domain.Company, error) {
				return company, nil
			},
		}
		finder := &mockFinder{
			getPublicFunc: func(_ context.Context, _ uuid.UUID, _ string) (*domain.Job, error) {
				return nil, domain.ErrNotFound
			},
		}

		router := newRouter(t, companies, &mockJobRepo{}, finder)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/acme-robotics/careers/gone", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// ---------------------------------------------------------------------------
// GET /sitemap.xml
// ---------------------------------------------------------------------------

func TestSitemapRoute(t *testing.T) {
	t.Parallel()

	companies := &mockCompanyRepo{
		listFunc: func(_ context.Context) ([]*domain.Company, error) {
			return []*domain.Company{{Slug: "acme-robotics"}}, nil
		},
	}
	jobs := &mockJobRepo{
		listOpenFunc: func(_ context.Context) ([]*domain.JobWithCompany, error) {
			return []*domain.JobWithCompany{
				{Job: domain.Job{Slug: "backend-engineer"}, CompanySlug: "acme-robotics"},
			}, nil
		},
	}

	router := newRouter(t, companies, jobs, &mockFinder{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, rec.Body.String(), "https://careers.example.com/acme-robotics/careers")
	assert.Contains(t, rec.Body.String(), "https://careers.example.com/acme-robotics/careers/backend-engineer")
}
