package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/careerforge/careerforge/internal/domain"
	"github.com/careerforge/careerforge/internal/jobs"
	"github.com/careerforge/careerforge/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject the authenticated company for DoCtx
// ---------------------------------------------------------------------------

func ownerCtx(companyID uuid.UUID) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyCompanyID, companyID)
	ctx = context.WithValue(ctx, middleware.ContextKeyEmail, "owner@test.io")
	return ctx
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	companies domain.CompanyRepository
	jobs      domain.JobRepository
}

func (m *mockDataStore) Companies() domain.CompanyRepository { return m.companies }
func (m *mockDataStore) Jobs() domain.JobRepository          { return m.jobs }

// ---------------------------------------------------------------------------
// Mock CompanyRepository
// ---------------------------------------------------------------------------

type mockCompanyRepo struct {
	createFunc     func(ctx context.Context, c *domain.Company) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	getBySlugFunc  func(ctx context.Context, slug string) (*domain.Company, error)
	getByEmailFunc func(ctx context.Context, email string) (*domain.Company, error)
	updateFunc     func(ctx context.Context, id uuid.UUID, patch domain.CompanyUpdate) (*domain.Company, error)
	listFunc       func(ctx context.Context) ([]*domain.Company, error)
}

func (m *mockCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	return m.createFunc(ctx, c)
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockCompanyRepo) GetBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	return m.getBySlugFunc(ctx, slug)
}

func (m *mockCompanyRepo) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockCompanyRepo) Update(ctx context.Context, id uuid.UUID, patch domain.CompanyUpdate) (*domain.Company, error) {
	return m.updateFunc(ctx, id, patch)
}

func (m *mockCompanyRepo) List(ctx context.Context) ([]*domain.Company, error) {
	return m.listFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock JobRepository
// ---------------------------------------------------------------------------

type mockJobRepo struct {
	createFunc        func(ctx context.Context, j *domain.Job) error
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	getOpenBySlugFunc func(ctx context.Context, companyID uuid.UUID, slug string) (*domain.Job, error)
	listByCompanyFunc func(ctx context.Context, companyID uuid.UUID, includeClosed bool) ([]*domain.Job, error)
	slugExistsFunc    func(ctx context.Context, companyID uuid.UUID, slug string) (bool, error)
	updateFunc        func(ctx context.Context, companyID, id uuid.UUID, patch domain.JobUpdate) (*domain.Job, error)
	deleteFunc        func(ctx context.Context, companyID, id uuid.UUID) (*domain.Job, error)
	listOpenFunc      func(ctx context.Context) ([]*domain.JobWithCompany, error)
}

func (m *mockJobRepo) Create(ctx context.Context, j *domain.Job) error {
	return m.createFunc(ctx, j)
}

func (m *mockJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockJobRepo) GetOpenBySlug(ctx context.Context, companyID uuid.UUID, slug string) (*domain.Job, error) {
	return m.getOpenBySlugFunc(ctx, companyID, slug)
}

func (m *mockJobRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, includeClosed bool) ([]*domain.Job, error) {
	return m.listByCompanyFunc(ctx, companyID, includeClosed)
}

func (m *mockJobRepo) SlugExists(ctx context.Context, companyID uuid.UUID, slug string) (bool, error) {
	return m.slugExistsFunc(ctx, companyID, slug)
}

func (m *mockJobRepo) Update(ctx context.Context, companyID, id uuid.UUID, patch domain.JobUpdate) (*domain.Job, error) {
	return m.updateFunc(ctx, companyID, id, patch)
}

func (m *mockJobRepo) Delete(ctx context.Context, companyID, id uuid.UUID) (*domain.Job, error) {
	return m.deleteFunc(ctx, companyID, id)
}

func (m *mockJobRepo) ListOpenWithCompanySlug(ctx context.Context) ([]*domain.JobWithCompany, error) {
	return m.listOpenFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	signupFunc func(ctx context.Context, name, email, password, slug string) (*domain.Company, string, error)
	loginFunc  func(ctx context.Context, email, password string) (*domain.Company, string, error)
}

func (m *mockAuthService) Signup(ctx context.Context, name, email, password, slug string) (*domain.Company, string, error) {
	return m.signupFunc(ctx, name, email, password, slug)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*domain.Company, string, error) {
	return m.loginFunc(ctx, email, password)
}

// ---------------------------------------------------------------------------
// Mock JobService
// ---------------------------------------------------------------------------

type mockJobService struct {
	createFunc    func(ctx context.Context, companyID uuid.UUID, in jobs.Input) (*domain.Job, error)
	updateFunc    func(ctx context.Context, companyID, jobID uuid.UUID, patch domain.JobUpdate) (*domain.Job, error)
	deleteFunc    func(ctx context.Context, companyID, jobID uuid.UUID) (*domain.Job, error)
	listFunc      func(ctx context.Context, companyID uuid.UUID, includeClosed bool) ([]*domain.Job, error)
	getPublicFunc func(ctx context.Context, companyID uuid.UUID, slugOrID string) (*domain.Job, error)
}

func (m *mockJobService) Create(ctx context.Context, companyID uuid.UUID, in jobs.Input) (*domain.Job, error) {
	return m.createFunc(ctx, companyID, in)
}

func (m *mockJobService) Update(ctx context.Context, companyID, jobID uuid.UUID, patch domain.JobUpdate) (*domain.Job, error) {
	return m.updateFunc(ctx, companyID, jobID, patch)
}

func (m *mockJobService) Delete(ctx context.Context, companyID, jobID uuid.UUID) (*domain.Job, error) {
	return m.deleteFunc(ctx, companyID, jobID)
}

func (m *mockJobService) List(ctx context.Context, companyID uuid.UUID, includeClosed bool) ([]*domain.Job, error) {
	return m.listFunc(ctx, companyID, includeClosed)
}

func (m *mockJobService) GetPublic(ctx context.Context, companyID uuid.UUID, slugOrID string) (*domain.Job, error) {
	return m.getPublicFunc(ctx, companyID, slugOrID)
}

// ---------------------------------------------------------------------------
// Mock PageInvalidator
// ---------------------------------------------------------------------------

type mockInvalidator struct {
	invalidated []string
	err         error
}

func (m *mockInvalidator) InvalidateCompany(_ context.Context, companySlug string) error {
	m.invalidated = append(m.invalidated, companySlug)
	return m.err
}
