package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/careerforge/careerforge/internal/api/v1"
	"github.com/careerforge/careerforge/internal/auth"
	"github.com/careerforge/careerforge/internal/jobs"
	"github.com/careerforge/careerforge/internal/store/postgres"
	redisstore "github.com/careerforge/careerforge/internal/store/redis"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerPublicRoutes(api huma.API, store *postgres.Store, jobSvc *jobs.Service, jwtSecret string) {
	v1.RegisterPublicCompanyRoutes(api, store)
	v1.RegisterPublicJobRoutes(api, jobSvc, jwtSecret)
	v1.RegisterJobLookupRoute(api, store)
}

func registerDashboardRoutes(api huma.API, store *postgres.Store, jobSvc *jobs.Service, cache *redisstore.PageCache) {
	v1.RegisterCompanyRoutes(api, store, cache)
	v1.RegisterJobRoutes(api, store, jobSvc, cache)
}
