package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/masterdata/carriers"
	"github.com/freightdesk/freightdesk/internal/masterdata/cities"
	"github.com/freightdesk/freightdesk/internal/masterdata/commodities"
	"github.com/freightdesk/freightdesk/internal/masterdata/countries"
	"github.com/freightdesk/freightdesk/internal/masterdata/parties"
	"github.com/freightdesk/freightdesk/internal/masterdata/ports"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/shipments/houseawbs"
	"github.com/freightdesk/freightdesk/internal/shipments/jobs"
	"github.com/freightdesk/freightdesk/internal/shipments/masterawbs"
	"github.com/freightdesk/freightdesk/internal/shipments/numbering"
	"github.com/freightdesk/freightdesk/internal/users"
	"github.com/freightdesk/freightdesk/internal/view"
)

// Routes mounts one resource under /dashboard/<Path> and /api/v1/<APIPath>.
type Routes struct {
	Path    string
	APIPath string
	HTML    []func(chi.Router)
	API     []func(chi.Router)
}

// ResourceDeps is what every CRUD resource handler needs.
type ResourceDeps struct {
	Logger *slog.Logger
	Views  *view.Renderer
	RBAC   rbac.Middleware
	Audit  shared.AuditRecorder
}

func resourceRoutes[T any](deps ResourceDeps, apiPrefix string, res crud.Resource[T], svc crud.Service[T]) Routes {
	html := crud.NewHandler(deps.Logger, res, svc, deps.Views, deps.RBAC, deps.Audit)
	api := crud.NewAPIHandler(deps.Logger, res, svc, deps.RBAC, deps.Audit)
	return Routes{
		Path:    res.Plural,
		APIPath: apiPrefix + res.Plural,
		HTML:    []func(chi.Router){html.MountRoutes},
		API:     []func(chi.Router){api.MountRoutes},
	}
}

// BuildResources wires every master data and shipment resource over pool.
// The users service is shared with auth, so it is passed in.
func BuildResources(deps ResourceDeps, pool *pgxpool.Pool, accounts *users.Service) []Routes {
	numbers := numbering.New()
	jobService := jobs.NewService(jobs.NewRepository(pool), numbers)

	jobRoutes := resourceRoutes(deps, "master/", jobs.Resource(), crud.Service[jobs.Job](jobService))
	status := jobs.NewStatusHandler(deps.Logger, jobService, deps.RBAC, deps.Audit)
	jobRoutes.HTML = append(jobRoutes.HTML, status.MountRoutes)
	jobRoutes.API = append(jobRoutes.API, status.MountAPIRoutes)

	return []Routes{
		resourceRoutes(deps, "master/", countries.Resource(), crud.Service[countries.Country](countries.NewService(countries.NewRepository(pool)))),
		resourceRoutes(deps, "master/", cities.Resource(), crud.Service[cities.City](cities.NewService(cities.NewRepository(pool)))),
		resourceRoutes(deps, "master/", ports.Resource(), crud.Service[ports.Port](ports.NewService(ports.NewRepository(pool)))),
		resourceRoutes(deps, "master/", carriers.Resource(), crud.Service[carriers.Carrier](carriers.NewService(carriers.NewRepository(pool)))),
		resourceRoutes(deps, "master/", commodities.Resource(), crud.Service[commodities.Commodity](commodities.NewService(commodities.NewRepository(pool)))),
		resourceRoutes(deps, "master/", parties.Resource(), crud.Service[parties.Party](parties.NewService(parties.NewRepository(pool)))),
		jobRoutes,
		resourceRoutes(deps, "master/", masterawbs.Resource(), crud.Service[masterawbs.MasterAWB](masterawbs.NewService(masterawbs.NewRepository(pool), numbers))),
		resourceRoutes(deps, "master/", houseawbs.Resource(), crud.Service[houseawbs.HouseAWB](houseawbs.NewService(houseawbs.NewRepository(pool), numbers))),
		resourceRoutes(deps, "", users.Resource(), crud.Service[users.User](accounts)),
	}
}
