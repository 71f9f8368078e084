package main

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/freightdesk/freightdesk/internal/apiclient"
	"github.com/freightdesk/freightdesk/internal/masterdata/carriers"
	"github.com/freightdesk/freightdesk/internal/masterdata/cities"
	"github.com/freightdesk/freightdesk/internal/masterdata/commodities"
	"github.com/freightdesk/freightdesk/internal/masterdata/countries"
	"github.com/freightdesk/freightdesk/internal/masterdata/parties"
	"github.com/freightdesk/freightdesk/internal/masterdata/ports"
	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/shipments/houseawbs"
	"github.com/freightdesk/freightdesk/internal/shipments/jobs"
	"github.com/freightdesk/freightdesk/internal/shipments/masterawbs"
	"github.com/freightdesk/freightdesk/internal/ui"
	"github.com/freightdesk/freightdesk/internal/users"
)

// binding adapts one typed resource to the option rows the CLI prints.
type binding struct {
	search func(ctx context.Context, q string) ([]ui.Option, error)
	list   func(ctx context.Context, p apiclient.ListParams) ([]ui.Option, shared.Pagination, error)
}

func bind[T any, In any](r *apiclient.Resource[T, In], option func(T) ui.Option) binding {
	toOptions := func(items []T) []ui.Option {
		out := make([]ui.Option, 0, len(items))
		for _, it := range items {
			out = append(out, option(it))
		}
		return out
	}
	return binding{
		search: func(ctx context.Context, q string) ([]ui.Option, error) {
			items, err := r.Search(ctx, url.Values{"search": {q}})
			if err != nil {
				return nil, err
			}
			return toOptions(items), nil
		},
		list: func(ctx context.Context, p apiclient.ListParams) ([]ui.Option, shared.Pagination, error) {
			page, err := r.List(ctx, p)
			if err != nil {
				return nil, shared.Pagination{}, err
			}
			return toOptions(page.Items), page.Pagination(), nil
		},
	}
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func labelled(name, code string) string {
	if code == "" {
		return name
	}
	return name + " (" + code + ")"
}

func newBindings(rs *apiclient.Resources) map[string]binding {
	return map[string]binding{
		"countries": bind(rs.Countries, func(c countries.Country) ui.Option {
			return ui.Option{ID: id(c.ID), Name: labelled(c.Name, c.Code)}
		}),
		"cities": bind(rs.Cities, func(c cities.City) ui.Option {
			return ui.Option{ID: id(c.ID), Name: labelled(c.Name, c.Code), Extra: map[string]any{"country": c.CountryName}}
		}),
		"ports-airports": bind(rs.Ports, func(p ports.Port) ui.Option {
			return ui.Option{ID: id(p.ID), Name: labelled(p.Name, p.Code), Extra: map[string]any{"type": p.Type}}
		}),
		"carriers": bind(rs.Carriers, func(c carriers.Carrier) ui.Option {
			return ui.Option{ID: id(c.ID), Name: labelled(c.Name, c.Code), Extra: map[string]any{"type": c.Type}}
		}),
		"commodities": bind(rs.Commodities, func(c commodities.Commodity) ui.Option {
			return ui.Option{ID: id(c.ID), Name: labelled(c.Name, c.Code)}
		}),
		"parties": bind(rs.Parties, func(p parties.Party) ui.Option {
			return ui.Option{ID: id(p.ID), Name: p.Name, Extra: map[string]any{"type": p.Type}}
		}),
		"jobs": bind(rs.Jobs, func(j jobs.Job) ui.Option {
			return ui.Option{ID: id(j.ID), Name: j.JobNumber + " " + j.ShipperName, Extra: map[string]any{"status": j.Status}}
		}),
		"master-awbs": bind(rs.MasterAWBs, func(m masterawbs.MasterAWB) ui.Option {
			return ui.Option{ID: id(m.ID), Name: m.MasterNumber, Extra: map[string]any{"status": m.Status}}
		}),
		"house-awbs": bind(rs.HouseAWBs, func(h houseawbs.HouseAWB) ui.Option {
			return ui.Option{ID: id(h.ID), Name: h.HouseNumber, Extra: map[string]any{"status": h.Status}}
		}),
		"users": bind(rs.Users, func(u users.User) ui.Option {
			return ui.Option{ID: id(u.ID), Name: u.Name + " <" + u.Email + ">", Extra: map[string]any{"role": string(u.Role)}}
		}),
	}
}

func resourceNames() []string {
	names := make([]string, 0, 10)
	for name := range newBindings(&apiclient.Resources{}) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
