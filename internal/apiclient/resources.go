package apiclient

import (
	"context"
	"net/http"

	"github.com/freightdesk/freightdesk/internal/masterdata/carriers"
	"github.com/freightdesk/freightdesk/internal/masterdata/cities"
	"github.com/freightdesk/freightdesk/internal/masterdata/commodities"
	"github.com/freightdesk/freightdesk/internal/masterdata/countries"
	"github.com/freightdesk/freightdesk/internal/masterdata/parties"
	"github.com/freightdesk/freightdesk/internal/masterdata/ports"
	"github.com/freightdesk/freightdesk/internal/shipments/houseawbs"
	"github.com/freightdesk/freightdesk/internal/shipments/jobs"
	"github.com/freightdesk/freightdesk/internal/shipments/masterawbs"
	"github.com/freightdesk/freightdesk/internal/users"
)

// Resources groups every resource the API serves.
type Resources struct {
	Countries   *Resource[countries.Country, countries.Country]
	Cities      *Resource[cities.City, cities.City]
	Ports       *Resource[ports.Port, ports.Port]
	Carriers    *Resource[carriers.Carrier, carriers.Carrier]
	Commodities *Resource[commodities.Commodity, commodities.Commodity]
	Parties     *Resource[parties.Party, parties.Party]
	Jobs        *Resource[jobs.Job, jobs.Job]
	MasterAWBs  *Resource[masterawbs.MasterAWB, masterawbs.MasterAWB]
	HouseAWBs   *Resource[houseawbs.HouseAWB, houseawbs.HouseAWB]
	Users       *Resource[users.User, users.User]
}

// NewResources binds every resource to c.
func NewResources(c *Client) *Resources {
	return &Resources{
		Countries:   NewResource[countries.Country, countries.Country](c, "master/countries", "country"),
		Cities:      NewResource[cities.City, cities.City](c, "master/cities", "city"),
		Ports:       NewResource[ports.Port, ports.Port](c, "master/ports-airports", "port/airport"),
		Carriers:    NewResource[carriers.Carrier, carriers.Carrier](c, "master/carriers", "carrier"),
		Commodities: NewResource[commodities.Commodity, commodities.Commodity](c, "master/commodities", "commodity"),
		Parties:     NewResource[parties.Party, parties.Party](c, "master/parties", "party"),
		Jobs:        NewResource[jobs.Job, jobs.Job](c, "master/jobs", "job"),
		MasterAWBs:  NewResource[masterawbs.MasterAWB, masterawbs.MasterAWB](c, "master/master-awbs", "master AWB"),
		HouseAWBs:   NewResource[houseawbs.HouseAWB, houseawbs.HouseAWB](c, "master/house-awbs", "house AWB"),
		Users:       NewResource[users.User, users.User](c, "users", "user"),
	}
}

// UpdateJobStatus moves job id to status.
func (rs *Resources) UpdateJobStatus(ctx context.Context, id int64, status string) (jobs.Job, error) {
	return rs.Jobs.write(ctx, Notify{
		Success: "Job status updated to " + status,
		Failure: "Failed to update job status",
	}, http.MethodPatch, rs.Jobs.itemPath(id)+"/status", map[string]string{"status": status})
}
