package rbac

import "strings"

// NavItem is one sidebar entry.
type NavItem struct {
	Name     string
	Href     string
	Module   string
	Group    string
	Active   bool
	Children []NavItem
}

type navEntry struct {
	name   string
	path   string
	module string
	group  string
	leaf   bool
}

var navigation = []navEntry{
	{name: "Dashboard", path: "/dashboard", module: ModuleDashboard, leaf: true},
	{name: "Jobs", path: "/dashboard/jobs", module: ModuleJobs, group: "Operations"},
	{name: "Master AWB", path: "/dashboard/master-awbs", module: ModuleMasterAWBs, group: "Operations"},
	{name: "House AWB", path: "/dashboard/house-awbs", module: ModuleHouseAWBs, group: "Operations"},
	{name: "Users", path: "/dashboard/users", module: ModuleUsers, group: "System"},
	{name: "Parties", path: "/dashboard/parties", module: ModuleParties, group: "Master Data"},
	{name: "Countries", path: "/dashboard/countries", module: ModuleCountries, group: "Master Data"},
	{name: "Cities", path: "/dashboard/cities", module: ModuleCities, group: "Master Data"},
	{name: "Ports/Airports", path: "/dashboard/ports-airports", module: ModulePortsAirports, group: "Master Data"},
	{name: "Carriers", path: "/dashboard/carriers", module: ModuleCarriers, group: "Master Data"},
	{name: "Commodities", path: "/dashboard/commodities", module: ModuleCommodities, group: "Master Data"},
}

// Navigation builds the sidebar for role. Entries the role cannot read are
// omitted; the "Create New" child only appears with create permission.
func Navigation(role Role, currentPath string) []NavItem {
	items := make([]NavItem, 0, len(navigation))
	for _, e := range navigation {
		if !CanAccessModule(role, e.module) {
			continue
		}
		item := NavItem{Name: e.name, Href: e.path, Module: e.module, Group: e.group, Active: isActive(e.path, currentPath)}
		if !e.leaf {
			item.Children = append(item.Children, NavItem{Name: "View All", Href: e.path, Module: e.module})
			if CanCreate(role, e.module) {
				item.Children = append(item.Children, NavItem{Name: "Create New", Href: e.path + "/create", Module: e.module})
			}
		}
		items = append(items, item)
	}
	return items
}

// NavigationFor is Navigation driven by a gate. A gate that is not ready yields nothing.
func NavigationFor(g *Gate, currentPath string) []NavItem {
	p := g.User()
	if p == nil {
		return nil
	}
	return Navigation(p.Role, currentPath)
}

func isActive(base, current string) bool {
	if base == "/dashboard" {
		return current == base
	}
	return current == base || strings.HasPrefix(current, base+"/")
}
