package rbac

// Module names used as permission keys.
const (
	ModuleDashboard     = "dashboard"
	ModuleUsers         = "users"
	ModuleJobs          = "jobs"
	ModuleMasterAWBs    = "master-awbs"
	ModuleHouseAWBs     = "house-awbs"
	ModuleQuickActions  = "quick-actions"
	ModuleItems         = "items"
	ModuleCostCenters   = "cost-centers"
	ModuleInvoices      = "invoices"
	ModuleApprovals     = "approvals"
	ModuleLists         = "lists"
	ModuleTransactions  = "transactions"
	ModuleReconcile     = "reconcile"
	ModuleTrack         = "track"
	ModuleParties       = "parties"
	ModuleCountries     = "countries"
	ModuleCities        = "cities"
	ModulePortsAirports = "ports-airports"
	ModuleCarriers      = "carriers"
	ModuleCommodities   = "commodities"
	ModuleSettings      = "settings"
	ModuleReports       = "reports"
)

var (
	crud      = []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}
	readOnly  = []Action{ActionRead}
	noDelete  = []Action{ActionRead, ActionCreate, ActionUpdate}
	readWrite = []Action{ActionRead, ActionUpdate}
)

// table is fixed at init and only handed out as copies.
var table = map[Role][]Permission{
	RoleAdmin: {
		{ModuleDashboard, readOnly},
		{ModuleUsers, crud},
		{ModuleJobs, crud},
		{ModuleMasterAWBs, crud},
		{ModuleHouseAWBs, crud},
		{ModuleQuickActions, crud},
		{ModuleItems, crud},
		{ModuleCostCenters, crud},
		{ModuleInvoices, crud},
		{ModuleApprovals, crud},
		{ModuleLists, crud},
		{ModuleTransactions, crud},
		{ModuleReconcile, crud},
		{ModuleTrack, readOnly},
		{ModuleParties, crud},
		{ModuleCountries, crud},
		{ModuleCities, crud},
		{ModulePortsAirports, crud},
		{ModuleCarriers, crud},
		{ModuleCommodities, crud},
		{ModuleSettings, readWrite},
	},
	RoleOperations: {
		{ModuleDashboard, readOnly},
		{ModuleJobs, crud},
		{ModuleMasterAWBs, crud},
		{ModuleHouseAWBs, crud},
		{ModuleQuickActions, noDelete},
		{ModuleItems, crud},
		{ModuleCostCenters, crud},
		{ModuleParties, crud},
		{ModuleCountries, crud},
		{ModuleCities, crud},
		{ModulePortsAirports, crud},
		{ModuleCarriers, crud},
		{ModuleCommodities, crud},
	},
	RoleAccounts: {
		{ModuleDashboard, readOnly},
		{ModuleInvoices, crud},
		{ModuleApprovals, crud},
		{ModuleLists, crud},
		{ModuleJobs, readOnly},
		{ModuleParties, noDelete},
	},
	RoleFinance: {
		{ModuleDashboard, readOnly},
		{ModuleTransactions, crud},
		{ModuleReconcile, crud},
		{ModuleInvoices, readWrite},
		{ModuleJobs, readOnly},
		{ModuleCostCenters, crud},
	},
	RoleManagement: {
		{ModuleDashboard, readOnly},
		{ModuleJobs, crud},
		{ModuleInvoices, crud},
		{ModuleApprovals, crud},
		{ModuleTransactions, noDelete},
		{ModuleUsers, noDelete},
		{ModuleReports, []Action{ActionRead, ActionCreate}},
	},
	RoleCustomer: {
		{ModuleDashboard, readOnly},
		{ModuleTrack, readOnly},
		{ModuleInvoices, readOnly},
		{ModuleJobs, readOnly},
	},
}

// PermissionsFor returns a copy of the role's permission entries in table order.
func PermissionsFor(role Role) []Permission {
	entries := table[role]
	out := make([]Permission, len(entries))
	for i, p := range entries {
		out[i] = Permission{Module: p.Module, Actions: append([]Action(nil), p.Actions...)}
	}
	return out
}

// HasPermission reports whether role may perform action on module.
// Unknown roles, modules and actions are denied.
func HasPermission(role Role, module string, action Action) bool {
	for _, p := range table[role] {
		if p.Module == module {
			return p.Allows(action)
		}
	}
	return false
}

// CanAccessModule reports read access.
func CanAccessModule(role Role, module string) bool {
	return HasPermission(role, module, ActionRead)
}

// CanCreate reports create access.
func CanCreate(role Role, module string) bool {
	return HasPermission(role, module, ActionCreate)
}

// CanUpdate reports update access.
func CanUpdate(role Role, module string) bool {
	return HasPermission(role, module, ActionUpdate)
}

// CanDelete reports delete access.
func CanDelete(role Role, module string) bool {
	return HasPermission(role, module, ActionDelete)
}

// Modules lists every permission key in display order.
func Modules() []string {
	return []string{
		ModuleDashboard, ModuleUsers, ModuleJobs, ModuleMasterAWBs, ModuleHouseAWBs, ModuleQuickActions,
		ModuleItems, ModuleCostCenters, ModuleInvoices, ModuleApprovals, ModuleLists, ModuleTransactions,
		ModuleReconcile, ModuleTrack, ModuleParties, ModuleCountries, ModuleCities, ModulePortsAirports,
		ModuleCarriers, ModuleCommodities, ModuleSettings, ModuleReports,
	}
}
