package shared

const (
	// Default pagination
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100

	// Sort directions
	SortAsc  = "ASC"
	SortDesc = "DESC"
)
