package remoteapi

// Column is the remote service's description of one table column. Type is one
// of the service's type tags; tags this library does not recognize are treated
// as unknown by the coercion layer rather than rejected.
type Column struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// TableSchema is the fetched schema of a single remote table.
type TableSchema struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Columns []Column `json:"fields"`
}

// Record is a raw remote record. Field values are whatever shape the remote
// service produced; the column type is a hint, not a guarantee.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

// Sort orders a listing by one column. Direction is "asc" or "desc";
// empty means "asc".
type Sort struct {
	Field     string
	Direction string
}

// ListQuery carries pass-through query options for ListRecords. Filter and
// sort text is forwarded verbatim; this library is not a query planner.
type ListQuery struct {
	Fields          []string
	FilterByFormula string
	Sort            []Sort
	MaxRecords      int
	View            string
}
