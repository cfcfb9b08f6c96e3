package sdk

import (
	"github.com/faciam-dev/airtab/internal/remoteapi"
	"github.com/faciam-dev/airtab/internal/tabledef"
)

// Table is the application's static declaration of a remote table.
type Table = tabledef.Table

// Field pairs a field name with its type string inside a Table schema.
type Field = tabledef.Field

// Mapping binds a field to remote column identifier(s).
type Mapping = tabledef.Mapping

// MapTo binds a field to a single remote column identifier.
var MapTo = tabledef.MapTo

// MapToColumns distributes an array field positionally across columns.
var MapToColumns = tabledef.MapToColumns

// Column is a fetched remote column definition.
type Column = remoteapi.Column

// RawRecord is a record in the remote service's own shape.
type RawRecord = remoteapi.Record

// ListQuery carries pass-through list options (filter/sort text is forwarded
// verbatim to the remote service).
type ListQuery = remoteapi.ListQuery

// Sort orders a listing by one remote column.
type Sort = remoteapi.Sort

// Record is an application-shaped record. ID is the remote-assigned identity
// and is immutable after creation; Fields conform to the table schema. For
// updates, Fields is a partial set: keys absent from the map are left
// untouched remotely.
type Record struct {
	ID     string
	Fields map[string]any
}

// TableHandle is a schema-resolved table: the static definition joined with
// the columns fetched from the remote service.
type TableHandle struct {
	Def     *Table
	Columns []Column

	index remoteapi.ColumnIndex
}

// Column resolves a remote identifier (name or id) against the fetched
// schema.
func (h *TableHandle) Column(key string) (Column, bool) {
	return h.index.Find(key)
}
