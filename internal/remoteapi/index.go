package remoteapi

// ColumnIndex resolves columns by remote identifier. Column identity is the
// union of the id and name keyspaces: both resolve to the same definition.
type ColumnIndex struct {
	byKey map[string]Column
}

// IndexColumns builds the id-or-name lookup for a fetched table schema.
func IndexColumns(cols []Column) ColumnIndex {
	idx := ColumnIndex{byKey: make(map[string]Column, len(cols)*2)}
	for _, c := range cols {
		idx.byKey[c.ID] = c
		idx.byKey[c.Name] = c
	}
	return idx
}

// Find resolves a remote identifier (name or id) to its column.
func (idx ColumnIndex) Find(key string) (Column, bool) {
	c, ok := idx.byKey[key]
	return c, ok
}

// Has reports whether the identifier exists in the fetched schema.
func (idx ColumnIndex) Has(key string) bool {
	_, ok := idx.byKey[key]
	return ok
}
