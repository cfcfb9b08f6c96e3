// Package tabledef holds the application-side table definitions: the static
// declaration of field names, type strings and optional remote column
// mappings. Definitions are built once and never mutated.
package tabledef

import (
	"fmt"

	"github.com/faciam-dev/airtab/pkg/fieldtype"
)

// Field pairs an application field name with its type string.
type Field struct {
	Name string `yaml:"field"`
	Type string `yaml:"type"`
}

// Table declares the application's view of one remote table.
//
// Mappings translate application field names to remote column identifiers
// (names or ids). A multi-identifier mapping is only legal for array-typed
// fields and distributes array elements positionally across the listed
// columns. Fields without a mapping use their own name as the identifier.
type Table struct {
	Name     string             `yaml:"name"`
	BaseID   string             `yaml:"base"`
	TableID  string             `yaml:"table"`
	Schema   []Field            `yaml:"schema"`
	Mappings map[string]Mapping `yaml:"mappings,omitempty"`
}

// Mapping is the remote column identifier(s) for a single field. A mapping
// declared as a list — even a one-element list — distributes an array value
// positionally across the listed columns; a scalar mapping binds the whole
// field to one column.
type Mapping struct {
	IDs  []string
	List bool
}

// MapTo binds a field to a single remote column.
func MapTo(id string) Mapping { return Mapping{IDs: []string{id}} }

// MapToColumns distributes an array field positionally across columns.
func MapToColumns(ids ...string) Mapping { return Mapping{IDs: ids, List: true} }

// UnmarshalYAML accepts either a scalar identifier or a sequence of them.
func (m *Mapping) UnmarshalYAML(unmarshal func(any) error) error {
	var one string
	if err := unmarshal(&one); err == nil {
		*m = MapTo(one)
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return err
	}
	*m = MapToColumns(many...)
	return nil
}

// MarshalYAML renders scalar mappings as scalars and list mappings as
// sequences so the declared shape survives a round trip.
func (m Mapping) MarshalYAML() (any, error) {
	if !m.List && len(m.IDs) == 1 {
		return m.IDs[0], nil
	}
	return m.IDs, nil
}

// Validate checks the structural invariants of the definition. It is called
// once at construction; the engine assumes a validated table afterwards.
func (t *Table) Validate() error {
	if t.BaseID == "" || t.TableID == "" {
		return fmt.Errorf("table %q: base and table ids are required", t.Name)
	}
	types := make(map[string]fieldtype.Descriptor, len(t.Schema))
	for _, f := range t.Schema {
		if _, dup := types[f.Name]; dup {
			return fmt.Errorf("table %q: duplicate field %q", t.Name, f.Name)
		}
		d, err := fieldtype.Parse(f.Type)
		if err != nil {
			return fmt.Errorf("table %q: field %q: %w", t.Name, f.Name, err)
		}
		types[f.Name] = d
	}
	for name, m := range t.Mappings {
		d, ok := types[name]
		if !ok {
			return fmt.Errorf("table %q: mapping for unknown field %q", t.Name, name)
		}
		if len(m.IDs) == 0 {
			return fmt.Errorf("table %q: empty mapping for field %q", t.Name, name)
		}
		if m.List && !d.Array {
			return fmt.Errorf("table %q: field %q is not an array type but maps to %d columns", t.Name, name, len(m.IDs))
		}
	}
	return nil
}

// TypeOf returns the declared type string of a field.
func (t *Table) TypeOf(field string) (string, bool) {
	for _, f := range t.Schema {
		if f.Name == field {
			return f.Type, true
		}
	}
	return "", false
}

// MappingOf returns the remote identifiers a field maps to. Fields without a
// mapping entry map to their own name.
func (t *Table) MappingOf(field string) Mapping {
	if m, ok := t.Mappings[field]; ok {
		return m
	}
	return MapTo(field)
}

// Label is the diagnostic name of the table: display name when set, else the
// remote table id.
func (t *Table) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.TableID
}
