// Package namemap resolves application field names to remote column
// identifiers, including the positional expansion of array-typed fields that
// map onto several remote columns.
package namemap

import (
	"fmt"

	"github.com/faciam-dev/airtab/internal/tabledef"
	"github.com/faciam-dev/airtab/pkg/airerr"
	"github.com/faciam-dev/airtab/pkg/fieldtype"
)

// Lookup is one remote-column-level unit of mapping work. A plain field
// produces one Lookup carrying its full type; an array field mapped to N
// identifiers produces N Lookups typed as the element type with nullability
// preserved.
type Lookup struct {
	Field      string
	RemoteID   string
	Type       fieldtype.Descriptor
	TypeString string
	Slot       int  // position within the field's mapping list
	Arity      int  // number of identifiers the field maps to
	IsExpanded bool // one slice of a list-mapped array field
}

// Expanded reports whether this lookup is one slice of a list-mapped field.
func (l Lookup) Expanded() bool { return l.IsExpanded }

// Expand computes the per-remote-identifier lookups for a table definition,
// in schema order.
func Expand(t *tabledef.Table) ([]Lookup, error) {
	var out []Lookup
	for _, f := range t.Schema {
		d, err := fieldtype.Parse(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		m := t.MappingOf(f.Name)
		if m.List {
			el := d.Element()
			for i, id := range m.IDs {
				out = append(out, Lookup{
					Field:      f.Name,
					RemoteID:   id,
					Type:       el,
					TypeString: el.String(),
					Slot:       i,
					Arity:      len(m.IDs),
					IsExpanded: true,
				})
			}
			continue
		}
		out = append(out, Lookup{
			Field:      f.Name,
			RemoteID:   m.IDs[0],
			Type:       d,
			TypeString: d.String(),
			Arity:      1,
		})
	}
	return out, nil
}

// SplitArray validates and slices an application array value for positional
// distribution across a multi-column mapping. The array length must match the
// mapping length exactly.
func SplitArray(field string, value any, arity int) ([]any, error) {
	els, ok := fieldtype.Slice(value)
	if !ok {
		return nil, airerr.Validation("field %q maps to %d columns and requires an array value, got %T", field, arity, value)
	}
	if len(els) != arity {
		return nil, airerr.Validation("field %q has %d values but %d mappings", field, len(els), arity)
	}
	return els, nil
}

// RequestedIdentifiers is the field-selection list for remote reads: the
// flattened mapping values when mappings are declared, else all schema field
// names — in both cases filtered down to identifiers that exist in the
// fetched schema. Columns deleted on the remote side are silently dropped
// because requesting a nonexistent field is itself an error over the wire.
func RequestedIdentifiers(t *tabledef.Table, exists func(string) bool) []string {
	var ids []string
	if t.Mappings != nil {
		for _, f := range t.Schema {
			m, ok := t.Mappings[f.Name]
			if !ok {
				continue
			}
			ids = append(ids, m.IDs...)
		}
	} else {
		for _, f := range t.Schema {
			ids = append(ids, f.Name)
		}
	}
	out := ids[:0]
	for _, id := range ids {
		if exists(id) {
			out = append(out, id)
		}
	}
	return out
}
