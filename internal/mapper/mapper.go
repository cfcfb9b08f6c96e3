// Package mapper converts whole records between the remote service's raw
// shape and the application's declared shape. It is stateless per call: a
// strict two-phase pipeline in each direction built from the name resolver,
// the type descriptors and the coercion matrix.
package mapper

import (
	"fmt"

	"github.com/faciam-dev/airtab/internal/coerce"
	"github.com/faciam-dev/airtab/internal/logger"
	"github.com/faciam-dev/airtab/internal/namemap"
	"github.com/faciam-dev/airtab/internal/remoteapi"
	"github.com/faciam-dev/airtab/internal/tabledef"
	"github.com/faciam-dev/airtab/pkg/airerr"
	"github.com/faciam-dev/airtab/pkg/fieldtype"
	"github.com/faciam-dev/airtab/pkg/metrics"
)

// Mode selects how read-direction mapping failures are handled.
type Mode string

const (
	// ModeError rethrows the first per-field failure immediately.
	ModeError Mode = "error"
	// ModeWarning substitutes a type-appropriate default for the failed
	// field, keeps going, and reports each failure through OnWarning.
	ModeWarning Mode = "warning"
)

// Options configure the read direction. The write direction always fails
// hard: silently dropping outbound data is unacceptable.
type Options struct {
	Mode      Mode
	OnWarning func(error)
}

// FromRemote maps a raw remote record into application field values keyed by
// schema field name.
func FromRemote(t *tabledef.Table, idx remoteapi.ColumnIndex, rec *remoteapi.Record, opts Options) (map[string]any, error) {
	lookups, err := namemap.Expand(t)
	if err != nil {
		return nil, err
	}

	soft := opts.Mode == ModeWarning
	var warnings []error
	slots := map[string][]any{}
	for _, l := range lookups {
		if slots[l.Field] == nil {
			slots[l.Field] = make([]any, l.Arity)
		}
		v, err := readLookup(l, idx, rec)
		if err != nil {
			err = airerr.Wrap(err, frame(l))
			if !soft || airerr.KindOf(err) != airerr.KindSchemaValidation {
				return nil, err
			}
			warnings = append(warnings, err)
			metrics.MappingWarnings.Inc()
			v = l.Type.ZeroValue()
		}
		slots[l.Field][l.Slot] = v
	}

	out := make(map[string]any, len(t.Schema))
	for _, f := range t.Schema {
		vals, ok := slots[f.Name]
		if !ok {
			continue
		}
		if len(vals) == 1 && !expanded(lookups, f.Name) {
			out[f.Name] = vals[0]
		} else {
			out[f.Name] = vals
		}
	}

	deliverWarnings(opts.OnWarning, warnings)
	return out, nil
}

func readLookup(l namemap.Lookup, idx remoteapi.ColumnIndex, rec *remoteapi.Record) (any, error) {
	col, ok := idx.Find(l.RemoteID)
	if !ok {
		return nil, airerr.Validation("remote column %q does not exist", l.RemoteID)
	}
	raw, ok := rec.Fields[col.Name]
	if !ok {
		raw = rec.Fields[col.ID]
	}
	pair, err := coerce.Lookup(l.TypeString, col.Type)
	if err != nil {
		return nil, err
	}
	return pair.FromRemote(raw)
}

// ToRemote maps a partial application field set into raw remote cell values
// keyed by the declared remote identifiers. Fields absent from the input map
// are skipped entirely — not written, not nulled — which is what makes
// partial updates safe.
func ToRemote(t *tabledef.Table, idx remoteapi.ColumnIndex, fields map[string]any) (map[string]any, error) {
	lookups, err := namemap.Expand(t)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)
	grouped := groupByField(lookups)
	for _, f := range t.Schema {
		value, present := fields[f.Name]
		if !present {
			continue
		}
		ls := grouped[f.Name]
		if len(ls) == 0 {
			continue
		}
		if ls[0].Expanded() {
			els, err := namemap.SplitArray(f.Name, value, ls[0].Arity)
			if err != nil {
				return nil, airerr.Wrap(err, frame(ls[0]))
			}
			for i, l := range ls {
				raw, err := writeLookup(l, idx, els[i])
				if err != nil {
					return nil, airerr.Wrap(err, frame(l))
				}
				out[l.RemoteID] = raw
			}
			continue
		}
		l := ls[0]
		raw, err := writeLookup(l, idx, value)
		if err != nil {
			return nil, airerr.Wrap(err, frame(l))
		}
		out[l.RemoteID] = raw
	}
	return out, nil
}

func writeLookup(l namemap.Lookup, idx remoteapi.ColumnIndex, value any) (any, error) {
	if !fieldtype.MatchesDescriptor(value, l.Type) {
		return nil, airerr.Validation("value %v (%T) does not match declared type %s", value, value, l.TypeString)
	}
	col, ok := idx.Find(l.RemoteID)
	if !ok {
		return nil, airerr.Validation("remote column %q does not exist", l.RemoteID)
	}
	pair, err := coerce.Lookup(l.TypeString, col.Type)
	if err != nil {
		return nil, err
	}
	return pair.ToRemote(value)
}

// RequestedColumns is the field-selection list for reads, filtered to
// columns that still exist remotely.
func RequestedColumns(t *tabledef.Table, idx remoteapi.ColumnIndex) []string {
	return namemap.RequestedIdentifiers(t, idx.Has)
}

func groupByField(lookups []namemap.Lookup) map[string][]namemap.Lookup {
	out := map[string][]namemap.Lookup{}
	for _, l := range lookups {
		out[l.Field] = append(out[l.Field], l)
	}
	return out
}

func expanded(lookups []namemap.Lookup, field string) bool {
	for _, l := range lookups {
		if l.Field == field {
			return l.Expanded()
		}
	}
	return false
}

func frame(l namemap.Lookup) string {
	if l.RemoteID != l.Field {
		return fmt.Sprintf("field %q (remote %q)", l.Field, l.RemoteID)
	}
	return fmt.Sprintf("field %q", l.Field)
}

// deliverWarnings reports accumulated soft failures one at a time. A panicky
// callback must never surface to the read caller, so panics are swallowed
// and logged.
func deliverWarnings(fn func(error), warnings []error) {
	if fn == nil || len(warnings) == 0 {
		return
	}
	for _, w := range warnings {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.L.Warnw("warning callback panicked", "panic", r)
				}
			}()
			fn(w)
		}()
	}
}
