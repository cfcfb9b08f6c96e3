package coerce

import (
	"math"
	"time"

	"github.com/faciam-dev/airtab/pkg/airerr"
	"github.com/faciam-dev/airtab/pkg/fieldtype"
)

// isoFormat matches the remote service's datetime rendering.
const isoFormat = "2006-01-02T15:04:05.000Z07:00"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateText(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, airerr.Validation("invalid date text %q", s)
}

func formatISO(t time.Time) string { return t.UTC().Format(isoFormat) }

// unixSeconds converts a parsed time to whole Unix seconds, flooring
// fractional seconds rather than rounding.
func unixSeconds(t time.Time) float64 {
	return math.Floor(float64(t.UnixMilli()) / 1000)
}

func typeErr(tag, want string, raw any) error {
	return airerr.Validation("expected %s value from %s column, got %T", want, tag, raw)
}

// unwrapSingleton applies the shared singleton-array discipline of link and
// lookup columns: exactly one element, or null for an empty array when the
// field is nullable.
func unwrapSingleton(raw any, nullable bool, tag string) (any, error) {
	if raw == nil {
		if nullable {
			return nil, nil
		}
		return nil, airerr.Validation("%s column holds no value for a non-nullable field", tag)
	}
	els, ok := fieldtype.Slice(raw)
	if !ok {
		return nil, typeErr(tag, "array", raw)
	}
	switch len(els) {
	case 0:
		if nullable {
			return nil, nil
		}
		return nil, airerr.Validation("%s column holds an empty array for a non-nullable field", tag)
	case 1:
		return els[0], nil
	default:
		return nil, airerr.Validation("expected at most one value from %s column, got %d", tag, len(els))
	}
}

// scalarProp extracts the significant scalar from a raw element: either the
// element itself when it already matches the base type, or the named
// sub-property of a nested object.
func scalarProp(el any, prop string, base fieldtype.Base) (any, bool) {
	if matchesBase(el, base) {
		return normalizeScalar(el, base), true
	}
	obj, ok := el.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[prop]
	if !ok || !matchesBase(v, base) {
		return nil, false
	}
	return normalizeScalar(v, base), true
}

func matchesBase(v any, base fieldtype.Base) bool {
	switch base {
	case fieldtype.String:
		_, ok := v.(string)
		return ok
	case fieldtype.Number:
		_, ok := fieldtype.Float(v)
		return ok
	case fieldtype.Boolean:
		_, ok := v.(bool)
		return ok
	}
	return false
}

func normalizeScalar(v any, base fieldtype.Base) any {
	if base == fieldtype.Number {
		f, _ := fieldtype.Float(v)
		return f
	}
	return v
}
