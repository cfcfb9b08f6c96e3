package coerce

import (
	"time"

	"github.com/faciam-dev/airtab/pkg/airerr"
	"github.com/faciam-dev/airtab/pkg/fieldtype"
)

var textTags = []string{
	TagSingleLineText, TagMultilineText, TagRichText,
	TagEmail, TagURL, TagPhoneNumber, TagSingleSelect,
}

var dateTags = []string{TagDate, TagDateTime, TagCreatedTime, TagLastModifiedTime}

var numericTags = []string{TagNumber, TagRating, TagDuration, TagCurrency, TagPercent}

func init() {
	for _, nullable := range []bool{false, true} {
		registerString(nullable)
		registerNumber(nullable)
		registerBoolean(nullable)
		registerStringArray(nullable)
		registerNumberArray(nullable)
		registerBooleanArray(nullable)
	}
}

func appType(base fieldtype.Base, array, nullable bool) string {
	return fieldtype.Descriptor{Base: base, Array: array, Nullable: nullable}.String()
}

// --- string / string | null ---------------------------------------------

func registerString(nullable bool) {
	at := appType(fieldtype.String, false, nullable)
	for _, tag := range textTags {
		register(at, textPair(tag, nullable), tag)
	}
	for _, tag := range []string{TagRecordLinks, TagMultipleSelects} {
		register(at, singletonStringPair(tag, nullable), tag)
	}
	register(at, readOnly(TagLookupValues, singletonStringRead(TagLookupValues, nullable)), TagLookupValues)
	for _, tag := range dateTags {
		register(at, dateStringPair(tag, nullable, tag == TagDate), tag)
	}
	for _, tag := range []string{TagFormula, TagRollup} {
		register(at, readOnly(tag, scalarOrSingletonString(tag, nullable)), tag)
	}
	for tag, prop := range map[string]string{
		TagCreatedBy:      "id",
		TagLastModifiedBy: "id",
		TagCollaborator:   "id",
		TagButton:         "url",
		TagBarcode:        "text",
		TagAIText:         "value",
		TagExternalSync:   "name",
	} {
		register(at, readOnly(tag, objectPropString(tag, prop, nullable)), tag)
	}
	register(at, unknownPair(fieldtype.Descriptor{Base: fieldtype.String, Nullable: nullable}), tagUnknown)
}

func textPair(tag string, nullable bool) Pair {
	return Pair{
		FromRemote: func(raw any) (any, error) {
			return expectString(raw, tag, nullable)
		},
		ToRemote: func(v any) (any, error) {
			return expectString(v, tag, nullable)
		},
	}
}

func expectString(v any, tag string, nullable bool) (any, error) {
	if v == nil {
		if nullable {
			return nil, nil
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, typeErr(tag, "string", v)
	}
	return s, nil
}

func singletonStringPair(tag string, nullable bool) Pair {
	return Pair{
		FromRemote: singletonStringRead(tag, nullable),
		ToRemote: func(v any) (any, error) {
			if v == nil {
				if nullable {
					return []any{}, nil
				}
				return nil, airerr.Validation("null is not allowed for a non-nullable field on a %s column", tag)
			}
			s, ok := v.(string)
			if !ok {
				return nil, typeErr(tag, "string", v)
			}
			return []any{s}, nil
		},
	}
}

func singletonStringRead(tag string, nullable bool) func(any) (any, error) {
	return func(raw any) (any, error) {
		el, err := unwrapSingleton(raw, nullable, tag)
		if err != nil || el == nil {
			return el, err
		}
		s, ok := el.(string)
		if !ok {
			return nil, typeErr(tag, "string", el)
		}
		return s, nil
	}
}

func scalarOrSingletonString(tag string, nullable bool) func(any) (any, error) {
	return func(raw any) (any, error) {
		if raw == nil {
			if nullable {
				return nil, nil
			}
			return "", nil
		}
		if _, isSlice := fieldtype.Slice(raw); isSlice {
			return singletonStringRead(tag, nullable)(raw)
		}
		s, ok := raw.(string)
		if !ok {
			return nil, typeErr(tag, "string", raw)
		}
		return s, nil
	}
}

func objectPropString(tag, prop string, nullable bool) func(any) (any, error) {
	return func(raw any) (any, error) {
		if raw == nil {
			if nullable {
				return nil, nil
			}
			return "", nil
		}
		if s, ok := raw.(string); ok {
			return s, nil
		}
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, typeErr(tag, "object", raw)
		}
		v, ok := obj[prop]
		if !ok || v == nil {
			if nullable {
				return nil, nil
			}
			return "", nil
		}
		s, ok := v.(string)
		if !ok {
			return nil, typeErr(tag, "string", v)
		}
		return s, nil
	}
}

func dateStringPair(tag string, nullable, calendarDate bool) Pair {
	return Pair{
		FromRemote: func(raw any) (any, error) {
			if raw == nil {
				if nullable {
					return nil, nil
				}
				return "", nil
			}
			s, ok := raw.(string)
			if !ok {
				return nil, typeErr(tag, "date string", raw)
			}
			t, err := parseDateText(s)
			if err != nil {
				return nil, err
			}
			return formatISO(t), nil
		},
		ToRemote: func(v any) (any, error) {
			if v == nil {
				if nullable {
					return nil, nil
				}
				return nil, airerr.Validation("null is not a valid date for a non-nullable %s column", tag)
			}
			s, ok := v.(string)
			if !ok {
				return nil, typeErr(tag, "date string", v)
			}
			t, err := parseDateText(s)
			if err != nil {
				return nil, err
			}
			iso := formatISO(t)
			if calendarDate {
				return iso[:10], nil
			}
			return iso, nil
		},
	}
}

// --- number / number | null ---------------------------------------------

func registerNumber(nullable bool) {
	at := appType(fieldtype.Number, false, nullable)
	for _, tag := range numericTags {
		register(at, numberPair(tag, nullable), tag)
	}
	for _, tag := range []string{TagCount, TagAutoNumber} {
		register(at, readOnly(tag, numberReadDefaulting(tag, nullable)), tag)
	}
	for _, tag := range dateTags {
		register(at, dateNumberPair(tag, nullable, tag == TagDate), tag)
	}
	for _, tag := range []string{TagFormula, TagRollup, TagLookupValues} {
		register(at, readOnly(tag, scalarOrSingletonNumber(tag, nullable)), tag)
	}
	register(at, unknownPair(fieldtype.Descriptor{Base: fieldtype.Number, Nullable: nullable}), tagUnknown)
}

func numberPair(tag string, nullable bool) Pair {
	expect := func(v any) (any, error) {
		if v == nil {
			if nullable {
				return nil, nil
			}
			// 0 is never assumed for a missing value.
			return nil, airerr.Validation("%s column holds no value for a non-nullable field", tag)
		}
		f, ok := fieldtype.Float(v)
		if !ok {
			return nil, typeErr(tag, "number", v)
		}
		return f, nil
	}
	return Pair{FromRemote: expect, ToRemote: expect}
}

func numberReadDefaulting(tag string, nullable bool) func(any) (any, error) {
	return func(raw any) (any, error) {
		if raw == nil {
			if nullable {
				return nil, nil
			}
			return float64(0), nil
		}
		f, ok := fieldtype.Float(raw)
		if !ok {
			return nil, typeErr(tag, "number", raw)
		}
		return f, nil
	}
}

func scalarOrSingletonNumber(tag string, nullable bool) func(any) (any, error) {
	return func(raw any) (any, error) {
		if raw == nil {
			if nullable {
				return nil, nil
			}
			return float64(0), nil
		}
		if _, isSlice := fieldtype.Slice(raw); isSlice {
			el, err := unwrapSingleton(raw, nullable, tag)
			if err != nil || el == nil {
				return el, err
			}
			raw = el
		}
		f, ok := fieldtype.Float(raw)
		if !ok {
			return nil, typeErr(tag, "number", raw)
		}
		return f, nil
	}
}

func dateNumberPair(tag string, nullable, calendarDate bool) Pair {
	return Pair{
		FromRemote: func(raw any) (any, error) {
			if raw == nil {
				if nullable {
					return nil, nil
				}
				return nil, airerr.Validation("%s column holds no value for a non-nullable field", tag)
			}
			s, ok := raw.(string)
			if !ok {
				return nil, typeErr(tag, "date string", raw)
			}
			t, err := parseDateText(s)
			if err != nil {
				return nil, err
			}
			return unixSeconds(t), nil
		},
		ToRemote: func(v any) (any, error) {
			if v == nil {
				if nullable {
					return nil, nil
				}
				return nil, airerr.Validation("null is not a valid date for a non-nullable %s column", tag)
			}
			sec, ok := fieldtype.Float(v)
			if !ok {
				return nil, typeErr(tag, "unix seconds", v)
			}
			t := time.UnixMilli(int64(sec * 1000)).UTC()
			iso := formatISO(t)
			if calendarDate {
				return iso[:10], nil
			}
			return iso, nil
		},
	}
}

// --- boolean / boolean | null -------------------------------------------

func registerBoolean(nullable bool) {
	at := appType(fieldtype.Boolean, false, nullable)
	register(at, checkboxPair(nullable), TagCheckbox)
	for _, tag := range []string{TagFormula, TagRollup, TagLookupValues} {
		register(at, readOnly(tag, scalarOrSingletonBool(tag, nullable)), tag)
	}
	register(at, unknownPair(fieldtype.Descriptor{Base: fieldtype.Boolean, Nullable: nullable}), tagUnknown)
}

func checkboxPair(nullable bool) Pair {
	expect := func(v any) (any, error) {
		if v == nil {
			if nullable {
				return nil, nil
			}
			return false, nil
		}
		b, ok := v.(bool)
		if !ok {
			return nil, typeErr(TagCheckbox, "boolean", v)
		}
		return b, nil
	}
	return Pair{FromRemote: expect, ToRemote: expect}
}

func scalarOrSingletonBool(tag string, nullable bool) func(any) (any, error) {
	return func(raw any) (any, error) {
		if raw == nil {
			if nullable {
				return nil, nil
			}
			return false, nil
		}
		if _, isSlice := fieldtype.Slice(raw); isSlice {
			el, err := unwrapSingleton(raw, nullable, tag)
			if err != nil || el == nil {
				return el, err
			}
			raw = el
		}
		b, ok := raw.(bool)
		if !ok {
			return nil, typeErr(tag, "boolean", raw)
		}
		return b, nil
	}
}

// --- string[] / string[] | null -----------------------------------------

func registerStringArray(nullable bool) {
	at := appType(fieldtype.String, true, nullable)
	for _, tag := range []string{TagMultipleSelects, TagRecordLinks} {
		register(at, stringArrayPair(tag, nullable), tag)
	}
	for tag, prop := range map[string]string{
		TagLookupValues:  "id",
		TagAttachments:   "url",
		TagCollaborators: "id",
		TagFormula:       "id",
		TagRollup:        "id",
	} {
		register(at, readOnly(tag, filteredArrayRead(tag, prop, fieldtype.String, nullable)), tag)
	}
	register(at, unknownPair(fieldtype.Descriptor{Base: fieldtype.String, Array: true, Nullable: nullable}), tagUnknown)
}

func stringArrayPair(tag string, nullable bool) Pair {
	return Pair{
		FromRemote: func(raw any) (any, error) {
			if raw == nil {
				if nullable {
					return nil, nil
				}
				return []string{}, nil
			}
			els, ok := fieldtype.Slice(raw)
			if !ok {
				return nil, typeErr(tag, "array", raw)
			}
			out := make([]string, 0, len(els))
			for _, el := range els {
				s, ok := el.(string)
				if !ok {
					return nil, typeErr(tag, "string element", el)
				}
				out = append(out, s)
			}
			return out, nil
		},
		ToRemote: func(v any) (any, error) {
			if v == nil {
				if nullable {
					return nil, nil
				}
				return []any{}, nil
			}
			els, ok := fieldtype.Slice(v)
			if !ok {
				return nil, typeErr(tag, "array", v)
			}
			out := make([]any, 0, len(els))
			for _, el := range els {
				s, ok := el.(string)
				if !ok {
					return nil, typeErr(tag, "string element", el)
				}
				out = append(out, s)
			}
			return out, nil
		},
	}
}

// filteredArrayRead coerces an array of nested objects down to their
// significant scalar sub-field, silently dropping entries that do not match.
func filteredArrayRead(tag, prop string, base fieldtype.Base, nullable bool) func(any) (any, error) {
	return func(raw any) (any, error) {
		if raw == nil {
			if nullable {
				return nil, nil
			}
			return emptyArray(base), nil
		}
		els, ok := fieldtype.Slice(raw)
		if !ok {
			return nil, typeErr(tag, "array", raw)
		}
		switch base {
		case fieldtype.String:
			out := make([]string, 0, len(els))
			for _, el := range els {
				if v, ok := scalarProp(el, prop, base); ok {
					out = append(out, v.(string))
				}
			}
			return out, nil
		case fieldtype.Number:
			out := make([]float64, 0, len(els))
			for _, el := range els {
				if v, ok := scalarProp(el, prop, base); ok {
					out = append(out, v.(float64))
				}
			}
			return out, nil
		default:
			out := make([]bool, 0, len(els))
			for _, el := range els {
				if v, ok := scalarProp(el, prop, base); ok {
					out = append(out, v.(bool))
				}
			}
			return out, nil
		}
	}
}

func emptyArray(base fieldtype.Base) any {
	switch base {
	case fieldtype.Number:
		return []float64{}
	case fieldtype.Boolean:
		return []bool{}
	default:
		return []string{}
	}
}

// --- number[] / boolean[] ------------------------------------------------

func registerNumberArray(nullable bool) {
	at := appType(fieldtype.Number, true, nullable)
	for _, tag := range []string{TagLookupValues, TagFormula, TagRollup} {
		register(at, readOnly(tag, filteredArrayRead(tag, "id", fieldtype.Number, nullable)), tag)
	}
	register(at, unknownPair(fieldtype.Descriptor{Base: fieldtype.Number, Array: true, Nullable: nullable}), tagUnknown)
}

func registerBooleanArray(nullable bool) {
	at := appType(fieldtype.Boolean, true, nullable)
	for _, tag := range []string{TagLookupValues, TagFormula, TagRollup} {
		register(at, readOnly(tag, filteredArrayRead(tag, "id", fieldtype.Boolean, nullable)), tag)
	}
	register(at, unknownPair(fieldtype.Descriptor{Base: fieldtype.Boolean, Array: true, Nullable: nullable}), tagUnknown)
}

// --- shared --------------------------------------------------------------

func readOnly(tag string, read func(any) (any, error)) Pair {
	return Pair{
		ReadOnly:   true,
		FromRemote: read,
		ToRemote: func(any) (any, error) {
			return nil, readOnlyErr(tag)
		},
	}
}

// unknownPair is the loose forward-compatibility fallback for remote column
// types this library has never seen: pass values through when they already
// match the declared type, unwrap singleton arrays for scalar fields, and
// leave everything else to a validation error.
func unknownPair(d fieldtype.Descriptor) Pair {
	return Pair{
		FromRemote: func(raw any) (any, error) {
			if raw == nil {
				return d.ZeroValue(), nil
			}
			if !d.Array {
				if _, isSlice := fieldtype.Slice(raw); isSlice {
					el, err := unwrapSingleton(raw, d.Nullable, tagUnknown)
					if err != nil || el == nil {
						return el, err
					}
					raw = el
				}
				if !matchesBase(raw, d.Base) {
					return nil, typeErr(tagUnknown, string(d.Base), raw)
				}
				return normalizeScalar(raw, d.Base), nil
			}
			if !fieldtype.MatchesDescriptor(raw, d) {
				return nil, typeErr(tagUnknown, d.String(), raw)
			}
			els, _ := fieldtype.Slice(raw)
			return filteredArrayRead(tagUnknown, "", d.Base, d.Nullable)(els)
		},
		ToRemote: func(v any) (any, error) {
			if v == nil && !d.Nullable {
				return d.ZeroValue(), nil
			}
			if v != nil && !fieldtype.MatchesDescriptor(v, d) {
				return nil, typeErr(tagUnknown, d.String(), v)
			}
			return v, nil
		},
	}
}
