// Package coerce holds the field coercion matrix: one {ToRemote, FromRemote}
// pair per (application type, remote column type) combination. The matrix is
// built once at package init; lookups afterwards are two map reads.
//
// Remote column types are hints, not guarantees. Every FromRemote treats its
// input defensively and reports a schema-validation error when the cell value
// cannot be shaped into the declared application type.
package coerce

import (
	"sync"

	"github.com/faciam-dev/airtab/internal/logger"
	"github.com/faciam-dev/airtab/pkg/airerr"
)

// Remote column type tags understood by the matrix. Tags outside this set are
// handled by the per-application-type unknown fallback.
const (
	TagSingleLineText   = "singleLineText"
	TagMultilineText    = "multilineText"
	TagRichText         = "richText"
	TagEmail            = "email"
	TagURL              = "url"
	TagPhoneNumber      = "phoneNumber"
	TagSingleSelect     = "singleSelect"
	TagMultipleSelects  = "multipleSelects"
	TagRecordLinks      = "multipleRecordLinks"
	TagLookupValues     = "multipleLookupValues"
	TagAttachments      = "multipleAttachments"
	TagCollaborators    = "multipleCollaborators"
	TagCollaborator     = "singleCollaborator"
	TagCheckbox         = "checkbox"
	TagNumber           = "number"
	TagRating           = "rating"
	TagDuration         = "duration"
	TagCurrency         = "currency"
	TagPercent          = "percent"
	TagCount            = "count"
	TagAutoNumber       = "autoNumber"
	TagDate             = "date"
	TagDateTime         = "dateTime"
	TagCreatedTime      = "createdTime"
	TagLastModifiedTime = "lastModifiedTime"
	TagFormula          = "formula"
	TagRollup           = "rollup"
	TagCreatedBy        = "createdBy"
	TagLastModifiedBy   = "lastModifiedBy"
	TagButton           = "button"
	TagBarcode          = "barcode"
	TagAIText           = "aiText"
	TagExternalSync     = "externalSyncSource"
)

// Pair converts one application type to and from one remote column type.
type Pair struct {
	// ToRemote shapes an application value into the raw cell value sent to
	// the remote service. Read-only pairs always return an error.
	ToRemote func(v any) (any, error)
	// FromRemote shapes a raw cell value (possibly nil or malformed) into
	// the application value.
	FromRemote func(raw any) (any, error)
	// ReadOnly marks pairs whose remote column type never accepts writes.
	ReadOnly bool
}

var (
	matrix = map[string]map[string]Pair{}

	advisoryMu   sync.Mutex
	advisorySeen = map[string]bool{}
)

// Lookup returns the coercion pair for an application type string and a
// remote column type tag. Unrecognized tags fall back to a loose pass-through
// entry and log a one-time advisory per tag; an unknown application type is a
// programmer error and returns a validation error instead.
func Lookup(appType, remoteTag string) (Pair, error) {
	row, ok := matrix[appType]
	if !ok {
		return Pair{}, airerr.Validation("unsupported field type %q", appType)
	}
	if p, ok := row[remoteTag]; ok {
		return p, nil
	}
	advise(remoteTag)
	return row[tagUnknown], nil
}

const tagUnknown = "unknown"

func advise(tag string) {
	advisoryMu.Lock()
	defer advisoryMu.Unlock()
	if advisorySeen[tag] {
		return
	}
	advisorySeen[tag] = true
	logger.L.Infow("unrecognized remote column type, using loose coercion", "type", tag)
}

func register(appType string, p Pair, tags ...string) {
	row := matrix[appType]
	if row == nil {
		row = map[string]Pair{}
		matrix[appType] = row
	}
	for _, t := range tags {
		row[t] = p
	}
}

// Rows exposes the matrix keys for property tests.
func Rows() map[string][]string {
	out := make(map[string][]string, len(matrix))
	for appType, row := range matrix {
		for tag := range row {
			out[appType] = append(out[appType], tag)
		}
	}
	return out
}

// Get returns the exact pair without fallback, for property tests.
func Get(appType, remoteTag string) (Pair, bool) {
	p, ok := matrix[appType][remoteTag]
	return p, ok
}

func readOnlyErr(tag string) error {
	return airerr.Validation("cannot write to read-only %s column", tag)
}
