package sdk

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/faciam-dev/airtab/internal/remoteapi"
	"github.com/faciam-dev/airtab/pkg/airerr"
)

type fakeClient struct {
	schemaCalls int
	records     map[string]*remoteapi.Record
	lastWrite   map[string]any
}

func newFakeClient() *fakeClient {
	return &fakeClient{records: map[string]*remoteapi.Record{}}
}

func (f *fakeClient) FetchBaseSchema(context.Context, string) ([]remoteapi.TableSchema, error) {
	f.schemaCalls++
	return []remoteapi.TableSchema{{
		ID:   "tbl456",
		Name: "Tasks",
		Columns: []remoteapi.Column{
			{ID: "fldT", Name: "title", Type: "singleLineText"},
			{ID: "fldD", Name: "due", Type: "dateTime"},
			{ID: "fldX", Name: "done", Type: "checkbox"},
		},
	}}, nil
}

func (f *fakeClient) FindRecord(_ context.Context, _, _, id string) (*remoteapi.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, airerr.NotFound("remote returned 404")
	}
	return rec, nil
}

func (f *fakeClient) ListRecords(context.Context, string, string, remoteapi.ListQuery) ([]remoteapi.Record, error) {
	var out []remoteapi.Record
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeClient) CreateRecord(_ context.Context, _, _ string, fields map[string]any) (*remoteapi.Record, error) {
	f.lastWrite = fields
	rec := &remoteapi.Record{ID: "recNew", Fields: remapToNames(fields)}
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeClient) UpdateRecord(_ context.Context, _, _, id string, fields map[string]any) (*remoteapi.Record, error) {
	f.lastWrite = fields
	rec, ok := f.records[id]
	if !ok {
		return nil, airerr.NotFound("remote returned 404")
	}
	for k, v := range remapToNames(fields) {
		rec.Fields[k] = v
	}
	return rec, nil
}

func (f *fakeClient) DeleteRecord(_ context.Context, _, _, id string) error {
	delete(f.records, id)
	return nil
}

// remapToNames mimics the remote service keying response cells by column
// name even when the write used ids.
func remapToNames(fields map[string]any) map[string]any {
	names := map[string]string{"fldT": "title", "fldD": "due", "fldX": "done"}
	out := map[string]any{}
	for k, v := range fields {
		if n, ok := names[k]; ok {
			out[n] = v
		} else {
			out[k] = v
		}
	}
	return out
}

func taskTable() *Table {
	return &Table{
		Name:    "Tasks",
		BaseID:  "app123",
		TableID: "tbl456",
		Schema: []Field{
			{Name: "title", Type: "string"},
			{Name: "due", Type: "string | null"},
			{Name: "done", Type: "boolean"},
		},
	}
}

func TestGetMapsRecord(t *testing.T) {
	fc := newFakeClient()
	fc.records["rec1"] = &remoteapi.Record{ID: "rec1", Fields: map[string]any{
		"title": "write docs",
		"due":   "2024-03-05T06:07:08Z",
		"done":  true,
	}}
	svc := newWithClient(ServiceConfig{Token: "tok"}, fc)

	rec, err := svc.Get(context.Background(), taskTable(), "rec1")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"title": "write docs",
		"due":   "2024-03-05T06:07:08.000Z",
		"done":  true,
	}
	if rec.ID != "rec1" {
		t.Fatalf("id = %s", rec.ID)
	}
	if diff := cmp.Diff(want, rec.Fields); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
}

func TestGetRequiresID(t *testing.T) {
	svc := newWithClient(ServiceConfig{}, newFakeClient())
	_, err := svc.Get(context.Background(), taskTable(), "")
	if airerr.KindOf(err) != airerr.KindInvalidParameter {
		t.Fatalf("want invalid parameter: %v", err)
	}
}

func TestTableCachesSchemaAcrossCalls(t *testing.T) {
	fc := newFakeClient()
	fc.records["rec1"] = &remoteapi.Record{ID: "rec1", Fields: map[string]any{
		"title": "a", "done": false,
	}}
	svc := newWithClient(ServiceConfig{}, fc)

	ctx := context.Background()
	if _, err := svc.Get(ctx, taskTable(), "rec1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, taskTable(), "rec1"); err != nil {
		t.Fatal(err)
	}
	if fc.schemaCalls != 1 {
		t.Fatalf("schema fetched %d times within TTL, want 1", fc.schemaCalls)
	}
}

func TestTableNotFound(t *testing.T) {
	svc := newWithClient(ServiceConfig{}, newFakeClient())
	def := taskTable()
	def.TableID = "tblMissing"
	def.Name = "Ghost"
	_, err := svc.Table(context.Background(), def)
	if airerr.KindOf(err) != airerr.KindNotFound {
		t.Fatalf("want not-found: %v", err)
	}
}

func TestInsertAndUpdate(t *testing.T) {
	fc := newFakeClient()
	svc := newWithClient(ServiceConfig{}, fc)
	ctx := context.Background()

	rec, err := svc.Insert(ctx, taskTable(), map[string]any{
		"title": "ship it",
		"due":   nil,
		"done":  false,
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != "recNew" || rec.Fields["title"] != "ship it" {
		t.Fatalf("insert = %+v", rec)
	}

	// Partial update: only done changes; title must not appear in the write.
	_, err = svc.Update(ctx, taskTable(), &Record{ID: "recNew", Fields: map[string]any{"done": true}})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"done": true}, fc.lastWrite); diff != "" {
		t.Fatalf("partial write (-want +got):\n%s", diff)
	}

	if _, err := svc.Update(ctx, taskTable(), &Record{Fields: map[string]any{}}); airerr.KindOf(err) != airerr.KindInvalidParameter {
		t.Fatalf("update without id: %v", err)
	}
}

func TestWarningModeDeliversWarnings(t *testing.T) {
	fc := newFakeClient()
	fc.records["rec1"] = &remoteapi.Record{ID: "rec1", Fields: map[string]any{
		"title": 99.0, // drifted: column now yields numbers
		"done":  true,
	}}
	var warned int
	svc := newWithClient(ServiceConfig{
		ReadValidation: ValidationWarning,
		OnWarning:      func(error) { warned++ },
	}, fc)

	rec, err := svc.Get(context.Background(), taskTable(), "rec1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Fields["title"] != "" {
		t.Fatalf("drifted field should fall back to empty default, got %v", rec.Fields["title"])
	}
	if warned != 1 {
		t.Fatalf("warnings = %d, want 1", warned)
	}
}
