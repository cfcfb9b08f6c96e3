package remoteapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/faciam-dev/airtab/pkg/airerr"
)

func TestFetchBaseSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meta/bases/app1/tables" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"tables": []map[string]any{{
				"id":   "tbl1",
				"name": "Tasks",
				"fields": []map[string]any{
					{"id": "fldA", "name": "Title", "type": "singleLineText"},
				},
			}},
		})
	}))
	defer srv.Close()

	c := New("tok", WithBaseURL(srv.URL))
	tables, err := c.FetchBaseSchema(context.Background(), "app1")
	if err != nil {
		t.Fatal(err)
	}
	want := []TableSchema{{
		ID: "tbl1", Name: "Tasks",
		Columns: []Column{{ID: "fldA", Name: "Title", Type: "singleLineText"}},
	}}
	if diff := cmp.Diff(want, tables); diff != "" {
		t.Fatalf("schema (-want +got):\n%s", diff)
	}
}

func TestFetchBaseSchemaForbiddenSuggestsScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New("tok", WithBaseURL(srv.URL))
	_, err := c.FetchBaseSchema(context.Background(), "app1")
	if err == nil || !strings.Contains(err.Error(), "schema.bases:read") {
		t.Fatalf("403 should suggest the token scope: %v", err)
	}
	if airerr.KindOf(err) != airerr.KindAPI {
		t.Fatalf("want API kind: %v", err)
	}
}

func TestFindRecordNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New("tok", WithBaseURL(srv.URL))
	_, err := c.FindRecord(context.Background(), "app1", "tbl1", "recX")
	if airerr.KindOf(err) != airerr.KindNotFound {
		t.Fatalf("want not-found kind: %v", err)
	}

	if _, err := c.FindRecord(context.Background(), "app1", "tbl1", ""); airerr.KindOf(err) != airerr.KindInvalidParameter {
		t.Fatalf("empty id should be an invalid parameter: %v", err)
	}
}

func TestListRecordsFollowsOffsets(t *testing.T) {
	var pages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		if r.URL.Query().Get("filterByFormula") != "{Done}=0" {
			t.Errorf("filter not passed through: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("sort[0][field]") != "Due" || r.URL.Query().Get("sort[0][direction]") != "desc" {
			t.Errorf("sort not passed through: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("offset") {
		case "":
			json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec1", "fields": map[string]any{}}},
				"offset":  "page2",
			})
		case "page2":
			json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec2", "fields": map[string]any{}}},
			})
		default:
			t.Errorf("unexpected offset")
		}
	}))
	defer srv.Close()

	c := New("tok", WithBaseURL(srv.URL))
	recs, err := c.ListRecords(context.Background(), "app1", "tbl1", ListQuery{
		FilterByFormula: "{Done}=0",
		Sort:            []Sort{{Field: "Due", Direction: "desc"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if pages != 2 || len(recs) != 2 || recs[1].ID != "rec2" {
		t.Fatalf("pagination: pages=%d recs=%v", pages, recs)
	}
}

func TestCreateAndUpdateRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Fields map[string]any `json:"fields"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Record{ID: "recNew", Fields: body.Fields})
	}))
	defer srv.Close()

	c := New("tok", WithBaseURL(srv.URL))
	rec, err := c.CreateRecord(context.Background(), "app1", "tbl1", map[string]any{"Title": "x"})
	if err != nil || rec.ID != "recNew" || rec.Fields["Title"] != "x" {
		t.Fatalf("create = %+v, %v", rec, err)
	}
	rec, err = c.UpdateRecord(context.Background(), "app1", "tbl1", "recNew", map[string]any{"Title": "y"})
	if err != nil || rec.Fields["Title"] != "y" {
		t.Fatalf("update = %+v, %v", rec, err)
	}
}
